// Copyright 2025 Rizome Labs, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package monitoring

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level LogLevel) (*AgentLogger, *bytes.Buffer) {
	logger := NewAgentLogger(level)
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetUseColors(false)
	logger.SetTimestamps(false)
	return logger, buf
}

func TestTokenUsage(t *testing.T) {
	usage := NewTokenUsage(100, 50)
	assert.Equal(t, 150, usage.TotalTokens)

	usage.Add(NewTokenUsage(10, 5))
	assert.Equal(t, 110, usage.InputTokens)
	assert.Equal(t, 55, usage.OutputTokens)
	assert.Equal(t, 165, usage.TotalTokens)

	usage.Add(nil)
	assert.Equal(t, 165, usage.TotalTokens)
}

func TestTiming(t *testing.T) {
	timing := NewTiming()
	assert.Nil(t, timing.EndTime)

	timing.End()
	require.NotNil(t, timing.EndTime)
	require.NotNil(t, timing.Duration)
	assert.Equal(t, *timing.Duration, timing.GetDuration())
}

func TestLogLevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelINFO)

	logger.Debug("hidden")
	logger.Info("visible info")
	logger.Error("visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] visible info")
	assert.Contains(t, out, "[ERROR] visible error")
}

func TestLogLevelOff(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelOFF)

	logger.Error("even errors are silent")
	assert.Empty(t, buf.String())
}

func TestLoggerPrefixAndFormat(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelDEBUG)
	logger.SetPrefix("agent-1")

	logger.Info("step %d done", 3)
	assert.Equal(t, "[INFO] agent-1 step 3 done\n", buf.String())
}

func TestLogTokenUsage(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelDEBUG)

	logger.LogTokenUsage(NewTokenUsage(120, 40))
	assert.Contains(t, buf.String(), "Token Usage: input=120, output=40, total=160")

	buf.Reset()
	logger.LogTokenUsage(nil)
	assert.Empty(t, buf.String())

	logger.SetLevel(LogLevelINFO)
	logger.LogTokenUsage(NewTokenUsage(1, 1))
	assert.Empty(t, buf.String())
}

func TestLogTiming(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelDEBUG)

	timing := NewTiming()
	timing.End()
	logger.LogTiming("step 1", timing)
	assert.Contains(t, buf.String(), "Timing [step 1]:")

	buf.Reset()
	logger.LogTiming("step 2", nil)
	assert.Empty(t, buf.String())
}

func TestDefaultLogger(t *testing.T) {
	logger := GetDefaultLogger()
	require.NotNil(t, logger)

	original := logger.GetLevel()
	defer SetDefaultLogLevel(original)

	SetDefaultLogLevel(LogLevelDEBUG)
	assert.Equal(t, LogLevelDEBUG, GetDefaultLogger().GetLevel())
}

func TestMonitorAggregation(t *testing.T) {
	logger, _ := newBufferedLogger(LogLevelOFF)
	monitor := NewMonitor(logger)

	monitor.UpdateMetrics(1, 2*time.Second, NewTokenUsage(100, 20))
	monitor.UpdateMetrics(2, 4*time.Second, NewTokenUsage(50, 10))
	monitor.UpdateMetrics(3, 3*time.Second, nil)

	total := monitor.GetTotalTokenUsage()
	assert.Equal(t, 150, total.InputTokens)
	assert.Equal(t, 30, total.OutputTokens)

	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 3 * time.Second},
		monitor.GetStepDurations())
	assert.Equal(t, 3*time.Second, monitor.GetAverageStepDuration())
}

func TestMonitorDisabled(t *testing.T) {
	logger, _ := newBufferedLogger(LogLevelOFF)
	monitor := NewMonitor(logger)
	monitor.SetEnabled(false)

	monitor.UpdateMetrics(1, time.Second, NewTokenUsage(10, 10))
	assert.Empty(t, monitor.GetStepDurations())
	assert.Equal(t, 0, monitor.GetTotalTokenUsage().TotalTokens)
}

func TestMonitorReset(t *testing.T) {
	logger, _ := newBufferedLogger(LogLevelOFF)
	monitor := NewMonitor(logger)

	monitor.UpdateMetrics(1, time.Second, NewTokenUsage(10, 10))
	monitor.Reset()

	assert.Empty(t, monitor.GetStepDurations())
	assert.Equal(t, 0, monitor.GetTotalTokenUsage().TotalTokens)
	assert.Equal(t, time.Duration(0), monitor.GetAverageStepDuration())
}

func TestMonitorLogSummary(t *testing.T) {
	logger, buf := newBufferedLogger(LogLevelINFO)
	monitor := NewMonitor(logger)

	monitor.UpdateMetrics(1, 1500*time.Millisecond, NewTokenUsage(120, 40))
	buf.Reset()
	monitor.LogSummary()

	out := buf.String()
	assert.Contains(t, out, "Step")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "40")
	assert.Contains(t, out, "Total")
}
