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

// Package monitoring provides logging and monitoring capabilities for agent execution.
//
// This includes token usage tracking, timing information, structured logging,
// and step duration aggregation for debugging and observability.
package monitoring

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// LogLevel represents different log levels
type LogLevel int

const (
	LogLevelOFF LogLevel = iota - 1
	LogLevelERROR
	LogLevelINFO
	LogLevelDEBUG
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelOFF:
		return "OFF"
	case LogLevelERROR:
		return "ERROR"
	case LogLevelINFO:
		return "INFO"
	case LogLevelDEBUG:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// TokenUsage represents token usage statistics
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// NewTokenUsage creates a new TokenUsage instance
func NewTokenUsage(inputTokens, outputTokens int) *TokenUsage {
	return &TokenUsage{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
	}
}

// Add combines this token usage with another
func (tu *TokenUsage) Add(other *TokenUsage) {
	if other != nil {
		tu.InputTokens += other.InputTokens
		tu.OutputTokens += other.OutputTokens
		tu.TotalTokens += other.TotalTokens
	}
}

// String returns a string representation of token usage
func (tu *TokenUsage) String() string {
	return fmt.Sprintf("TokenUsage(input=%d, output=%d, total=%d)",
		tu.InputTokens, tu.OutputTokens, tu.TotalTokens)
}

// Timing represents timing information for operations
type Timing struct {
	StartTime time.Time      `json:"start_time"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
	Duration  *time.Duration `json:"duration,omitempty"`
}

// NewTiming creates a new timing instance with start time set to now
func NewTiming() *Timing {
	return &Timing{
		StartTime: time.Now(),
	}
}

// End marks the end time and calculates duration
func (t *Timing) End() {
	now := time.Now()
	t.EndTime = &now
	duration := now.Sub(t.StartTime)
	t.Duration = &duration
}

// GetDuration returns the duration, calculating it if not already done
func (t *Timing) GetDuration() time.Duration {
	if t.Duration != nil {
		return *t.Duration
	}

	if t.EndTime != nil {
		return t.EndTime.Sub(t.StartTime)
	}

	return time.Since(t.StartTime)
}

// String returns a string representation of timing
func (t *Timing) String() string {
	duration := t.GetDuration()
	return fmt.Sprintf("Timing(duration=%v)", duration.Truncate(time.Millisecond))
}

// Level colors
var (
	errorColor = color.New(color.FgRed, color.Bold)
	infoColor  = color.New(color.FgBlue)
	debugColor = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
)

// AgentLogger provides structured logging for agent operations
type AgentLogger struct {
	level      LogLevel
	output     io.Writer
	useColors  bool
	prefix     string
	timestamps bool
}

// NewAgentLogger creates a new agent logger
func NewAgentLogger(level LogLevel) *AgentLogger {
	return &AgentLogger{
		level:      level,
		output:     os.Stdout,
		useColors:  true,
		timestamps: true,
	}
}

// SetOutput sets the output writer for the logger
func (al *AgentLogger) SetOutput(w io.Writer) {
	al.output = w
}

// SetUseColors enables or disables colored output
func (al *AgentLogger) SetUseColors(useColors bool) {
	al.useColors = useColors
}

// SetPrefix sets a prefix for all log messages
func (al *AgentLogger) SetPrefix(prefix string) {
	al.prefix = prefix
}

// SetTimestamps enables or disables timestamps in log messages
func (al *AgentLogger) SetTimestamps(timestamps bool) {
	al.timestamps = timestamps
}

// SetLevel sets the logging level
func (al *AgentLogger) SetLevel(level LogLevel) {
	al.level = level
}

// GetLevel returns the current logging level
func (al *AgentLogger) GetLevel() LogLevel {
	return al.level
}

// isEnabled checks if a log level is enabled
func (al *AgentLogger) isEnabled(level LogLevel) bool {
	return level <= al.level
}

// formatMessage formats a log message with color, timestamp, and prefix
func (al *AgentLogger) formatMessage(level LogLevel, message string) string {
	var parts []string

	if al.timestamps {
		timestamp := time.Now().Format("15:04:05")
		parts = append(parts, timestamp)
	}

	levelStr := level.String()
	if al.useColors {
		switch level {
		case LogLevelERROR:
			levelStr = errorColor.Sprint(levelStr)
		case LogLevelINFO:
			levelStr = infoColor.Sprint(levelStr)
		case LogLevelDEBUG:
			levelStr = debugColor.Sprint(levelStr)
		}
	}
	parts = append(parts, fmt.Sprintf("[%s]", levelStr))

	if al.prefix != "" {
		parts = append(parts, al.prefix)
	}

	parts = append(parts, message)

	return strings.Join(parts, " ")
}

// log writes a log message if the level is enabled
func (al *AgentLogger) log(level LogLevel, message string) {
	if !al.isEnabled(level) {
		return
	}

	formatted := al.formatMessage(level, message)
	fmt.Fprintln(al.output, formatted)
}

// Error logs an error message
func (al *AgentLogger) Error(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	al.log(LogLevelERROR, message)
}

// Info logs an info message
func (al *AgentLogger) Info(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	al.log(LogLevelINFO, message)
}

// Debug logs a debug message
func (al *AgentLogger) Debug(message string, args ...interface{}) {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	al.log(LogLevelDEBUG, message)
}

// LogTokenUsage logs token usage information
func (al *AgentLogger) LogTokenUsage(usage *TokenUsage) {
	if !al.isEnabled(LogLevelDEBUG) || usage == nil {
		return
	}

	al.Debug("Token Usage: input=%d, output=%d, total=%d",
		usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
}

// LogTiming logs timing information
func (al *AgentLogger) LogTiming(operation string, timing *Timing) {
	if !al.isEnabled(LogLevelDEBUG) || timing == nil {
		return
	}

	duration := timing.GetDuration()
	al.Debug("Timing [%s]: %v", operation, duration.Truncate(time.Millisecond))
}

// StepMetrics records per-step duration and token counts for the summary table.
type StepMetrics struct {
	StepNumber int
	Duration   time.Duration
	TokenUsage *TokenUsage
}

// Monitor aggregates step durations and token usage across a run
type Monitor struct {
	logger            *AgentLogger
	startTime         time.Time
	steps             []StepMetrics
	totalInputTokens  int
	totalOutputTokens int
	enabled           bool
}

// NewMonitor creates a new monitor instance
func NewMonitor(logger *AgentLogger) *Monitor {
	if logger == nil {
		logger = NewAgentLogger(LogLevelINFO)
	}

	return &Monitor{
		logger:    logger,
		startTime: time.Now(),
		steps:     make([]StepMetrics, 0),
		enabled:   true,
	}
}

// SetEnabled enables or disables monitoring
func (m *Monitor) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// GetLogger returns the logger instance
func (m *Monitor) GetLogger() *AgentLogger {
	return m.logger
}

// UpdateMetrics records the duration and token usage of a completed step
func (m *Monitor) UpdateMetrics(stepNumber int, duration time.Duration, usage *TokenUsage) {
	if !m.enabled {
		return
	}

	m.steps = append(m.steps, StepMetrics{
		StepNumber: stepNumber,
		Duration:   duration,
		TokenUsage: usage,
	})

	line := fmt.Sprintf("[Step %d: Duration %.2f seconds", stepNumber, duration.Seconds())
	if usage != nil {
		m.totalInputTokens += usage.InputTokens
		m.totalOutputTokens += usage.OutputTokens
		line += fmt.Sprintf(" | Input tokens: %d | Output tokens: %d", m.totalInputTokens, m.totalOutputTokens)
	}
	line += "]"

	if m.logger.useColors {
		line = dimColor.Sprint(line)
	}
	m.logger.Info(line)
}

// GetTotalTokenUsage returns the total token usage
func (m *Monitor) GetTotalTokenUsage() *TokenUsage {
	return NewTokenUsage(m.totalInputTokens, m.totalOutputTokens)
}

// GetStepDurations returns all recorded step durations
func (m *Monitor) GetStepDurations() []time.Duration {
	durations := make([]time.Duration, len(m.steps))
	for i, s := range m.steps {
		durations[i] = s.Duration
	}
	return durations
}

// GetTotalDuration returns the total execution duration
func (m *Monitor) GetTotalDuration() time.Duration {
	return time.Since(m.startTime)
}

// GetAverageStepDuration returns the average step duration
func (m *Monitor) GetAverageStepDuration() time.Duration {
	if len(m.steps) == 0 {
		return 0
	}

	var total time.Duration
	for _, s := range m.steps {
		total += s.Duration
	}

	return total / time.Duration(len(m.steps))
}

// LogSummary renders a per-step summary table of durations and token counts
func (m *Monitor) LogSummary() {
	if !m.enabled || !m.logger.isEnabled(LogLevelINFO) {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(m.logger.output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Step", "Duration", "Input tokens", "Output tokens"})

	for _, s := range m.steps {
		in, out := "-", "-"
		if s.TokenUsage != nil {
			in = fmt.Sprintf("%d", s.TokenUsage.InputTokens)
			out = fmt.Sprintf("%d", s.TokenUsage.OutputTokens)
		}
		t.AppendRow(table.Row{s.StepNumber, s.Duration.Truncate(time.Millisecond), in, out})
	}

	t.AppendFooter(table.Row{
		"Total",
		m.GetTotalDuration().Truncate(time.Millisecond),
		m.totalInputTokens,
		m.totalOutputTokens,
	})
	t.Render()
}

// Reset resets all monitoring data
func (m *Monitor) Reset() {
	m.startTime = time.Now()
	m.steps = make([]StepMetrics, 0)
	m.totalInputTokens = 0
	m.totalOutputTokens = 0
}

// Default logger instance
var defaultLogger = NewAgentLogger(LogLevelINFO)

// SetDefaultLogLevel sets the default log level for the package
func SetDefaultLogLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// GetDefaultLogger returns the default logger instance
func GetDefaultLogger() *AgentLogger {
	return defaultLogger
}
