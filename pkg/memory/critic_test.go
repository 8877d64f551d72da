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

package memory

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingyunyang/agentmemory_go/pkg/models"
)

func TestCriticStepToMessagesSummaryMode(t *testing.T) {
	step := NewCriticStep("The answer checks out.", true)

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleAssistant, messages[0].Role)
	assert.Equal(t, "[Critic ACCEPTED] The answer checks out.", messages[0].Text())

	rejected := NewCriticStep("Wrong units in the result.", false)
	messages, err = rejected.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "[Critic REJECTED] Wrong units in the result.", messages[0].Text())
}

func TestCriticStepSummaryTruncation(t *testing.T) {
	feedback := strings.Repeat("x", 250)
	step := NewCriticStep(feedback, false)

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 1)

	text := messages[0].Text()
	assert.Equal(t, "[Critic REJECTED] "+strings.Repeat("x", 200)+"...", text)
}

func TestCriticStepSummaryNoTruncationAtLimit(t *testing.T) {
	feedback := strings.Repeat("y", 200)
	step := NewCriticStep(feedback, true)

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	assert.Equal(t, "[Critic ACCEPTED] "+feedback, messages[0].Text())
}

func TestCriticStepFullModeRequiresModelOutput(t *testing.T) {
	step := NewCriticStep("Detailed review of the result.", true)

	messages, err := step.ToMessages(MessageOptions{})
	require.NoError(t, err)
	assert.Empty(t, messages)

	step.ModelOutputMessage = models.NewChatMessage("assistant", "Detailed review of the result.")
	messages, err = step.ToMessages(MessageOptions{})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "[Critic Review] Detailed review of the result.", messages[0].Text())
}

func TestCriticStepToDict(t *testing.T) {
	step := NewCriticStep("ok", true)
	step.End()

	dict := step.ToDict()
	assert.Equal(t, "ok", dict["feedback"])
	assert.Equal(t, true, dict["accepted"])
	assert.NotNil(t, dict["start_time"])
	assert.NotNil(t, dict["end_time"])
	assert.Nil(t, dict["model_output_message"])
}

func TestCriticStepString(t *testing.T) {
	step := NewCriticStep("short feedback", true)
	assert.Equal(t, "CriticStep(status=ACCEPTED, feedback=short feedback)", step.String())

	long := NewCriticStep(strings.Repeat("z", 80), false)
	assert.Equal(t, "CriticStep(status=REJECTED, feedback="+strings.Repeat("z", 50)+"...)", long.String())
}

func TestActionStepWithoutCriticExtension(t *testing.T) {
	UnregisterActionExtension("critic-review")

	step := NewActionStep(1)
	step.Observations = "done"
	step.AddCriticStep(NewCriticStep("looks fine", true))

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Observation:\ndone", messages[0].Text())
}

func TestActionStepWithCriticExtension(t *testing.T) {
	UnregisterActionExtension("critic-review")
	defer UnregisterActionExtension("critic-review")
	InstallCriticReview()

	step := NewActionStep(2)
	step.ToolCalls = []ToolCall{{Name: "search", Arguments: "go", ID: "tc_1"}}
	step.Observations = "found it"
	step.AddCriticStep(NewCriticStep("first review", true))
	step.AddCriticStep(NewCriticStep("second review", false))

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.True(t, strings.HasPrefix(messages[0].Text(), "Calling tools:"))
	assert.True(t, strings.HasPrefix(messages[1].Text(), "Call id: tc_1\nObservation:"))
	assert.Equal(t, "[Critic ACCEPTED] first review", messages[2].Text())
	assert.Equal(t, "[Critic REJECTED] second review", messages[3].Text())
}

func TestInstallCriticReviewTwice(t *testing.T) {
	UnregisterActionExtension("critic-review")
	defer UnregisterActionExtension("critic-review")
	InstallCriticReview()
	InstallCriticReview()

	step := NewActionStep(1)
	step.AddCriticStep(NewCriticStep("a", true))
	step.AddCriticStep(NewCriticStep("b", false))

	messages, err := step.ToMessages(MessageOptions{SummaryMode: true})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "[Critic ACCEPTED] a", messages[0].Text())
	assert.Equal(t, "[Critic REJECTED] b", messages[1].Text())
}

type failingExtension struct{ err error }

func (failingExtension) Name() string { return "failing" }

func (f failingExtension) Append(_ *ActionStep, _ MessageOptions, _ []Message) ([]Message, error) {
	return nil, f.err
}

func TestActionStepExtensionFailure(t *testing.T) {
	boom := errors.New("render exploded")
	RegisterActionExtension(failingExtension{err: boom})
	defer UnregisterActionExtension("failing")

	step := NewActionStep(4)
	step.Observations = "fine so far"

	messages, err := step.ToMessages(MessageOptions{})
	require.Error(t, err)
	assert.Nil(t, messages)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "action step 4")
	assert.Contains(t, err.Error(), `extension "failing"`)
}
