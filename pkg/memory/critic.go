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
	"fmt"
	"time"

	"github.com/xingyunyang/agentmemory_go/pkg/models"
)

// criticFeedbackLimit is the feedback length kept in summary renderings.
const criticFeedbackLimit = 200

// CriticStep records a critic's review of an action step's output. It is
// owned by the action step it reviews and has no independent lifecycle.
// Immutable after creation.
type CriticStep struct {
	StartTime          time.Time           `json:"start_time"`
	EndTime            time.Time           `json:"end_time,omitempty"`
	Duration           time.Duration       `json:"duration,omitempty"`
	ModelInputMessages []Message           `json:"model_input_messages"`
	ModelOutputMessage *models.ChatMessage `json:"model_output_message,omitempty"`
	Feedback           string              `json:"feedback"`
	Accepted           bool                `json:"accepted"`
}

// NewCriticStep creates a critic step with the start time set to now
func NewCriticStep(feedback string, accepted bool) *CriticStep {
	return &CriticStep{
		StartTime: time.Now(),
		Feedback:  feedback,
		Accepted:  accepted,
	}
}

// End marks the review complete and fills in end time and duration
func (cs *CriticStep) End() {
	cs.EndTime = time.Now()
	cs.Duration = cs.EndTime.Sub(cs.StartTime)
}

func (cs *CriticStep) memoryStep() {}

// Type implements MemoryStep
func (cs *CriticStep) Type() string { return "critic" }

// ToMessages implements MemoryStep. Summary mode yields a status-tagged
// message with the feedback truncated; full mode yields the complete review,
// but only when the critic model actually produced an output message.
func (cs *CriticStep) ToMessages(opts MessageOptions) ([]Message, error) {
	if opts.SummaryMode {
		status := "REJECTED"
		if cs.Accepted {
			status = "ACCEPTED"
		}
		return []Message{
			NewMessage(models.RoleAssistant,
				fmt.Sprintf("[Critic %s] %s", status, truncateRunes(cs.Feedback, criticFeedbackLimit))),
		}, nil
	}

	if cs.ModelOutputMessage != nil {
		return []Message{
			NewMessage(models.RoleAssistant, "[Critic Review] "+cs.Feedback),
		}, nil
	}

	return nil, nil
}

// ToDict implements MemoryStep
func (cs *CriticStep) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"start_time":           timeOrNil(cs.StartTime),
		"end_time":             timeOrNil(cs.EndTime),
		"duration":             durationOrNil(cs.Duration),
		"model_input_messages": messagesToDicts(cs.ModelInputMessages),
		"model_output_message": chatMessageDict(cs.ModelOutputMessage),
		"feedback":             cs.Feedback,
		"accepted":             cs.Accepted,
	}
}

// String returns a compact representation for logs
func (cs *CriticStep) String() string {
	status := "REJECTED"
	if cs.Accepted {
		status = "ACCEPTED"
	}
	return fmt.Sprintf("CriticStep(status=%s, feedback=%s)", status, truncateRunes(cs.Feedback, 50))
}

// InstallCriticReview installs the critic review extension: after it is
// installed, every action step's rendered messages are followed by the
// messages of its attached critic steps, in chronological order. Call once
// during process initialization, before any rendering; installing again has
// no additional effect.
func InstallCriticReview() {
	RegisterActionExtension(criticReviewExtension{})
}

type criticReviewExtension struct{}

func (criticReviewExtension) Name() string { return "critic-review" }

func (criticReviewExtension) Append(step *ActionStep, opts MessageOptions, messages []Message) ([]Message, error) {
	for _, cs := range step.CriticSteps {
		criticMessages, err := cs.ToMessages(opts)
		if err != nil {
			return nil, err
		}
		messages = append(messages, criticMessages...)
	}
	return messages, nil
}

// truncateRunes cuts s to at most limit runes, appending an ellipsis marker
// when anything was cut
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
