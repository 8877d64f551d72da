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
	"strings"
	"time"

	"github.com/xingyunyang/agentmemory_go/pkg/models"
	"github.com/xingyunyang/agentmemory_go/pkg/utils"
)

// MessageOptions controls how steps are rendered into chat messages.
// SummaryMode omits verbose fields (raw model text, input-message echoes, the
// plan body). ShowModelInputMessages only affects action steps.
type MessageOptions struct {
	SummaryMode            bool
	ShowModelInputMessages bool
}

// AgentError is implemented by error values attached to an action step by
// upstream components. The memory layer only needs a string form and a
// record export.
type AgentError interface {
	error
	ToDict() map[string]interface{}
}

// MemoryStep is the closed set of step kinds recorded in agent memory. The
// unexported marker method keeps the set sealed: new kinds are a deliberate,
// compile-checked extension of this package.
type MemoryStep interface {
	// ToDict converts the step to a flat key/value record for persistence
	// and inspection. The result is always JSON-representable.
	ToDict() map[string]interface{}

	// ToMessages converts the step to an ordered list of chat messages for
	// model consumption.
	ToMessages(opts MessageOptions) ([]Message, error)

	// Type returns the kind identifier for this step
	Type() string

	memoryStep()
}

// retryGuidance is appended to every rendered error observation.
const retryGuidance = "\nNow let's retry: take care not to repeat previous errors! " +
	"If you have retried several times, try a completely different approach.\n"

// SystemPromptStep holds the system prompt fixed at memory initialization
type SystemPromptStep struct {
	SystemPrompt string `json:"system_prompt"`
}

// NewSystemPromptStep creates a new system prompt step
func NewSystemPromptStep(systemPrompt string) *SystemPromptStep {
	return &SystemPromptStep{SystemPrompt: systemPrompt}
}

func (s *SystemPromptStep) memoryStep() {}

// Type implements MemoryStep
func (s *SystemPromptStep) Type() string { return "system_prompt" }

// ToMessages implements MemoryStep
func (s *SystemPromptStep) ToMessages(opts MessageOptions) ([]Message, error) {
	if opts.SummaryMode {
		return nil, nil
	}
	return []Message{NewMessage(models.RoleSystem, strings.TrimSpace(s.SystemPrompt))}, nil
}

// ToDict implements MemoryStep
func (s *SystemPromptStep) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"system_prompt": s.SystemPrompt,
	}
}

// TaskStep records a new top-level task given to the agent
type TaskStep struct {
	Task       string                 `json:"task"`
	TaskImages []*models.MediaContent `json:"task_images,omitempty"`
}

// NewTaskStep creates a new task step
func NewTaskStep(task string, images ...*models.MediaContent) *TaskStep {
	return &TaskStep{
		Task:       task,
		TaskImages: images,
	}
}

func (t *TaskStep) memoryStep() {}

// Type implements MemoryStep
func (t *TaskStep) Type() string { return "task" }

// ToMessages implements MemoryStep
func (t *TaskStep) ToMessages(opts MessageOptions) ([]Message, error) {
	content := []ContentPart{TextPart(fmt.Sprintf("New task:\n%s", t.Task))}
	for _, img := range t.TaskImages {
		content = append(content, ImagePart(img))
	}
	return []Message{{Role: models.RoleUser, Content: content}}, nil
}

// ToDict implements MemoryStep
func (t *TaskStep) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"task":        t.Task,
		"task_images": utils.MakeJSONSerializable(t.TaskImages),
	}
}

// PlanningStep records one planning pass: the surveyed facts and the derived
// plan, along with the raw model exchanges that produced them. Immutable
// after creation.
type PlanningStep struct {
	ModelInputMessages      []Message           `json:"model_input_messages"`
	ModelOutputMessageFacts *models.ChatMessage `json:"model_output_message_facts"`
	Facts                   string              `json:"facts"`
	ModelOutputMessagePlan  *models.ChatMessage `json:"model_output_message_plan"`
	Plan                    string              `json:"plan"`
}

func (p *PlanningStep) memoryStep() {}

// Type implements MemoryStep
func (p *PlanningStep) Type() string { return "planning" }

// ToMessages implements MemoryStep. The facts list is always part of the
// history; the plan body is omitted in summary mode.
func (p *PlanningStep) ToMessages(opts MessageOptions) ([]Message, error) {
	messages := []Message{
		NewMessage(models.RoleAssistant, fmt.Sprintf("[FACTS LIST]:\n%s", strings.TrimSpace(p.Facts))),
	}

	if !opts.SummaryMode {
		messages = append(messages,
			NewMessage(models.RoleAssistant, fmt.Sprintf("[PLAN]:\n%s", strings.TrimSpace(p.Plan))))
	}
	return messages, nil
}

// ToDict implements MemoryStep
func (p *PlanningStep) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"model_input_messages":       messagesToDicts(p.ModelInputMessages),
		"model_output_message_facts": chatMessageDict(p.ModelOutputMessageFacts),
		"facts":                      p.Facts,
		"model_output_message_plan":  chatMessageDict(p.ModelOutputMessagePlan),
		"plan":                       p.Plan,
	}
}

// ActionStep records one action cycle: the model exchange, the tool calls it
// produced, and their outcome. It is created at the start of the cycle and
// mutated in place by the producer until the cycle completes; afterwards it
// is treated as immutable.
type ActionStep struct {
	ModelInputMessages []Message              `json:"model_input_messages,omitempty"`
	ToolCalls          []ToolCall             `json:"tool_calls,omitempty"`
	StartTime          time.Time              `json:"start_time,omitempty"`
	EndTime            time.Time              `json:"end_time,omitempty"`
	StepNumber         int                    `json:"step_number"`
	Error              AgentError             `json:"error,omitempty"`
	Duration           time.Duration          `json:"duration,omitempty"`
	ModelOutputMessage *models.ChatMessage    `json:"model_output_message,omitempty"`
	ModelOutput        string                 `json:"model_output,omitempty"`
	Observations       string                 `json:"observations,omitempty"`
	ObservationsImages []*models.MediaContent `json:"observations_images,omitempty"`
	ActionOutput       interface{}            `json:"action_output,omitempty"`

	// CriticSteps holds reviews attached after the action ran, in
	// chronological order. Rendering them is the critic extension's job;
	// the base message assembly never touches this field.
	CriticSteps []*CriticStep `json:"critic_steps,omitempty"`
}

// NewActionStep creates an action step at the start of an action cycle
func NewActionStep(stepNumber int) *ActionStep {
	return &ActionStep{
		StepNumber: stepNumber,
		StartTime:  time.Now(),
	}
}

// End marks the cycle complete and fills in end time and duration
func (as *ActionStep) End() {
	as.EndTime = time.Now()
	as.Duration = as.EndTime.Sub(as.StartTime)
}

// AddCriticStep attaches a critic review to this action step
func (as *ActionStep) AddCriticStep(cs *CriticStep) {
	as.CriticSteps = append(as.CriticSteps, cs)
}

func (as *ActionStep) memoryStep() {}

// Type implements MemoryStep
func (as *ActionStep) Type() string { return "action" }

// ToMessages implements MemoryStep. Assembly order is significant: input
// echo, model output, tool calls, observation, error, observed images, then
// any installed extensions. The output list is built append-only so an
// extension failure cannot leave a partially corrupted result.
func (as *ActionStep) ToMessages(opts MessageOptions) ([]Message, error) {
	var messages []Message

	if opts.ShowModelInputMessages && as.ModelInputMessages != nil {
		messages = append(messages, NewMessage(models.RoleSystem, dumpMessages(as.ModelInputMessages)))
	}

	if as.ModelOutput != "" && !opts.SummaryMode {
		messages = append(messages, NewMessage(models.RoleAssistant, strings.TrimSpace(as.ModelOutput)))
	}

	// A non-nil empty slice still renders: the distinction mirrors the
	// producer recording "the model called no tools" versus "no tool phase
	// happened at all".
	if as.ToolCalls != nil {
		messages = append(messages,
			NewMessage(models.RoleAssistant, "Calling tools:\n"+dumpToolCalls(as.ToolCalls)))
	}

	if as.Observations != "" {
		text := "Observation:\n" + as.Observations
		if len(as.ToolCalls) > 0 {
			text = fmt.Sprintf("Call id: %s\n", as.ToolCalls[0].ID) + text
		}
		messages = append(messages, NewMessage(models.RoleToolResponse, text))
	}

	if as.Error != nil {
		content := ""
		if len(as.ToolCalls) > 0 {
			content = fmt.Sprintf("Call id: %s\n", as.ToolCalls[0].ID)
		}
		content += "Error:\n" + as.Error.Error() + retryGuidance
		messages = append(messages, NewMessage(models.RoleToolResponse, content))
	}

	if len(as.ObservationsImages) > 0 {
		content := []ContentPart{TextPart("Here are the observed images:")}
		for _, img := range as.ObservationsImages {
			content = append(content, ImagePart(img))
		}
		messages = append(messages, Message{Role: models.RoleUser, Content: content})
	}

	for _, ext := range actionExtensions {
		var err error
		messages, err = ext.Append(as, opts, messages)
		if err != nil {
			return nil, fmt.Errorf("action step %d: extension %q: %w", as.StepNumber, ext.Name(), err)
		}
	}

	return messages, nil
}

// ToDict implements MemoryStep. The key set is fixed and every key is always
// present; downstream tooling depends on the names (note "step", not
// "step_number").
func (as *ActionStep) ToDict() map[string]interface{} {
	var errDict interface{}
	if as.Error != nil {
		errDict = as.Error.ToDict()
	}

	return map[string]interface{}{
		"model_input_messages": messagesToDicts(as.ModelInputMessages),
		"tool_calls":           toolCallsToDicts(as.ToolCalls),
		"start_time":           timeOrNil(as.StartTime),
		"end_time":             timeOrNil(as.EndTime),
		"step":                 as.StepNumber,
		"error":                errDict,
		"duration":             durationOrNil(as.Duration),
		"model_output_message": chatMessageDict(as.ModelOutputMessage),
		"model_output":         stringOrNil(as.ModelOutput),
		"observations":         stringOrNil(as.Observations),
		"action_output":        utils.MakeJSONSerializable(as.ActionOutput),
	}
}

func chatMessageDict(cm *models.ChatMessage) interface{} {
	if cm == nil {
		return nil
	}
	return cm.ToDict()
}

func timeOrNil(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func durationOrNil(d time.Duration) interface{} {
	if d == 0 {
		return nil
	}
	return d.Seconds()
}

func stringOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
