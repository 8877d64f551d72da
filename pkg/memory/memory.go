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

import "fmt"

// ReplayLogger is the sink Replay writes to. Implementations render the
// structured events however they like (plain text, colored panels, markdown).
type ReplayLogger interface {
	// Log emits a plain line
	Log(content string)

	// LogRule emits a horizontal rule with a title
	LogRule(title string)

	// LogTask emits a task banner
	LogTask(content, subtitle string)

	// LogMarkdown emits a titled markdown block
	LogMarkdown(title, content string)

	// LogMessages emits a raw message dump
	LogMessages(messages []Message)
}

// AgentMemory is the ordered step log for one agent run. The system prompt is
// fixed at construction and never part of the step sequence; steps preserve
// insertion order and are the sole source of truth for dumps and replay.
type AgentMemory struct {
	systemPrompt *SystemPromptStep
	steps        []MemoryStep
}

// NewAgentMemory creates a new agent memory seeded with the system prompt
func NewAgentMemory(systemPrompt string) *AgentMemory {
	return &AgentMemory{
		systemPrompt: NewSystemPromptStep(systemPrompt),
		steps:        make([]MemoryStep, 0),
	}
}

// SystemPrompt returns the system prompt step
func (am *AgentMemory) SystemPrompt() *SystemPromptStep {
	return am.systemPrompt
}

// Steps returns the recorded steps in chronological order
func (am *AgentMemory) Steps() []MemoryStep {
	return am.steps
}

// AddStep appends a step to memory. Only task, action and planning steps
// belong in the sequence: the system prompt is fixed at construction and
// critic steps are owned by the action step they review. Appending either is
// a programming error and panics.
func (am *AgentMemory) AddStep(step MemoryStep) {
	switch step.(type) {
	case *SystemPromptStep:
		panic("memory: the system prompt is not part of the step sequence")
	case *CriticStep:
		panic("memory: critic steps are attached to an action step, not appended directly")
	}
	am.steps = append(am.steps, step)
}

// Reset clears the step sequence. The system prompt is untouched.
func (am *AgentMemory) Reset() {
	am.steps = make([]MemoryStep, 0)
}

// GetStepCount returns the number of recorded steps
func (am *AgentMemory) GetStepCount() int {
	return len(am.steps)
}

// GetLastStep returns the most recent step, or nil when memory is empty
func (am *AgentMemory) GetLastStep() MemoryStep {
	if len(am.steps) == 0 {
		return nil
	}
	return am.steps[len(am.steps)-1]
}

// GetActionSteps returns only the action steps, in order
func (am *AgentMemory) GetActionSteps() []*ActionStep {
	var actionSteps []*ActionStep
	for _, step := range am.steps {
		if actionStep, ok := step.(*ActionStep); ok {
			actionSteps = append(actionSteps, actionStep)
		}
	}
	return actionSteps
}

// GetPlanningSteps returns only the planning steps, in order
func (am *AgentMemory) GetPlanningSteps() []*PlanningStep {
	var planningSteps []*PlanningStep
	for _, step := range am.steps {
		if planningStep, ok := step.(*PlanningStep); ok {
			planningSteps = append(planningSteps, planningStep)
		}
	}
	return planningSteps
}

// GetFullSteps returns every step's record, unredacted
func (am *AgentMemory) GetFullSteps() []map[string]interface{} {
	steps := make([]map[string]interface{}, len(am.steps))
	for i, step := range am.steps {
		steps[i] = step.ToDict()
	}
	return steps
}

// GetSuccinctSteps returns every step's record with the raw input-message
// payloads stripped. Input messages can be enormous; everything else,
// including nested tool-call and error renderings, is preserved.
func (am *AgentMemory) GetSuccinctSteps() []map[string]interface{} {
	steps := make([]map[string]interface{}, len(am.steps))
	for i, step := range am.steps {
		dict := step.ToDict()
		delete(dict, "model_input_messages")
		steps[i] = dict
	}
	return steps
}

// WriteMemoryToMessages reconstructs the full chat history for model
// consumption: the system prompt's messages followed by each step's messages,
// in order.
func (am *AgentMemory) WriteMemoryToMessages(opts MessageOptions) ([]Message, error) {
	messages, err := am.systemPrompt.ToMessages(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render system prompt: %w", err)
	}

	for i, step := range am.steps {
		stepMessages, err := step.ToMessages(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to render step %d (%s): %w", i, step.Type(), err)
		}
		messages = append(messages, stepMessages...)
	}

	return messages, nil
}

// Replay prints a replay of the agent's steps to the given sink. With
// detailed set, the raw model input messages of each step are dumped as well;
// careful, that grows the output very quickly. Replay never mutates memory.
func (am *AgentMemory) Replay(logger ReplayLogger, detailed bool) {
	logger.Log("Replaying the agent's steps:")

	for _, step := range am.steps {
		switch s := step.(type) {
		case *SystemPromptStep:
			if detailed {
				logger.LogMarkdown("System prompt", s.SystemPrompt)
			}
		case *TaskStep:
			logger.LogTask(s.Task, "")
		case *ActionStep:
			logger.LogRule(fmt.Sprintf("Step %d", s.StepNumber))
			if detailed {
				logger.LogMessages(s.ModelInputMessages)
			}
			logger.LogMarkdown("Agent output:", s.ModelOutput)
		case *PlanningStep:
			logger.LogRule("Planning step")
			if detailed {
				logger.LogMessages(s.ModelInputMessages)
			}
			logger.LogMarkdown("Agent output:", s.Facts+"\n"+s.Plan)
		case *CriticStep:
			// never in the sequence; reviews replay with their action step
		}
	}
}
