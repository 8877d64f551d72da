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

// Command demo records a small synthetic agent run in memory, dumps it, and
// replays it through the selected display sink.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/xingyunyang/agentmemory_go/pkg/display"
	"github.com/xingyunyang/agentmemory_go/pkg/memory"
	"github.com/xingyunyang/agentmemory_go/pkg/models"
	"github.com/xingyunyang/agentmemory_go/pkg/monitoring"
	"github.com/xingyunyang/agentmemory_go/pkg/prompts"
	"github.com/xingyunyang/agentmemory_go/pkg/utils"
)

func main() {
	detailed := flag.Bool("detailed", false, "also dump model input messages during replay")
	plain := flag.Bool("plain", false, "use the plain display instead of the Charmbracelet one")
	imagePath := flag.String("image", "", "attach an image file to the task")
	flag.Parse()

	// The critic extension must be installed before any step is rendered.
	memory.InstallCriticReview()

	if err := run(*detailed, *plain, *imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run(detailed, plain bool, imagePath string) error {
	level := monitoring.LogLevelINFO
	if detailed {
		level = monitoring.LogLevelDEBUG
	}
	monitoring.SetDefaultLogLevel(level)
	logger := monitoring.GetDefaultLogger()
	monitor := monitoring.NewMonitor(logger)

	pm, err := prompts.NewPromptManager()
	if err != nil {
		return err
	}
	systemPrompt, err := pm.RenderSystemPrompt("default", map[string]interface{}{
		"agent_name": "demo agent",
	})
	if err != nil {
		return err
	}

	mem := memory.NewAgentMemory(systemPrompt)
	if err := recordRun(mem, monitor, imagePath); err != nil {
		return err
	}

	messages, err := mem.WriteMemoryToMessages(memory.MessageOptions{})
	if err != nil {
		return err
	}
	logger.Info("Reconstructed %d messages from memory", len(messages))

	full, err := json.MarshalIndent(mem.GetFullSteps(), "", "  ")
	if err != nil {
		return err
	}
	logger.Debug("Full dump:\n%s", full)

	succinct, err := json.MarshalIndent(mem.GetSuccinctSteps(), "", "  ")
	if err != nil {
		return err
	}
	logger.Info("Succinct dump:\n%s", succinct)

	var sink memory.ReplayLogger
	if plain {
		sink = display.New(detailed)
	} else {
		sink = display.NewCharmDisplay()
	}
	mem.Replay(sink, detailed)

	monitor.LogSummary()
	return nil
}

// recordRun fills memory with a task, a planning pass, and two action cycles
// (one failing, one reviewed by the critic).
func recordRun(mem *memory.AgentMemory, monitor *monitoring.Monitor, imagePath string) error {
	logger := monitor.GetLogger()

	task := "What is the 10th Fibonacci number?"
	taskStep := memory.NewTaskStep(task)
	if imagePath != "" {
		img, err := models.LoadImageFromFile(imagePath)
		if err != nil {
			return err
		}
		taskStep = memory.NewTaskStep(task, img)
	}
	mem.AddStep(taskStep)

	facts := "1. The task asks for the 10th Fibonacci number.\n2. The sequence starts 0, 1."
	plan := "1. Compute the sequence iteratively up to index 10.\n2. Return the value."
	mem.AddStep(&memory.PlanningStep{
		ModelInputMessages:      []memory.Message{memory.NewMessage(models.RoleUser, task)},
		ModelOutputMessageFacts: models.NewChatMessage("assistant", facts),
		Facts:                   facts,
		ModelOutputMessagePlan:  models.NewChatMessage("assistant", plan),
		Plan:                    plan,
	})

	// First attempt: the tool call fails.
	timing1 := monitoring.NewTiming()
	step1 := memory.NewActionStep(1)
	step1.ModelInputMessages = []memory.Message{memory.NewMessage(models.RoleUser, task)}
	step1.ModelOutput = "I will use the calculator tool."
	step1.ToolCalls = []memory.ToolCall{{
		Name:      "calculator",
		Arguments: map[string]interface{}{"expression": "fib(10"},
		ID:        "call_1",
	}}
	step1.Error = utils.NewAgentToolExecutionError("calculator: unbalanced parenthesis in expression")
	step1.End()
	timing1.End()
	mem.AddStep(step1)

	usage1 := monitoring.NewTokenUsage(180, 40)
	logger.LogTiming("step 1", timing1)
	logger.LogTokenUsage(usage1)
	monitor.UpdateMetrics(step1.StepNumber, step1.Duration, usage1)

	// Second attempt succeeds and is reviewed by the critic.
	timing2 := monitoring.NewTiming()
	step2 := memory.NewActionStep(2)
	step2.ModelInputMessages = []memory.Message{memory.NewMessage(models.RoleUser, task)}
	step2.ModelOutput = "Retrying with a fixed expression."
	step2.ToolCalls = []memory.ToolCall{{
		Name:      "calculator",
		Arguments: map[string]interface{}{"expression": "fib(10)"},
		ID:        "call_2",
	}}
	step2.Observations = "55"
	step2.ActionOutput = 55
	step2.End()

	review := memory.NewCriticStep("The computation is correct and the answer matches the plan.", true)
	review.ModelOutputMessage = models.NewChatMessage("assistant", "Looks good.")
	review.End()
	step2.AddCriticStep(review)

	mem.AddStep(step2)
	timing2.End()

	usage2 := monitoring.NewTokenUsage(220, 30)
	logger.LogTiming("step 2", timing2)
	logger.LogTokenUsage(usage2)
	monitor.UpdateMetrics(step2.StepNumber, step2.Duration, usage2)

	// Give the total row in the summary table something visible.
	time.Sleep(10 * time.Millisecond)
	return nil
}
