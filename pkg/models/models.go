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

// Package models provides the message vocabulary shared between the agent
// memory and the model clients.
//
// This includes conversation roles, chat messages returned by models, and
// multimodal content references.
package models

import (
	"encoding/json"

	"github.com/xingyunyang/agentmemory_go/pkg/monitoring"
)

// MessageRole represents the role of a message in conversation
type MessageRole string

const (
	RoleUser         MessageRole = "user"
	RoleAssistant    MessageRole = "assistant"
	RoleSystem       MessageRole = "system"
	RoleToolCall     MessageRole = "tool-call"
	RoleToolResponse MessageRole = "tool-response"
)

// Roles returns all available message roles
func (MessageRole) Roles() []string {
	return []string{
		string(RoleUser),
		string(RoleAssistant),
		string(RoleSystem),
		string(RoleToolCall),
		string(RoleToolResponse),
	}
}

// ToolRoleConversions maps tool-specific roles to standard roles
var ToolRoleConversions = map[MessageRole]MessageRole{
	RoleToolCall:     RoleAssistant,
	RoleToolResponse: RoleUser,
}

// ChatMessageToolCallDefinition defines a function call within a tool call
type ChatMessageToolCallDefinition struct {
	Arguments   interface{} `json:"arguments"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
}

// ChatMessageToolCall represents a tool call made by the model
type ChatMessageToolCall struct {
	Function ChatMessageToolCallDefinition `json:"function"`
	ID       string                        `json:"id"`
	Type     string                        `json:"type"`
}

// ChatMessage represents a message in the conversation
type ChatMessage struct {
	Role       string                 `json:"role"`
	Content    *string                `json:"content,omitempty"`
	ToolCalls  []ChatMessageToolCall  `json:"tool_calls,omitempty"`
	Raw        interface{}            `json:"-"` // Stores raw output from API
	TokenUsage *monitoring.TokenUsage `json:"token_usage,omitempty"`
}

// NewChatMessage creates a new chat message
func NewChatMessage(role string, content string) *ChatMessage {
	return &ChatMessage{
		Role:    role,
		Content: &content,
	}
}

// ModelDumpJSON returns JSON representation excluding raw field
func (cm *ChatMessage) ModelDumpJSON() ([]byte, error) {
	copy := struct {
		Role       string                 `json:"role"`
		Content    *string                `json:"content,omitempty"`
		ToolCalls  []ChatMessageToolCall  `json:"tool_calls,omitempty"`
		TokenUsage *monitoring.TokenUsage `json:"token_usage,omitempty"`
	}{
		Role:       cm.Role,
		Content:    cm.Content,
		ToolCalls:  cm.ToolCalls,
		TokenUsage: cm.TokenUsage,
	}
	return json.Marshal(copy)
}

// FromDict creates a ChatMessage from a dictionary
func (cm *ChatMessage) FromDict(data map[string]interface{}, raw interface{}, tokenUsage *monitoring.TokenUsage) error {
	if role, ok := data["role"].(string); ok {
		cm.Role = role
	}

	if content, ok := data["content"].(string); ok {
		cm.Content = &content
	}

	if toolCallsData, ok := data["tool_calls"].([]interface{}); ok {
		cm.ToolCalls = make([]ChatMessageToolCall, len(toolCallsData))
		for i, tcData := range toolCallsData {
			if tcMap, ok := tcData.(map[string]interface{}); ok {
				var tc ChatMessageToolCall
				if id, ok := tcMap["id"].(string); ok {
					tc.ID = id
				}
				if tcType, ok := tcMap["type"].(string); ok {
					tc.Type = tcType
				}
				if function, ok := tcMap["function"].(map[string]interface{}); ok {
					if name, ok := function["name"].(string); ok {
						tc.Function.Name = name
					}
					if args, ok := function["arguments"]; ok {
						tc.Function.Arguments = args
					}
					if desc, ok := function["description"].(string); ok {
						tc.Function.Description = &desc
					}
				}
				cm.ToolCalls[i] = tc
			}
		}
	}

	cm.Raw = raw
	cm.TokenUsage = tokenUsage
	return nil
}

// ToDict returns a dictionary representation of the message
func (cm *ChatMessage) ToDict() map[string]interface{} {
	result := map[string]interface{}{
		"role": cm.Role,
	}

	if cm.Content != nil {
		result["content"] = *cm.Content
	}

	if len(cm.ToolCalls) > 0 {
		toolCalls := make([]map[string]interface{}, len(cm.ToolCalls))
		for i, tc := range cm.ToolCalls {
			function := map[string]interface{}{
				"name":      tc.Function.Name,
				"arguments": tc.Function.Arguments,
			}
			if tc.Function.Description != nil {
				function["description"] = *tc.Function.Description
			}

			toolCalls[i] = map[string]interface{}{
				"id":       tc.ID,
				"type":     tc.Type,
				"function": function,
			}
		}
		result["tool_calls"] = toolCalls
	}

	if cm.TokenUsage != nil {
		result["token_usage"] = map[string]interface{}{
			"input_tokens":  cm.TokenUsage.InputTokens,
			"output_tokens": cm.TokenUsage.OutputTokens,
		}
	}

	return result
}
