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
	"encoding/json"
	"fmt"

	"github.com/xingyunyang/agentmemory_go/pkg/utils"
)

// ToolCall records one tool invocation made by the agent. Arguments may hold
// arbitrary structured data, including values with no native serialization;
// rendering coerces them defensively. Immutable once constructed.
type ToolCall struct {
	Name      string      `json:"name"`
	Arguments interface{} `json:"arguments"`
	ID        string      `json:"id"`
}

// ToDict returns the canonical wire form of the tool call
func (tc ToolCall) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":   tc.ID,
		"type": "function",
		"function": map[string]interface{}{
			"name":      tc.Name,
			"arguments": utils.MakeJSONSerializable(tc.Arguments),
		},
	}
}

// toolCallsToDicts renders tool calls for persistence. A nil input becomes an
// empty slice: the record key is always present.
func toolCallsToDicts(calls []ToolCall) []map[string]interface{} {
	dicts := make([]map[string]interface{}, len(calls))
	for i, tc := range calls {
		dicts[i] = tc.ToDict()
	}
	return dicts
}

// dumpToolCalls renders tool calls as a human-readable JSON dump for the
// "Calling tools:" message.
func dumpToolCalls(calls []ToolCall) string {
	data, err := json.Marshal(toolCallsToDicts(calls))
	if err != nil {
		return fmt.Sprintf("%v", calls)
	}
	return string(data)
}
