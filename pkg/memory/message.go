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

// Package memory provides memory management for agent execution history.
//
// An agent run is recorded as an append-only sequence of typed steps (system
// prompt, task, planning, action, critic review). Each step knows how to
// render itself as a plain key/value record for persistence and as an ordered
// list of chat messages for model consumption.
package memory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xingyunyang/agentmemory_go/pkg/models"
	"github.com/xingyunyang/agentmemory_go/pkg/utils"
)

// ContentPart is one tagged element of a message body: text or an image
// reference.
type ContentPart struct {
	Type  string               `json:"type"`
	Text  string               `json:"text,omitempty"`
	Image *models.MediaContent `json:"image,omitempty"`
}

// TextPart creates a text content part
func TextPart(text string) ContentPart {
	return ContentPart{Type: string(models.MediaTypeText), Text: text}
}

// ImagePart creates an image content part
func ImagePart(image *models.MediaContent) ContentPart {
	return ContentPart{Type: string(models.MediaTypeImage), Image: image}
}

// Message is a role-tagged content unit in the format consumed by a language
// model conversation. Messages are value objects: rendering produces fresh
// instances and never mutates existing ones.
type Message struct {
	Role    models.MessageRole `json:"role"`
	Content []ContentPart      `json:"content"`
}

// NewMessage creates a message holding a single text part
func NewMessage(role models.MessageRole, text string) Message {
	return Message{
		Role:    role,
		Content: []ContentPart{TextPart(text)},
	}
}

// ToDict converts the message to a dictionary representation
func (m Message) ToDict() map[string]interface{} {
	content := make([]interface{}, len(m.Content))
	for i, part := range m.Content {
		p := map[string]interface{}{"type": part.Type}
		if part.Type == "text" {
			p["text"] = part.Text
		}
		if part.Image != nil {
			p["image"] = part.Image.ToDict()
		}
		content[i] = p
	}

	return map[string]interface{}{
		"role":    string(m.Role),
		"content": content,
	}
}

// Text concatenates the text parts of the message, separated by newlines.
// Image parts are skipped.
func (m Message) Text() string {
	var parts []string
	for _, part := range m.Content {
		if part.Type == "text" && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// messagesToDicts renders a message list for persistence. A nil input stays
// nil so that record consumers can distinguish "absent" from "empty".
func messagesToDicts(messages []Message) []map[string]interface{} {
	if messages == nil {
		return nil
	}
	dicts := make([]map[string]interface{}, len(messages))
	for i, m := range messages {
		dicts[i] = m.ToDict()
	}
	return dicts
}

// dumpMessages renders a message list as indented JSON for debugging echoes
// and replay output.
func dumpMessages(messages []Message) string {
	dicts := messagesToDicts(messages)
	data, err := json.MarshalIndent(utils.MakeJSONSerializable(dicts), "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", dicts)
	}
	return string(data)
}
