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

package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromptManagerLoadsDefault(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	assert.Contains(t, pm.Names(), "default")

	tmpl, err := pm.Get("default")
	require.NoError(t, err)
	assert.NotEmpty(t, tmpl.SystemPrompt)
	assert.NotEmpty(t, tmpl.InitialFactsPrompt)
	assert.NotEmpty(t, tmpl.InitialPlanPrompt)

	_, err = pm.Get("missing")
	assert.Error(t, err)
}

func TestRenderSystemPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	rendered, err := pm.RenderSystemPrompt("default", map[string]interface{}{
		"agent_name": "test agent",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered, "You are test agent,")
	assert.NotContains(t, rendered, "{{")
}

func TestRenderSystemPromptUsesDefaults(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	rendered, err := pm.RenderSystemPrompt("default", nil)
	require.NoError(t, err)
	assert.Contains(t, rendered, "You are agent,")
}

func TestRenderTaskPrompts(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	vars := map[string]interface{}{"task": "find the answer"}

	facts, err := pm.RenderInitialFactsPrompt("default", vars)
	require.NoError(t, err)
	assert.Contains(t, facts, "find the answer")

	plan, err := pm.RenderInitialPlanPrompt("default", vars)
	require.NoError(t, err)
	assert.Contains(t, plan, "find the answer")
}
