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

// Package utils provides error types and serialization helpers for the
// agent memory library.
package utils

import "fmt"

// AgentError is the base error type for all agent-related errors
type AgentError struct {
	Message string
	Cause   error
	errType string
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

// ToDict returns a JSON-representable form of the error
func (e *AgentError) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type":    e.errType,
		"message": e.Error(),
	}
}

func newAgentError(errType, message string, cause []error) *AgentError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AgentError{Message: message, Cause: c, errType: errType}
}

// NewAgentError creates a new AgentError
func NewAgentError(message string, cause ...error) *AgentError {
	return newAgentError("AgentError", message, cause)
}

// AgentParsingError represents errors during parsing operations
type AgentParsingError struct {
	*AgentError
}

// NewAgentParsingError creates a new AgentParsingError
func NewAgentParsingError(message string, cause ...error) *AgentParsingError {
	return &AgentParsingError{AgentError: newAgentError("AgentParsingError", message, cause)}
}

// AgentExecutionError represents errors during agent execution
type AgentExecutionError struct {
	*AgentError
}

// NewAgentExecutionError creates a new AgentExecutionError
func NewAgentExecutionError(message string, cause ...error) *AgentExecutionError {
	return &AgentExecutionError{AgentError: newAgentError("AgentExecutionError", message, cause)}
}

// AgentMaxStepsError represents errors when max steps are exceeded
type AgentMaxStepsError struct {
	*AgentError
}

// NewAgentMaxStepsError creates a new AgentMaxStepsError
func NewAgentMaxStepsError(message string, cause ...error) *AgentMaxStepsError {
	return &AgentMaxStepsError{AgentError: newAgentError("AgentMaxStepsError", message, cause)}
}

// AgentToolCallError represents errors during tool calls
type AgentToolCallError struct {
	*AgentError
}

// NewAgentToolCallError creates a new AgentToolCallError
func NewAgentToolCallError(message string, cause ...error) *AgentToolCallError {
	return &AgentToolCallError{AgentError: newAgentError("AgentToolCallError", message, cause)}
}

// AgentToolExecutionError represents errors during tool execution
type AgentToolExecutionError struct {
	*AgentError
}

// NewAgentToolExecutionError creates a new AgentToolExecutionError
func NewAgentToolExecutionError(message string, cause ...error) *AgentToolExecutionError {
	return &AgentToolExecutionError{AgentError: newAgentError("AgentToolExecutionError", message, cause)}
}

// AgentGenerationError represents errors during model generation
type AgentGenerationError struct {
	*AgentError
}

// NewAgentGenerationError creates a new AgentGenerationError
func NewAgentGenerationError(message string, cause ...error) *AgentGenerationError {
	return &AgentGenerationError{AgentError: newAgentError("AgentGenerationError", message, cause)}
}
