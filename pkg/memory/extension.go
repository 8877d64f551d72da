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

// ActionMessagesExtension adds messages after an action step's own rendering,
// letting optional capabilities (such as critic review) extend the message
// output without the base type knowing about them. Extensions run in
// registration order; each receives the messages produced so far and returns
// the extended list. Returning an error aborts the whole rendering.
type ActionMessagesExtension interface {
	// Name identifies the extension. Registering a second extension under
	// the same name replaces the first.
	Name() string

	// Append extends the rendered messages for the given step
	Append(step *ActionStep, opts MessageOptions, messages []Message) ([]Message, error)
}

// actionExtensions is the ordered extension list consulted by
// ActionStep.ToMessages. Registration is keyed by name, so installing the
// same extension twice has no additional effect.
var actionExtensions []ActionMessagesExtension

// RegisterActionExtension installs an extension process-wide. Call it during
// initialization, before any rendering starts: the registry is not guarded
// against concurrent mutation (the memory core assumes a single-threaded
// producer).
func RegisterActionExtension(ext ActionMessagesExtension) {
	for i, existing := range actionExtensions {
		if existing.Name() == ext.Name() {
			actionExtensions[i] = ext
			return
		}
	}
	actionExtensions = append(actionExtensions, ext)
}

// UnregisterActionExtension removes the extension with the given name, if
// installed
func UnregisterActionExtension(name string) {
	for i, existing := range actionExtensions {
		if existing.Name() == name {
			actionExtensions = append(actionExtensions[:i], actionExtensions[i+1:]...)
			return
		}
	}
}
