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

// Package display provides CLI output formatting for agent memory replay
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/xingyunyang/agentmemory_go/pkg/memory"
)

// Colors for consistent theming
var (
	yellowColor = color.New(color.FgYellow, color.Bold)
	whiteColor  = color.New(color.FgWhite)
	dimColor    = color.New(color.Faint)
	boldColor   = color.New(color.Bold)
)

// Display renders replay events as colored plain text. It implements
// memory.ReplayLogger.
type Display struct {
	verbose bool
	width   int
	out     io.Writer
}

// New creates a new Display instance
func New(verbose bool) *Display {
	return &Display{
		verbose: verbose,
		width:   80,
		out:     os.Stdout,
	}
}

// SetOutput redirects the display output
func (d *Display) SetOutput(w io.Writer) {
	d.out = w
}

// Log prints a plain line
func (d *Display) Log(content string) {
	fmt.Fprintln(d.out, content)
}

// LogRule prints a horizontal rule with optional title
func (d *Display) LogRule(title string) {
	ruleChar := "━"
	if title == "" {
		fmt.Fprintln(d.out, yellowColor.Sprint(strings.Repeat(ruleChar, d.width)))
		return
	}

	titleWithSpaces := fmt.Sprintf(" %s ", title)
	titleLen := len(titleWithSpaces)
	leftPadding := (d.width - titleLen) / 2
	rightPadding := d.width - titleLen - leftPadding

	if leftPadding < 3 {
		leftPadding = 3
		rightPadding = 3
	}

	fmt.Fprintln(d.out, yellowColor.Sprint(
		strings.Repeat(ruleChar, leftPadding)+
			boldColor.Sprint(titleWithSpaces)+
			strings.Repeat(ruleChar, rightPadding),
	))
}

// LogTask prints a task banner with title and subtitle
func (d *Display) LogTask(content, subtitle string) {
	d.LogRule("")
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, boldColor.Sprint("Task: ")+whiteColor.Sprint(content))
	if subtitle != "" {
		fmt.Fprintln(d.out, dimColor.Sprint(subtitle))
	}
	fmt.Fprintln(d.out)
}

// LogMarkdown prints a titled text block. The plain display does not render
// markdown; it indents the content under the title.
func (d *Display) LogMarkdown(title, content string) {
	if content == "" {
		return
	}
	fmt.Fprintln(d.out)
	if title != "" {
		fmt.Fprintln(d.out, boldColor.Sprint(title))
	}
	fmt.Fprintln(d.out, d.indent(content, 3))
}

// LogMessages prints a raw dump of the given messages
func (d *Display) LogMessages(messages []memory.Message) {
	if len(messages) == 0 {
		return
	}
	for _, msg := range messages {
		fmt.Fprintln(d.out, dimColor.Sprintf("[%s]", msg.Role))
		fmt.Fprintln(d.out, d.indent(msg.Text(), 3))
	}
}

// indent adds spaces to the beginning of each line
func (d *Display) indent(content string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
