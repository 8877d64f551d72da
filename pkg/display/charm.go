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

package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/xingyunyang/agentmemory_go/pkg/memory"
)

// CharmDisplay renders replay events with Charmbracelet styling: markdown
// through glamour, panels through lipgloss, message dumps as go-pretty
// tables. It implements memory.ReplayLogger.
type CharmDisplay struct {
	width       int
	styles      *displayStyles
	renderer    *glamour.TermRenderer
	termProfile termenv.Profile
}

type displayStyles struct {
	Rule         lipgloss.Style
	Task         lipgloss.Style
	TaskSubtitle lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
}

// NewCharmDisplay creates a new display instance with Charmbracelet styling
func NewCharmDisplay() *CharmDisplay {
	width := getTerminalWidth()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)

	return &CharmDisplay{
		width:       width,
		styles:      createStyles(),
		renderer:    renderer,
		termProfile: termenv.ColorProfile(),
	}
}

func createStyles() *displayStyles {
	yellow := lipgloss.AdaptiveColor{Light: "#FFD700", Dark: "#FFD700"}
	gray := lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	return &displayStyles{
		Rule: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),

		Task: lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(yellow).
			Padding(0, 2),

		TaskSubtitle: lipgloss.NewStyle().
			Foreground(gray).
			Italic(true),

		Title: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),

		Body: lipgloss.NewStyle().
			PaddingLeft(3),
	}
}

// Log prints a plain line
func (d *CharmDisplay) Log(content string) {
	fmt.Println(content)
}

// LogRule prints a horizontal rule with optional title
func (d *CharmDisplay) LogRule(title string) {
	ruleChar := "━"

	if title == "" {
		fmt.Println(d.styles.Rule.Render(strings.Repeat(ruleChar, d.width)))
		return
	}

	titleWithSpaces := fmt.Sprintf(" %s ", title)
	titleLen := lipgloss.Width(titleWithSpaces)
	remainingWidth := d.width - titleLen
	leftPadding := remainingWidth / 2
	rightPadding := remainingWidth - leftPadding

	if leftPadding < 3 {
		leftPadding = 3
		rightPadding = 3
	}

	rule := strings.Repeat(ruleChar, leftPadding) + titleWithSpaces + strings.Repeat(ruleChar, rightPadding)
	fmt.Println(d.styles.Rule.Render(rule))
}

// LogTask prints a task banner with title and subtitle
func (d *CharmDisplay) LogTask(content, subtitle string) {
	fmt.Println()
	fmt.Println(d.styles.Task.Render("New task\n\n" + content))
	if subtitle != "" {
		fmt.Println(d.styles.TaskSubtitle.Render(subtitle))
	}
	fmt.Println()
}

// LogMarkdown prints a titled markdown block rendered for the terminal
func (d *CharmDisplay) LogMarkdown(title, content string) {
	if content == "" {
		return
	}
	fmt.Println()
	if title != "" {
		fmt.Println(d.styles.Title.Render(title))
	}

	if rendered, err := d.renderer.Render(content); err == nil {
		fmt.Print(rendered)
	} else {
		fmt.Println(d.styles.Body.Render(content))
	}
}

// LogMessages prints the given messages as a role/content table
func (d *CharmDisplay) LogMessages(messages []memory.Message) {
	if len(messages) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Role", "Content"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: d.width - 20},
	})

	for _, msg := range messages {
		t.AppendRow(table.Row{string(msg.Role), msg.Text()})
	}
	t.Render()
}

// getTerminalWidth returns the current terminal width
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	return width
}
