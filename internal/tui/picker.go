// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"
)

const (
	defaultHeight = 14
	defaultWidth  = 60
)

type (
	// PickerOptions configures Pick.
	PickerOptions struct {
		// Title is displayed above the list.
		Title string
		// Options are the lines to choose from, in display order.
		Options []string
		// Height and Width size the list before the first resize (0 for defaults).
		Height int
		Width  int
		// TitleColor is a lipgloss color for the title (empty for the default).
		TitleColor string
		// Input and Output default to os.Stdin and os.Stderr.
		Input  io.Reader
		Output io.Writer
	}

	pickerItem string

	pickerModel struct {
		list      list.Model
		choice    string
		done      bool
		cancelled bool
	}
)

func (i pickerItem) Title() string       { return string(i) }
func (i pickerItem) Description() string { return "" }
func (i pickerItem) FilterValue() string { return string(i) }

// IsInputTerminal reports whether f is connected to a terminal.
func IsInputTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newPickerModel(opts PickerOptions) pickerModel {
	items := make([]list.Item, len(opts.Options))
	for i, opt := range opts.Options {
		items[i] = pickerItem(opt)
	}

	height := opts.Height
	if height == 0 {
		height = defaultHeight
	}
	width := opts.Width
	if width == 0 {
		width = defaultWidth
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, width, height)
	l.Title = opts.Title
	l.Filter = fuzzyFilter
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	// Quitting is handled by the model so a quit never reads as a choice.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	titleColor := opts.TitleColor
	if titleColor == "" {
		titleColor = "212"
	}
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(titleColor))

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.cancel()
		case "esc":
			// esc first clears an active filter, then cancels.
			if m.list.FilterState() == list.Unfiltered {
				return m.cancel()
			}
		case "enter":
			if m.list.FilterState() == list.Filtering && len(m.list.VisibleItems()) == 0 {
				return m, nil
			}
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.choice = string(item)
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) cancel() (tea.Model, tea.Cmd) {
	m.cancelled = true
	m.done = true
	return m, tea.Quit
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	return m.list.View()
}

// Pick runs the picker and returns the chosen line, or "" when the
// operator cancels or there is nothing to choose from.
func Pick(ctx context.Context, opts PickerOptions) (string, error) {
	if len(opts.Options) == 0 {
		return "", nil
	}

	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	p := tea.NewProgram(newPickerModel(opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	m, ok := final.(pickerModel)
	if !ok || m.cancelled {
		return "", nil
	}
	return m.choice, nil
}

// fuzzyFilter ranks targets by fuzzy match score, best first. Targets with
// equal scores keep their original order.
func fuzzyFilter(query string, targets []string) []list.Rank {
	matches := fuzzy.Find(query, targets)
	sort.Stable(matches)

	ranks := make([]list.Rank, len(matches))
	for i, m := range matches {
		ranks[i] = list.Rank{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return ranks
}
