// Package ui is the interactive catalog browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fdb/internal/catalog"
	"fdb/pkg/models"
)

type state int

const (
	stateLoading state = iota
	stateList
	stateDetail
	stateError
)

type model struct {
	cat          *catalog.Catalog
	details      []models.EntryDetail
	cursor       int
	currentState state
	err          error
	width        int
	height       int
}

// --- Messages ---

type entriesLoadedMsg struct {
	details []models.EntryDetail
}
type entryRemovedMsg struct{}
type errorMsg struct {
	err error
}

// --- Commands ---

func loadEntriesCmd(cat *catalog.Catalog) tea.Cmd {
	return func() tea.Msg {
		details, err := cat.List(0, "")
		if err != nil {
			return errorMsg{err}
		}
		return entriesLoadedMsg{details}
	}
}

func removeEntryCmd(cat *catalog.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := cat.Remove(id); err != nil {
			return errorMsg{fmt.Errorf("remove failed for entry %d: %w", id, err)}
		}
		return entryRemovedMsg{}
	}
}

// --- Model implementation ---

// New creates the browse model over an open catalog.
func New(cat *catalog.Catalog) tea.Model {
	return model{cat: cat, currentState: stateLoading}
}

func (m model) Init() tea.Cmd {
	return loadEntriesCmd(m.cat)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesLoadedMsg:
		m.details = msg.details
		if m.cursor >= len(m.details) {
			m.cursor = len(m.details) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.currentState = stateList
		return m, nil

	case entryRemovedMsg:
		m.currentState = stateLoading
		return m, loadEntriesCmd(m.cat)

	case errorMsg:
		m.err = msg.err
		m.currentState = stateError
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	switch m.currentState {
	case stateList:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.details)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.details) > 0 {
				m.currentState = stateDetail
			}
		case key.Matches(msg, keys.Delete):
			if len(m.details) > 0 {
				return m, removeEntryCmd(m.cat, m.details[m.cursor].Entry.ID)
			}
		}
	case stateDetail:
		if key.Matches(msg, keys.Back) {
			m.currentState = stateList
		}
	case stateError:
		if key.Matches(msg, keys.Back) {
			m.err = nil
			m.currentState = stateLoading
			return m, loadEntriesCmd(m.cat)
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fdb"))
	b.WriteString("\n\n")

	switch m.currentState {
	case stateLoading:
		b.WriteString(dimStyle.Render("Loading entries..."))
	case stateError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(m.footer("esc", "retry", "q", "quit"))
		return b.String()
	case stateDetail:
		b.WriteString(m.viewDetail())
		b.WriteString("\n")
		b.WriteString(m.footer("esc", "back", "q", "quit"))
		return b.String()
	case stateList:
		b.WriteString(m.viewList())
		b.WriteString("\n")
		b.WriteString(m.footer("enter", "details", "d", "delete", "q", "quit"))
		return b.String()
	}
	return b.String()
}

func (m model) viewList() string {
	if len(m.details) == 0 {
		return dimStyle.Render("The store is empty.")
	}

	var b strings.Builder
	for i := range m.details {
		d := &m.details[i]
		line := fmt.Sprintf("%4d  %s  %-18s  %8d  %s",
			d.Entry.ID, d.Entry.Timestamp, d.Entry.FileType, d.Entry.FileSize,
			tagStyle.Render("{"+strings.Join(d.Tags(), ", ")+"}"),
		)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewDetail() string {
	d := &m.details[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "Entry %d\n", d.Entry.ID)
	fmt.Fprintf(&b, "time:  %s\n", d.Entry.Timestamp)
	fmt.Fprintf(&b, "type:  %s\n", d.Entry.FileType)
	fmt.Fprintf(&b, "size:  %d\n", d.Entry.FileSize)
	fmt.Fprintf(&b, "hash:  %s\n", d.Entry.FileHash)
	fmt.Fprintf(&b, "blob:  %s\n", d.Entry.FileName)
	for _, a := range d.Attrs {
		fmt.Fprintf(&b, "%s: %s\n", a.Name, a.Value)
	}
	return detailBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) footer(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, footerKeyStyle.Render(pairs[i])+footerStyle.Render(" "+pairs[i+1]))
	}
	return footerStyle.Render(strings.Join(parts, "  "))
}
