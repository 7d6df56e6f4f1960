// Package browseui provides the Bubble Tea entry browser.
package browseui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/moodtools/moodlog/internal/model"
)

const listWidth = 24

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1)
	listStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	listFocusStyle = listStyle.
			BorderForeground(lipgloss.Color("#C89A3A"))
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#C89A3A")).
				Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea entry browser.
type Model struct {
	entries []model.Entry

	cursor       int
	viewport     viewport.Model
	listFocused  bool
	loadedIndex  int
	contentError string

	width  int
	height int
}

// NewModel constructs a browser over the given entries, newest selected.
func NewModel(entries []model.Entry) *Model {
	m := &Model{
		entries:     entries,
		listFocused: true,
		loadedIndex: -1,
	}
	if len(entries) > 0 {
		m.cursor = len(entries) - 1
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			m.listFocused = !m.listFocused
			return m, nil
		case "up", "k":
			if m.listFocused {
				m.moveCursor(-1)
				return m, nil
			}
		case "down", "j":
			if m.listFocused {
				m.moveCursor(1)
				return m, nil
			}
		case "g", "home":
			if m.listFocused {
				m.cursor = 0
				m.loadSelected()
			} else {
				m.viewport.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.listFocused {
				m.cursor = len(m.entries) - 1
				m.loadSelected()
			} else {
				m.viewport.GotoBottom()
			}
			return m, nil
		}
		if !m.listFocused {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if len(m.entries) == 0 {
		return titleStyle.Render("moodlog") + "\n\n  no daily entries yet\n"
	}
	list := m.renderList()
	content := m.viewport.View()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, content)
	footer := footerStyle.Render("tab: focus  j/k: move  q: quit")
	return strings.Join([]string{titleStyle.Render("moodlog"), body, footer}, "\n")
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.entries) {
		return
	}
	m.cursor = next
	m.loadSelected()
}

func (m *Model) loadSelected() {
	if m.cursor == m.loadedIndex || m.cursor < 0 || m.cursor >= len(m.entries) {
		return
	}
	entry := m.entries[m.cursor]
	content, err := os.ReadFile(entry.Path)
	if err != nil {
		m.contentError = fmt.Sprintf("failed to read %s: %v", entry.Name, err)
		m.viewport.SetContent(errorStyle.Render(m.contentError))
		m.loadedIndex = m.cursor
		return
	}
	m.contentError = ""
	m.viewport.SetContent(string(content))
	m.viewport.GotoTop()
	m.loadedIndex = m.cursor
}

func (m *Model) updateLayout() {
	contentWidth := m.width - listWidth - 4
	if contentWidth < 10 {
		contentWidth = 10
	}
	contentHeight := m.height - 4
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.viewport = viewport.New(contentWidth, contentHeight)
	m.loadedIndex = -1
	m.loadSelected()
}

func (m *Model) renderList() string {
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		label := runewidth.Truncate(strings.TrimSuffix(m.entries[i].Name, ".txt"), listWidth-4, "…")
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + label))
		} else {
			b.WriteString(itemStyle.Render("  " + label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	style := listStyle
	if m.listFocused {
		style = listFocusStyle
	}
	return style.Width(listWidth).Height(visible).Render(b.String())
}
