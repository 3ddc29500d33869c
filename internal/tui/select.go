// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/cinerelay/internal/catalog"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionCancelled indicates the user left without selecting.
	ActionCancelled
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *catalog.MovieSummary
}

type summaryItem struct {
	catalog.MovieSummary
}

func (i summaryItem) Title() string {
	return fmt.Sprintf("%s (%s)", strings.ToUpper(displayName(i.MovieSummary)), displayYear(i.MovieSummary))
}

func (i summaryItem) FilterValue() string {
	return displayName(i.MovieSummary)
}

func (i summaryItem) Description() string {
	if i.AlternativeName != nil {
		return *i.AlternativeName
	}
	return ""
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	idStyle       lipgloss.Style
	titleStyle    lipgloss.Style
	altStyle      lipgloss.Style
	metadataStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		idStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		altStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type summaryDelegate struct {
	styles itemStyles
}

func newDelegate() summaryDelegate {
	return summaryDelegate{styles: newItemStyles()}
}

func (d summaryDelegate) Height() int                         { return 4 }
func (d summaryDelegate) Spacing() int                        { return 1 }
func (d summaryDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d summaryDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	summary, ok := item.(summaryItem)
	if !ok {
		return
	}

	idLine := d.styles.idStyle.Render(fmt.Sprintf("[#%d]", summary.ID))
	titleLine := d.styles.titleStyle.Render(truncate(summary.Title(), m.Width()-4))
	altLine := d.styles.altStyle.Render(truncate(summary.Description(), m.Width()-4))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(summary.MovieSummary, m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, idLine, titleLine, altLine, metadataLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list        list.Model
	searchTitle string
	result      SelectionResult
}

func newModel(title string, items []summaryItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:        l,
		searchTitle: title,
		result:      SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(summaryItem); ok {
				summary := selected.MovieSummary
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &summary,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionCancelled}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.searchTitle))
	help := helpStyle.Render("Up/Down navigate | Enter select | q cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Select presents an interactive selection UI for search results. Results
// with fewer than minVotes votes are hidden; when none remain the result is
// ActionCancelled without starting the UI.
func Select(title string, results []catalog.MovieSummary, minVotes int) (SelectionResult, error) {
	items := make([]summaryItem, 0, len(results))
	for _, result := range results {
		if result.Votes >= minVotes {
			items = append(items, summaryItem{MovieSummary: result})
		}
	}
	if len(items) == 0 {
		return SelectionResult{Action: ActionCancelled}, nil
	}

	finalModel, err := runProgram(newModel(title, items))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func displayName(s catalog.MovieSummary) string {
	switch {
	case s.Name != nil:
		return *s.Name
	case s.AlternativeName != nil:
		return *s.AlternativeName
	default:
		return "untitled"
	}
}

func displayYear(s catalog.MovieSummary) string {
	if s.Year == nil {
		return "n/a"
	}
	return strconv.Itoa(*s.Year)
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// formatMetadata builds the vote count and poster line.
func formatMetadata(s catalog.MovieSummary, availableWidth int) string {
	parts := []string{formatVoteCount(s.Votes)}
	if s.Poster != nil {
		parts = append(parts, "poster")
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 {
		metadata = truncate(metadata, availableWidth)
	}
	return metadata
}

func formatVoteCount(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK votes", float64(count)/1000)
	}
	return fmt.Sprintf("%d votes", count)
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
