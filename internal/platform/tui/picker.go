package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystals/internal/levels"
	"github.com/vovakirdan/crystals/internal/preview"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	itemNormalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	itemActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	itemSkippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var previewBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// PickerModel pages through the levels of a pack, drawing the level under
// the cursor next to the list. Levels are numbered by file position and
// levels that failed to parse are listed with the reason.
type PickerModel struct {
	pack         levels.Pack
	opts         preview.Options
	cursor       int // 0-based file position
	scrollOffset int
	width        int
	height       int
	keys         PickerKeyMap
	help         help.Model
	chosen       bool
	quitting     bool
}

// NewPickerModel creates a picker over pack.
func NewPickerModel(pack levels.Pack, opts preview.Options, width, height int) PickerModel {
	h := help.New()
	h.Width = width
	return PickerModel{
		pack:   pack,
		opts:   opts,
		width:  width,
		height: height,
		keys:   DefaultPickerKeyMap(),
		help:   h,
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := m.pack.Len() - 1

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(last, 0)
	case key.Matches(msg, m.keys.Select):
		if m.pack.Len() == 0 {
			return m, nil
		}
		if _, skipped := m.pack.SkippedAt(m.cursor + 1); skipped {
			return m, nil
		}
		m.chosen = true
		return m, tea.Quit
	}

	m.updateScroll()
	return m, nil
}

// visibleItems is the number of list rows that fit on screen.
func (m PickerModel) visibleItems() int {
	if m.height == 0 {
		return max(m.pack.Len(), 1)
	}
	return max(m.height-6, 3) // title, help and margins
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("%s (%s palette)", m.pack.Title, m.pack.Palette.Name())
	b.WriteString(pickerTitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.pack.Len() == 0 {
		b.WriteString("Pack has no levels.\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), "  ", m.previewView()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m PickerModel) listView() string {
	end := min(m.scrollOffset+m.visibleItems(), m.pack.Len())

	lines := make([]string, 0, end-m.scrollOffset+2)
	if m.scrollOffset > 0 {
		lines = append(lines, helpStyle.Render("  ..."))
	}
	for i := m.scrollOffset; i < end; i++ {
		n := i + 1
		cursor := "  "
		style := itemNormalStyle
		if i == m.cursor {
			cursor = "> "
			style = itemActiveStyle
		}

		name := ""
		if f, skipped := m.pack.SkippedAt(n); skipped {
			name = f.Name
			style = itemSkippedStyle
		} else if lvl, err := m.pack.Level(n); err == nil {
			name = lvl.Name
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%2d. %s", cursor, n, name)))
	}
	if end < m.pack.Len() {
		lines = append(lines, helpStyle.Render("  ..."))
	}
	return strings.Join(lines, "\n")
}

func (m PickerModel) previewView() string {
	n := m.cursor + 1
	lvl, err := m.pack.Level(n)
	if err != nil {
		return previewBoxStyle.Render(errorStyle.Render(err.Error()))
	}

	grid, err := preview.Render(lvl, m.pack.Palette, m.opts)
	if err != nil {
		return previewBoxStyle.Render(errorStyle.Render(err.Error()))
	}

	parts := []string{preview.Header(n, lvl, m.opts), "", grid}
	if legend := preview.Legend(lvl, m.pack.Palette, m.opts); legend != "" {
		parts = append(parts, "", legend)
	}
	return previewBoxStyle.Render(strings.Join(parts, "\n"))
}

// Cursor returns the 1-based file position under the cursor.
func (m PickerModel) Cursor() int {
	return m.cursor + 1
}

// Selected returns the chosen file position, or false if the user quit.
func (m PickerModel) Selected() (int, bool) {
	if !m.chosen {
		return 0, false
	}
	return m.cursor + 1, true
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// RunPicker runs the picker full screen and returns the chosen file
// position, or false if the user quit without choosing.
func RunPicker(pack levels.Pack, opts preview.Options, width, height int) (int, bool, error) {
	p := tea.NewProgram(
		NewPickerModel(pack, opts, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return 0, false, nil
	}
	n, chosen := m.Selected()
	return n, chosen, nil
}
