package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crystals/internal/storage"
)

const catalogTimeFormat = "2006-01-02 15:04"

// CatalogTable renders the stored packs as a table, one row per pack in
// the order given.
func CatalogTable(packs []storage.PackSummary) string {
	columns := []table.Column{
		{Title: "ID", Width: 2},
		{Title: "Palette", Width: 7},
		{Title: "Levels", Width: 6},
		{Title: "Imported", Width: len(catalogTimeFormat)},
		{Title: "Title", Width: 5},
	}

	rows := make([]table.Row, len(packs))
	for i, p := range packs {
		rows[i] = table.Row{
			p.ID,
			p.PaletteName,
			strconv.Itoa(p.LevelCount),
			p.ImportedAt.Format(catalogTimeFormat),
			p.Title,
		}
		for c, cell := range rows[i] {
			columns[c].Width = max(columns[c].Width, lipgloss.Width(cell))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Nothing is selectable in a printed table.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	t.SetHeight(len(rows) + lipgloss.Height(s.Header.Render("ID")))

	return t.View()
}
