package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hierlayout/pkg/graph"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tableHeadStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorder     = lipgloss.NewStyle().Foreground(colorDim)
	rowCurrentStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// =============================================================================
// EdgeListModel - Interactive edge browser
// =============================================================================

// EdgeListModel is the bubbletea model behind "hierlayout inspect". It lists
// the edges of a layout result and can narrow the list to reversed edges.
type EdgeListModel struct {
	Result       *graph.Result
	Rows         []graph.EdgeResult
	ReversedOnly bool
	Cursor       int
	Offset       int
	Height       int

	lanes map[string]int
}

// NewEdgeListModel creates a browser over res.
func NewEdgeListModel(res *graph.Result) EdgeListModel {
	lanes := make(map[string]int, len(res.Vertices))
	for _, v := range res.Vertices {
		lanes[v.ID] = v.Lane
	}
	m := EdgeListModel{Result: res, Height: 15, lanes: lanes}
	m.filter()
	return m
}

func (m *EdgeListModel) filter() {
	rows := make([]graph.EdgeResult, 0, len(m.Result.Edges))
	for _, e := range m.Result.Edges {
		if !m.ReversedOnly || e.Reversed {
			rows = append(rows, e)
		}
	}
	m.Rows = rows
	m.Cursor, m.Offset = 0, 0
}

func (m EdgeListModel) Init() tea.Cmd {
	return nil
}

func (m EdgeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Rows); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "r":
			m.ReversedOnly = !m.ReversedOnly
			m.filter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m EdgeListModel) View() string {
	var b strings.Builder

	title := "Edges"
	if m.ReversedOnly {
		title = "Reversed edges"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r reversed only  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no edges"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		rows = append(rows, m.row(i))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("", "From", "To", "Lanes", "Ranks", "Edge IDs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeadStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return rowCurrentStyle
			case m.Rows[idx].Reversed:
				return StyleReversed
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d reversed of %d",
		m.Cursor+1, len(m.Rows), m.Result.ReversedCount(), len(m.Result.Edges))))
	return b.String()
}

func (m EdgeListModel) row(i int) []string {
	e := m.Rows[i]
	cursor := "  "
	if i == m.Cursor {
		cursor = "▸ "
	}
	if e.Reversed {
		cursor += "↺"
	}
	return []string{
		cursor,
		e.From,
		e.To,
		fmt.Sprintf("%d→%d", m.lanes[e.From], m.lanes[e.To]),
		fmtRanks(e.MinRank, e.MaxRank),
		strings.Join(e.IDs, ", "),
	}
}

func fmtRanks(lo, hi int) string {
	if lo < 0 || hi < 0 {
		return "—"
	}
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return fmt.Sprintf("%d–%d", lo, hi)
}
