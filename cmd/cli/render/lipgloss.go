package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"
)

const emptyTableText = "No books match your criteria."

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer

	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
	yearStyle   lipgloss.Style
	pickStyle   lipgloss.Style
	labelStyle  lipgloss.Style
	faintStyle  lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:       width,
		r:           r,
		titleStyle:  r.NewStyle().Bold(true),
		headerStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")).Padding(0, 1),
		cellStyle:   r.NewStyle().Padding(0, 1),
		yearStyle:   r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		pickStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		labelStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		faintStyle:  r.NewStyle().Faint(true),
	}
}

// NewLipglossRendererAuto sizes the renderer to the terminal behind w, or 80 columns.
func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) RenderBookTable(view BookTableView) string {
	if view.IsEmpty() {
		return emptyTableText + "\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.faintStyle).
		Headers("Title", "Year", "Genre", "Authors").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.headerStyle
			case col == 1:
				return r.yearStyle
			default:
				return r.cellStyle
			}
		})
	for _, item := range view.Items {
		t.Row(item.Title, item.YearText(), item.Genre, item.Authors)
	}

	var sb strings.Builder
	if view.Title != "" {
		sb.WriteString(r.titleStyle.Render(view.Title))
		sb.WriteString("\n")
	}
	rendered := t.String()
	if lipgloss.Width(rendered) > r.width {
		rendered = t.Width(r.width).String()
	}
	sb.WriteString(rendered)
	sb.WriteString("\n")
	return sb.String()
}

func (r *LipglossRenderer) RenderRecommendation(view RecommendationView) string {
	read := "None"
	if len(view.Read) > 0 {
		read = strings.Join(view.Read, ", ")
	}

	lines := []string{
		"",
		r.labelStyle.Render("I recommend:"),
		r.pickStyle.Render(view.Message),
		"",
		r.faintStyle.Render("Books read so far: ") + read,
		"",
	}
	return strings.Join(lines, "\n")
}
