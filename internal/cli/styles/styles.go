// Package styles renders boards for human-readable CLI output
package styles

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/madhankd/madhanboard-v2/internal/config"
	"github.com/madhankd/madhanboard-v2/internal/models"
)

var (
	// List column styles
	ListStyle lipgloss.Style
	ListWidth = 32

	// Item card styles
	ItemStyle lipgloss.Style

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "ID:", "Created:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	initialized atomic.Bool
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	defer initialized.Store(true)

	ListStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.ListBorder)).
		Padding(0, 1).
		Width(ListWidth)

	ItemStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colors.ItemBorder)).
		Padding(0, 1).
		Width(ListWidth - 4)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Create))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg))
}

// ensureInit falls back to the default scheme when Init was never called
func ensureInit() {
	if !initialized.Load() {
		Init(config.DefaultColorScheme())
	}
}

// ═══════════════════════════════════════════════════════════════════
// BOARD RENDERING
// ═══════════════════════════════════════════════════════════════════

// RenderBoard renders a board as side-by-side list columns
func RenderBoard(board *models.Board) string {
	ensureInit()

	var header strings.Builder
	header.WriteString(TitleStyle.Render(board.Name))
	header.WriteString(" " + SubtitleStyle.Render("("+board.ID+")"))
	if board.Description != "" {
		header.WriteString("\n" + ValueStyle.Render(board.Description))
	}

	if len(board.BoardList) == 0 {
		return header.String() + "\n\n" + SubtitleStyle.Render("No lists")
	}

	columns := make([]string, len(board.BoardList))
	for i, list := range board.BoardList {
		columns[i] = RenderList(list)
	}
	return header.String() + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// RenderList renders one list with its items as cards
func RenderList(list *models.BoardList) string {
	ensureInit()

	parts := []string{
		LabelStyle.Render(fmt.Sprintf("%d. %s", list.Order, list.Title)),
		SubtitleStyle.Render(list.ID),
	}
	if len(list.Items) == 0 {
		parts = append(parts, SubtitleStyle.Render("(empty)"))
	}
	for _, item := range list.Items {
		card := ValueStyle.Render(item.Title) + "\n" + SubtitleStyle.Render(item.ID)
		parts = append(parts, ItemStyle.Render(card))
	}
	return ListStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderBoardSummary renders one line of the board index
func RenderBoardSummary(summary *models.BoardSummary) string {
	ensureInit()

	line := fmt.Sprintf("  %s %s", SubtitleStyle.Render("["+summary.ID+"]"), TitleStyle.Render(summary.Name))
	if summary.Description != "" {
		line += " - " + ValueStyle.Render(summary.Description)
	}
	return line
}

// Success renders a confirmation line
func Success(message string) string {
	ensureInit()
	return SuccessStyle.Render("✓ ") + message
}

// ═══════════════════════════════════════════════════════════════════
// MARKDOWN
// ═══════════════════════════════════════════════════════════════════

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// BoardMarkdown writes a board as a markdown document: one section per
// list, one bullet per item with its description indented below
func BoardMarkdown(board *models.Board) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", board.Name)
	if board.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", board.Description)
	}
	for _, list := range board.BoardList {
		fmt.Fprintf(&b, "## %s\n\n", list.Title)
		if len(list.Items) == 0 {
			b.WriteString("_No items_\n\n")
			continue
		}
		for _, item := range list.Items {
			fmt.Fprintf(&b, "- **%s**\n", item.Title)
			if item.Description != "" {
				for _, line := range strings.Split(item.Description, "\n") {
					fmt.Fprintf(&b, "  %s\n", line)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMarkdown renders markdown for the terminal. The raw markdown is
// returned if rendering fails.
func RenderMarkdown(markdown string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimSpace(rendered)
}
