package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/route"
	"github.com/pathlight/pathlight/pkg/router"
)

// walkCommand creates the walk command for interactive navigation.
func (c *CLI) walkCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Interactively navigate the route tree",
		Long: `Interactively navigate the route tree.

Arrow keys move the cursor, enter navigates to the selected route, and
b/f move back and forward through session history. The active route chain
is marked the same way a rendered page marks aria-current="page".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(manifestPath)
			if err != nil {
				return err
			}
			tree, err := app.Build()
			if err != nil {
				return err
			}

			nav, err := router.New(tree)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := nav.Start(ctx, "/"); err != nil {
				return err
			}
			defer nav.Stop()

			model := NewWalkModel(ctx, nav, tree)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "route manifest file")

	return cmd
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WalkModel - Interactive route navigation
// =============================================================================

// walkEntry is one navigable row.
type walkEntry struct {
	route *route.Route
	path  string // concrete visitable path derived from the pattern
}

// WalkModel is the bubbletea model for interactive route navigation.
type WalkModel struct {
	Entries []walkEntry
	Cursor  int
	Height  int
	Offset  int

	ctx context.Context
	nav *router.Router
	err string
}

// NewWalkModel creates a walk model over the tree's routes.
func NewWalkModel(ctx context.Context, nav *router.Router, tree *route.Tree) WalkModel {
	entries := []walkEntry{}
	tree.Walk(func(r *route.Route) {
		entries = append(entries, walkEntry{route: r, path: samplePath(r)})
	})
	return WalkModel{
		Entries: entries,
		Height:  15,
		ctx:     ctx,
		nav:     nav,
	}
}

func (m WalkModel) Init() tea.Cmd {
	return nil
}

func (m WalkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.err = ""
			if err := m.nav.Navigate(m.ctx, m.Entries[m.Cursor].path); err != nil {
				m.err = err.Error()
			}
		case "b":
			m.err = ""
			if !m.nav.Back(m.ctx) {
				m.err = "nothing to go back to"
			}
		case "f":
			m.err = ""
			if !m.nav.Forward(m.ctx) {
				m.err = "nothing to go forward to"
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m WalkModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Walk Routes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ visit  b back  f forward  q quit"))
	b.WriteString("\n\n")

	rc := m.nav.Context()

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		active := ""
		if rc.IsActive(e.path) {
			active = "●"
		}

		rows = append(rows, []string{cursor, e.route.Pattern(), e.route.Name(), active})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pattern", "Name", "Active").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor
			isActive := rc.IsActive(m.Entries[actualIdx].path)

			base := lipgloss.NewStyle()
			if isCurrent {
				if isActive && col != 0 {
					return listSelectedStyle
				}
				return base.Bold(true)
			}
			if isActive && col != 0 {
				return base.Foreground(colorGreen)
			}
			if col == 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	loc := m.nav.Location()
	status := fmt.Sprintf("  at %s (%s)", loc.Path, loc.RouteID)
	if m.nav.CanGoBack() {
		status += "  ·  b available"
	}
	if m.nav.CanGoForward() {
		status += "  ·  f available"
	}
	b.WriteString(listDimStyle.Render(status))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.err))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
