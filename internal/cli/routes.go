package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/route"
)

// routesCommand creates the routes command for inspecting a manifest.
func (c *CLI) routesCommand() *cobra.Command {
	var (
		manifestPath string
		matchPath    string
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route tree declared in a manifest",
		Long: `Print the route tree declared in a manifest.

Routes are listed in tree order with their full pattern, display name, and
segment kind. With --match, the given path is matched against the tree and
the winning route and extracted parameters are printed instead.`,
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

			if matchPath != "" {
				return runMatch(tree, matchPath)
			}
			return runRoutes(app.Name, tree)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "route manifest file")
	cmd.Flags().StringVar(&matchPath, "match", "", "match a path against the tree instead of listing")

	return cmd
}

// runRoutes prints the full tree as a table.
func runRoutes(name string, tree *route.Tree) error {
	if name != "" {
		fmt.Println(StyleTitle.Render(name))
	}

	rows := [][]string{}
	tree.Walk(func(r *route.Route) {
		rows = append(rows, []string{indentFor(r), r.Pattern(), r.Name(), kindOf(r)})
	})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pattern", "Name", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	fmt.Println(t.Render())
	printDetail("%d routes", tree.Len())
	return nil
}

// runMatch matches one path and prints the outcome.
func runMatch(tree *route.Tree, path string) error {
	m, ok := tree.Match(path)
	if !ok {
		printWarning("no route matches %s", path)
		return nil
	}

	printSuccess("%s %s %s", path, iconArrow, StyleHighlight.Render(m.Route.Pattern()))
	if m.Route.Name() != "" {
		printDetail("name: %s", m.Route.Name())
	}
	for k, v := range m.Params {
		printDetail("%s = %s", k, v)
	}
	return nil
}

// indentFor returns the tree-depth indent marker for a route row.
func indentFor(r *route.Route) string {
	depth := 0
	for p := r.Parent(); p != nil; p = p.Parent() {
		depth++
	}
	if depth == 0 {
		return ""
	}
	return strings.Repeat("  ", depth-1) + "└"
}

// kindOf classifies a route by its last segment.
func kindOf(r *route.Route) string {
	segs := strings.Split(strings.TrimPrefix(r.Pattern(), "/"), "/")
	last := segs[len(segs)-1]
	switch {
	case strings.HasPrefix(last, ":"):
		return "param"
	case strings.HasPrefix(last, "*"):
		return "splat"
	default:
		return "static"
	}
}
