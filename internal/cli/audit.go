package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/audit"
	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/router"
)

// auditCommand creates the audit command for scanning rendered HTML.
func (c *CLI) auditCommand() *cobra.Command {
	var origin string

	cmd := &cobra.Command{
		Use:   "audit [file.html]",
		Short: "Report which anchors a page would navigate in-page",
		Long: `Report which anchors a page would navigate in-page.

Every anchor in the document is run through the click decision used at
runtime: links that stay in-page are marked, and links handed to the
browser are listed with the predicate that deferred them (target attribute,
download attribute, rel="external", cross-origin, or a missing href).

The origin defaults to the manifest's origin when a pathlight.toml is
present in the working directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if origin == "" {
				if app, err := loadApp(""); err == nil && app.Origin != "" {
					origin = app.Origin
				} else {
					origin = router.DefaultOrigin
				}
			}
			return c.runAudit(args[0], origin)
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "document origin the page is served from")

	return cmd
}

// runAudit scans one HTML file and prints the findings.
func (c *CLI) runAudit(path, origin string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	findings, err := audit.ScanHTML(f, origin)
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	if len(findings) == 0 {
		printInfo("No anchors found in %s", path)
		return nil
	}

	rows := [][]string{}
	for _, fd := range findings {
		outcome := iconIntercepted
		if !fd.Decision.Intercept {
			outcome = string(fd.Decision.Reason)
		}
		rows = append(rows, []string{fd.Href, truncate(fd.Text, 30), outcome})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Href", "Text", "Outcome").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(findings) && col == 2 {
				if findings[row].Decision.Intercept {
					return styleIntercepted
				}
				return styleDeferred
			}
			return lipgloss.NewStyle()
		})
	fmt.Println(t.Render())

	sum := audit.Summarize(findings)
	printStats(sum.Total, sum.Intercepted, sum.Total-sum.Intercepted)
	for _, reason := range sortedReasons(sum.Deferred) {
		printDetail("%s: %d", reason, sum.Deferred[reason])
	}
	return nil
}

// sortedReasons returns the deferred reasons in stable order.
func sortedReasons(m map[intercept.Reason]int) []intercept.Reason {
	reasons := make([]intercept.Reason, 0, len(m))
	for r := range m {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
