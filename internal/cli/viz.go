package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/routeviz"
)

// vizCommand creates the viz command for rendering route diagrams.
func (c *CLI) vizCommand() *cobra.Command {
	var (
		manifestPath string
		output       string
		format       string
		highlight    string
		names        bool
		scale        float64
	)

	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Render the route tree as a diagram",
		Long: `Render the route tree as a diagram.

The route tree is laid out with Graphviz. Parameter segments are drawn
dashed, splat segments dimmed. With --highlight, the chain of routes
matching the given path is drawn in blue, mirroring how active links are
marked in a running app.`,
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

			opts := routeviz.Options{Highlight: highlight, Names: names}
			dot := routeviz.ToDOT(tree, opts)

			p := newProgress(c.Logger)
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = routeviz.RenderSVG(dot)
			case "png":
				data, err = routeviz.RenderPNG(dot, scale)
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			out := output
			if out == "" {
				out = "routes." + format
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			p.done(fmt.Sprintf("Rendered %d routes", tree.Len()))
			printSuccess("Diagram written")
			printFile(out)
			if format == "dot" {
				printNextStep("Render it", "dot -Tsvg "+out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "route manifest file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default routes.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, png")
	cmd.Flags().StringVar(&highlight, "highlight", "", "path whose route chain is highlighted")
	cmd.Flags().BoolVar(&names, "names", false, "include route names in node labels")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "PNG scale factor")

	return cmd
}
