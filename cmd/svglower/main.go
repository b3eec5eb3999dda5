// Command svglower lowers an SVG document into its renderable tree and
// reports a summary of what it found. It exists to exercise the library end
// to end; the real consumers of this package are renderers, not this tool.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/corvidlabs/svglower"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	forgiving  bool
	fontFamily string
)

var rootCmd = &cobra.Command{
	Use:   "svglower [svg_file]",
	Short: "Lower an SVG document into its renderable tree",
	Long: `Reads an SVG document (plain or gzip-compressed) from a file or stdin,
lowers it into a tree of renderable primitives, and prints a summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logrus.StandardLogger()

		in := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		tree, err := svglower.FromBytes(data, svglower.Options{
			Forgiving:  forgiving,
			FontFamily: fontFamily,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		fmt.Printf("size: %gx%g\n", tree.Width, tree.Height)
		fmt.Printf("nodes: %d\n", countNodes(tree.Root))
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&forgiving, "forgiving", false, "strip invalid characters and relax XML parsing")
	rootCmd.Flags().StringVar(&fontFamily, "font-family", "", "default font family when none resolves")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func countNodes(g *svglower.Group) int {
	n := 1
	for _, c := range g.Children {
		switch v := c.(type) {
		case *svglower.Group:
			n += countNodes(v)
		case *svglower.TextNode:
			n++
		}
	}
	return n
}
