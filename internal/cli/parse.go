package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knowhub/sectiond/internal/section"
)

var (
	parsePageURL     string
	parseStartMarker string
	parseEndMarker   string
	parseShowText    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a local HTML or Markdown file into a section outline",
	Long: `Parse a local documentation file and print its section outline.

Files ending in .md or .markdown are parsed as Markdown; everything else is
parsed as HTML. For HTML, --url sets the base for resolving relative links.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		var tree *section.Tree
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".md", ".markdown":
			tree, err = section.ParseMarkdown(f)
		default:
			tree, err = section.ParseHTML(f, parsePageURL, section.Options{
				StartMarker: parseStartMarker,
				EndMarker:   parseEndMarker,
			})
		}
		if err != nil {
			return err
		}

		tree.Walk(func(sec *section.Section) {
			level, content := section.HeadingLevelAndContent(sec.Heading)
			fmt.Fprintf(cmd.OutOrStdout(), "%s- %s\n", strings.Repeat("  ", level-1), content)
			if parseShowText && strings.TrimSpace(sec.Text) != "" {
				fmt.Fprintln(cmd.OutOrStdout(), sec.Text)
			}
		})
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parsePageURL, "url", "file:///", "base URL for resolving relative links")
	parseCmd.Flags().StringVar(&parseStartMarker, "start-marker", "", "CSS class where content starts")
	parseCmd.Flags().StringVar(&parseEndMarker, "end-marker", "", "CSS class where content ends")
	parseCmd.Flags().BoolVar(&parseShowText, "text", false, "print section body text as well")
}
