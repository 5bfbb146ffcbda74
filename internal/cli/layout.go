package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knowhub/sectiond/internal/richtext"
)

var (
	previewParent   string
	previewPosition int
	previewHeading  string
)

var layoutCmd = &cobra.Command{
	Use:   "layout <page-id>",
	Short: "Print a page's section outline",
	Long: `Print a page's section outline. With --heading and --parent, preview
where the new section would be placed instead; the pending slot is marked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		if previewHeading != "" {
			req := map[string]any{
				"parent_id": previewParent,
				"position":  previewPosition,
				"heading":   previewHeading,
			}
			var resp struct {
				Layout richtext.Block `json:"layout"`
			}
			if err := client.do(cmd.Context(), "POST", "/api/pages/"+args[0]+"/preview", req, &resp); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), outlineText(resp.Layout))
			return nil
		}

		var resp struct {
			Layout richtext.Block `json:"layout"`
		}
		if err := client.do(cmd.Context(), "GET", "/api/pages/"+args[0]+"/layout", nil, &resp); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), outlineText(resp.Layout))
		return nil
	},
}

// outlineText flattens an outline block into indented bullets for the
// terminal. The highlighted (code-styled) entry is wrapped in brackets.
func outlineText(block richtext.Block) string {
	var sb strings.Builder
	for _, list := range block.Elements {
		if list.Type != richtext.ElementTypeList {
			continue
		}
		for _, item := range list.Items {
			sb.WriteString(strings.Repeat("  ", list.Indent))
			sb.WriteString("- ")
			for _, run := range item.Runs {
				if run.Style != nil && run.Style.Code {
					sb.WriteString("[" + run.Text + "]")
				} else {
					sb.WriteString(run.Text)
				}
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func init() {
	layoutCmd.Flags().StringVar(&previewParent, "parent", "", "parent section id for placement preview")
	layoutCmd.Flags().IntVar(&previewPosition, "position", 0, "position among the parent's children")
	layoutCmd.Flags().StringVar(&previewHeading, "heading", "", "heading of the section to preview")
	layoutCmd.MarkFlagsRequiredTogether("parent", "heading")
}
