package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	importScope       string
	importStartMarker string
	importEndMarker   string
)

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Queue a page import on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		req := map[string]any{
			"url":   args[0],
			"scope": importScope,
		}
		if importStartMarker != "" {
			req["start_marker"] = importStartMarker
		}
		if importEndMarker != "" {
			req["end_marker"] = importEndMarker
		}

		var job struct {
			JobID  string `json:"job_id"`
			Status string `json:"status"`
		}
		if err := client.do(cmd.Context(), "POST", "/api/imports", req, &job); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "job %s %s\n", job.JobID, job.Status)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the status of an import job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := resolveClient()
		if err != nil {
			return err
		}

		var job struct {
			JobID  string `json:"job_id"`
			Status string `json:"status"`
			PageID string `json:"page_id"`
			Error  string `json:"error"`
		}
		if err := client.do(cmd.Context(), "GET", "/api/imports/"+args[0], nil, &job); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "job %s %s\n", job.JobID, job.Status)
		if job.PageID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "page %s\n", job.PageID)
		}
		if job.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", job.Error)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importScope, "scope", "", "scope the page belongs to")
	importCmd.Flags().StringVar(&importStartMarker, "start-marker", "", "CSS class where content starts")
	importCmd.Flags().StringVar(&importEndMarker, "end-marker", "", "CSS class where content ends")
	importCmd.MarkFlagRequired("scope")
}
