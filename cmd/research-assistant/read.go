// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <url>",
	Short: "Read a web page or PDF as markdown",
	Long: `Read fetches a URL, renders it in a headless browser when needed, and
prints the main content as markdown. PDF links are decoded directly
without rendering. With --save the content is also captured into the
document store under the given name, with url and fetch time recorded
as frontmatter.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(nil)
	if err != nil {
		return err
	}

	toolArgs := map[string]any{"url": args[0]}
	if save, _ := cmd.Flags().GetString("save"); save != "" {
		toolArgs["document_name"] = save
	}

	fmt.Println(registry.Invoke(context.Background(), "fetch_url", toolArgs))
	return nil
}

func init() {
	readCmd.Flags().String("save", "", "document name to save the fetched content under")

	rootCmd.AddCommand(readCmd)
}
