// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <document> <question...>",
	Short: "Review a stored document with an LLM",
	Long: `Review asks the configured generation model a question about a stored
document. The model can read the document and search academic sources,
bounded by a fixed tool-call budget; if the budget runs out the partial
result is returned with an exhaustion marker.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(nil)
	if err != nil {
		return err
	}

	fmt.Println(registry.Invoke(context.Background(), "review_document", map[string]any{
		"document_name": args[0],
		"question":      strings.Join(args[1:], " "),
	}))
	return nil
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
