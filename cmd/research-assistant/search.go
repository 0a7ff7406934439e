// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/scholar"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Search academic paper databases",
	Long: `Search queries arXiv or Semantic Scholar (through the configured API
proxy) for papers matching the given keywords. Provider failures are
reported inline rather than aborting the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	svc, err := scholar.New(cfg.Scholar)
	if err != nil {
		return err
	}

	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("max-results")
	if limit <= 0 {
		limit = cfg.Scholar.MaxResults
	}
	query := strings.Join(args, " ")

	ctx := context.Background()
	var records []types.Record
	if source == "all" {
		records = svc.SearchAll(ctx, query, limit)
	} else {
		records = svc.Search(ctx, source, query, limit)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	fmt.Println(types.FormatRecords(records))
	return nil
}

func init() {
	searchCmd.Flags().String("source", "arxiv", "paper source: arxiv, semantic_scholar, or all")
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
