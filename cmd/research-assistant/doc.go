// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var docCmd = &cobra.Command{
	Use:   "doc <create|read|append|cover|delete|list> [name]",
	Short: "Manage stored working documents",
	Long: `Doc manages the named documents under the store's docs directory.

Operations: create a new document, read one back, append to it, cover
(replace) its content, delete it, or list all stored documents. Content
comes from --content or --content-file. With --word, create renders the
markdown content into a .docx file instead of a text document.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDoc,
}

func runDoc(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(nil)
	if err != nil {
		return err
	}

	toolArgs := map[string]any{"process_type": args[0]}
	if len(args) > 1 {
		toolArgs["document_name"] = args[1]
	}

	content, _ := cmd.Flags().GetString("content")
	if contentFile, _ := cmd.Flags().GetString("content-file"); contentFile != "" {
		data, err := os.ReadFile(contentFile)
		if err != nil {
			return fmt.Errorf("reading --content-file: %w", err)
		}
		content = string(data)
	}
	if content != "" {
		toolArgs["document_content"] = content
	}
	if word, _ := cmd.Flags().GetBool("word"); word {
		toolArgs["document_type"] = "word"
	}

	fmt.Println(registry.Invoke(context.Background(), "process_document", toolArgs))
	return nil
}

func init() {
	docCmd.Flags().String("content", "", "document content for create, append, and cover")
	docCmd.Flags().String("content-file", "", "read document content from a file instead of --content")
	docCmd.Flags().Bool("word", false, "with create: render markdown content to a .docx file")

	rootCmd.AddCommand(docCmd)
}
