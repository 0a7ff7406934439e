// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <tool> [json-args]",
	Short: "Invoke a tool by name with JSON arguments",
	Long: `Invoke dispatches directly to the tool registry, the same surface a
hosting bot calls. Arguments are passed as a single JSON object. With
--list the registered tool names are printed instead.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runInvoke,
}

func runInvoke(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry(nil)
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("tool name required (or --list)")
	}

	toolArgs := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("parsing tool arguments: %w", err)
		}
	}

	fmt.Println(registry.Invoke(context.Background(), args[0], toolArgs))
	return nil
}

func init() {
	invokeCmd.Flags().Bool("list", false, "list registered tool names")

	rootCmd.AddCommand(invokeCmd)
}
