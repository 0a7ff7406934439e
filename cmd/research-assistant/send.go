// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <name>",
	Short: "Deliver a stored file to the outbox directory",
	Long: `Send delivers a stored file (for example a generated .docx document)
over the host's delivery channel. For the CLI the channel is a local
outbox directory the file is copied into.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

// outboxNotifier copies delivered files into a local directory. It
// stands in for the messaging channel a hosting bot would provide.
type outboxNotifier struct {
	dir string
}

func (n *outboxNotifier) SendFile(_ context.Context, path string) error {
	if err := os.MkdirAll(n.dir, 0o755); err != nil {
		return fmt.Errorf("creating outbox %s: %w", n.dir, err)
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(n.dir, filepath.Base(path)))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func runSend(cmd *cobra.Command, args []string) error {
	outbox, _ := cmd.Flags().GetString("outbox")
	registry, err := buildRegistry(&outboxNotifier{dir: outbox})
	if err != nil {
		return err
	}

	fmt.Println(registry.Invoke(context.Background(), "send_file", map[string]any{
		"file_path": args[0],
	}))
	return nil
}

func init() {
	sendCmd.Flags().String("outbox", "outbox", "directory delivered files are copied into")

	rootCmd.AddCommand(sendCmd)
}
