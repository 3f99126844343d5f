package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zenc/internal/astio"
	"zenc/internal/driver"
	"zenc/internal/project"
	"zenc/internal/sema"
	"zenc/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <ast.json>",
	Short: "Browse a document's diagnostics interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := project.Load(configPath)
	if err != nil {
		return err
	}

	doc, err := astio.Decode(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	policy := sema.Policy{StrictUnknownCopy: cfg.Analysis.StrictUnknownCopy}
	result, err := driver.AnalyzeDocument(cmd.Context(), doc, policy)
	if err != nil {
		return err
	}

	return ui.Run(path, result.Diagnostics)
}
