package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zenc/internal/astio"
	"zenc/internal/diagfmt"
	"zenc/internal/driver"
	"zenc/internal/project"
	"zenc/internal/sema"
)

var (
	checkFormat   string
	checkStrict   bool
	checkUseCache bool
	checkCacheDir string
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict-unknown-copy", false, "override config: treat unknown struct types as Move")
	checkCmd.Flags().BoolVar(&checkUseCache, "cache", false, "cache analysis results by document content hash")
	checkCmd.Flags().StringVar(&checkCacheDir, "cache-dir", ".zenc-cache", "directory for --cache")
}

var checkCmd = &cobra.Command{
	Use:   "check <ast.json>",
	Short: "Run the borrow and move analyzers over a serialized AST document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	policy := sema.Policy{StrictUnknownCopy: cfg.Analysis.StrictUnknownCopy || checkStrict}

	var result *driver.Result
	var cache *driver.Cache
	var key string
	if checkUseCache {
		cache, err = driver.NewCache(checkCacheDir)
		if err != nil {
			return err
		}
		key = driver.Key(raw)
		if cached, ok := cache.Load(key); ok {
			result = cached
		}
	}

	if result == nil {
		doc, err := astio.Decode(bytes.NewReader(raw))
		if err != nil {
			return err
		}
		result, err = driver.AnalyzeDocument(cmd.Context(), doc, policy)
		if err != nil {
			return err
		}
		if cache != nil {
			if err := cache.Store(key, result); err != nil {
				return fmt.Errorf("store cache entry: %w", err)
			}
		}
	}

	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	useColor := resolveColor(colorFlag)

	switch strings.ToLower(checkFormat) {
	case "json":
		if err := diagfmt.JSON(cmd.OutOrStdout(), result.Diagnostics); err != nil {
			return err
		}
	case "pretty":
		diagfmt.Pretty(cmd.OutOrStdout(), result.Diagnostics, diagfmt.Options{Color: useColor, File: path})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", checkFormat)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Found %d borrow violation(s).\n", result.BorrowViolations)
	fmt.Fprintf(cmd.OutOrStdout(), "Found %d move violation(s).\n", result.MoveViolations)

	if result.BorrowViolations > 0 || result.MoveViolations > 0 {
		os.Exit(1)
	}
	return nil
}

func resolveColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

