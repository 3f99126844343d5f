package main

import (
	"os"

	"github.com/spf13/cobra"

	"zenc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "zenc",
	Short: "Zen semantic analysis core CLI",
	Long:  `zenc runs the borrow and move analyzers over a serialized Zen AST document.`,
}

func main() {
	rootCmd.Version = version.VersionString()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "zenc.toml", "path to the project config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
