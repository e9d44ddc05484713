// Command metacleanerctl is the headless companion of MetaCleaner. It locates ExifTool the
// same way the desktop application does and runs one operation against one file.
package main

import (
	"os"

	"MetaCleaner/locales"

	"github.com/fatih/color"
)

func main() {
	if err := locales.LoadTranslations(locales.DefaultLanguage); err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %v\n", err)
	}

	rootCmd := newRootCmd(newDefaultEnv())
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
