// Copyright © 2025 The pyvet authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luthersystems/pyvet/check"
)

var (
	checkSelect string
	checkList   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path>...",
	Short: "Report style violations in Python source files",
	Long: `Report style violations in Python source files.

Each path is either a Python file, checked directly, or a directory, in
which case every file named test_<digits>.py is checked in lexicographic
order. Violations are written to stdout, one per line, grouped by file in
argument order, then by ascending line number, then by ascending rule
code (tree rules S010-S012 always last on a line).

A file that fails to parse produces no violations at all; the parse error
is reported to stderr and checking continues with the next file.

Exit codes:
  0  The checker ran (with or without findings)
  2  Bad invocation, or a path could not be resolved

Examples:
  pyvet check file.py                   # Check a single file
  pyvet check tests/                    # Check matching files in a directory
  pyvet check --checks=S001,S005 f.py   # Run only specific checks
  pyvet check --list                    # List available checks`,
	Run: func(cmd *cobra.Command, args []string) {
		if checkList {
			fmt.Print(check.Doc())
			return
		}

		if checkSelect == "" {
			checkSelect = viper.GetString("checks")
		}
		var codes []check.Code
		if checkSelect != "" {
			for _, name := range strings.Split(checkSelect, ",") {
				code, err := check.ParseCode(strings.TrimSpace(name))
				if err != nil {
					fmt.Fprintf(os.Stderr, "pyvet check: %v\n", err)
					os.Exit(2)
				}
				codes = append(codes, code)
			}
		}

		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "pyvet check: at least one path is required")
			os.Exit(2)
		}

		files, err := resolveFiles(args)
		if err != nil {
			renderError(err)
			os.Exit(2)
		}

		checker := check.New(codes...)
		for _, path := range files {
			diags, err := checker.CheckFile(path)
			if err != nil {
				// Fatal for this file only; the rest still run.
				renderError(err)
				continue
			}
			for _, d := range diags {
				fmt.Println(d)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkSelect, "checks", "",
		"Comma-separated list of check codes to run (default: all).")
	checkCmd.Flags().BoolVar(&checkList, "list", false,
		"List available checks and exit.")
}
