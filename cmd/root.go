// Copyright © 2025 The pyvet authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pyvet",
	Short: "pyvet — static style checker for Python source files",
	Long: `pyvet scans Python source files and reports style violations, one line
per finding:

  <path>: Line <n>: <CODE> <message>

Each check is an independent rule identified by a stable code. Line rules
(S001-S009) examine every physical line; tree rules (S010-S012) derive
candidate names from the parsed syntax tree and attribute each name to
the first line containing it.

Getting started:
  pyvet check file.py          Check a single file
  pyvet check tests/           Check every test_<n>.py file in a directory
  pyvet check --list           List all checks with their documentation

More information:
  Source code:     https://github.com/luthersystems/pyvet`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pyvet.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored error output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		// Search config in home directory with name ".pyvet" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".pyvet")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	_ = viper.ReadInConfig()
}
