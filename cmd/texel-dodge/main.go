// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/main.go
// Summary: texel-dodge command: interactive desktop, headless simulation, journal and config.
// Usage: texel-dodge run | simulate --scene file.yaml | journal | config show

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/texeldodge/config"
	"github.com/framegrace/texeldodge/dodge"
)

var rootCmd = &cobra.Command{
	Use:           "texel-dodge",
	Short:         "Window-swap dodge transitions on a terminal desktop",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dodge.SetVerboseLogging(verboseEnabled(cmd))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose transition logging")
	rootCmd.AddCommand(runCmd, simulateCmd, journalCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadOptions reads engine options from the system config. A broken config
// file is reported and defaults are used.
func loadOptions() (config.Config, dodge.Options) {
	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: %v (using defaults)", err)
	}
	return cfg, dodge.OptionsFromConfig(cfg)
}

func verboseEnabled(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose || config.System().GetBool("log", "verbose", false)
}
