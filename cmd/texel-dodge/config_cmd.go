// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texel-dodge/config_cmd.go
// Summary: Shows and edits the system config file.
// Usage: texel-dodge config show | config set <section> <key> <value>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldodge/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the system configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show [section]",
	Short: "Print the configuration as YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section := ""
		if len(args) == 1 {
			section = args[0]
		}
		return showConfig(os.Stdout, config.System(), section)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section> <key> <value>",
	Short: "Change one existing key and save the file",
	Long: `Change one existing key of the system configuration and save it. The value
is parsed as a YAML scalar, so 2000 is a number, true a boolean and anything
else a string.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		stored, err := setConfigValue(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s.%s = %v\n", args[0], args[1], stored)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

// showConfig writes cfg, or one section of it, as YAML.
func showConfig(w io.Writer, cfg config.Config, section string) error {
	var doc interface{} = cfg
	if section != "" {
		sec := cfg.Section(section)
		if sec == nil {
			return fmt.Errorf("unknown config section %q", section)
		}
		doc = sec
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// setConfigValue updates an existing key, saves the system config and reloads
// it from disk. It returns the value as read back.
func setConfigValue(section, key, raw string) (interface{}, error) {
	if err := config.Err(); err != nil {
		return nil, fmt.Errorf("config file is unreadable, fix it first: %w", err)
	}
	cfg := config.Clone(config.System())
	sec := cfg.Section(section)
	if sec == nil {
		return nil, fmt.Errorf("unknown config section %q", section)
	}
	if _, ok := sec[key]; !ok {
		return nil, fmt.Errorf("unknown config key %s.%s", section, key)
	}

	var value interface{}
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		value = raw
	}
	sec[key] = value

	config.SetSystem(cfg)
	if err := config.SaveSystem(); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}
	if err := config.Reload(); err != nil {
		return nil, fmt.Errorf("reload config: %w", err)
	}
	return config.System().Section(section)[key], nil
}
