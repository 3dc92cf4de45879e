package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-align/internal/seq"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-align configuration",
		Long: `Show, get, or set configuration values. Config is stored in ~/.vibe-align.yaml.

Keys:
  store.path     alignment database (default ~/.vibe-align/alignments.duckdb)
  gap            gap character for inserted columns: - or .
  history.limit  journaled edits kept for undo and redo
  log.level      debug, info, warn, error
  log.format     console or json
  server.addr    listen address for serve`,
		Example: `  vibe-align config                          # show all config
  vibe-align config set store.path /data/msa.duckdb  # use another database
  vibe-align config get history.limit         # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("# No configuration set. Config file: ~/.vibe-align.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	if err := validateConfig(key, value); err != nil {
		return usageError{err}
	}
	if n, err := strconv.Atoi(value); err == nil {
		viper.Set(key, n)
	} else {
		viper.Set(key, value)
	}

	// Ensure config file exists
	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vibe-align.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Println(val)
	return nil
}

// validateConfig rejects values the commands could not use.
func validateConfig(key, value string) error {
	switch key {
	case "gap":
		if len(value) != 1 || !seq.IsGap(value[0]) {
			return fmt.Errorf("gap must be - or ., got %q", value)
		}
	case "history.limit":
		if n, err := strconv.Atoi(value); err != nil || n < 1 {
			return fmt.Errorf("history.limit must be a positive number, got %q", value)
		}
	case "log.level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return err
		}
	case "log.format":
		if value != "console" && value != "json" {
			return fmt.Errorf("log.format must be console or json, got %q", value)
		}
	}
	return nil
}
