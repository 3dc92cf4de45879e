// Package main provides the vibe-align command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-align/internal/session"
	"github.com/inodb/vibe-align/internal/store"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks bad command-line input.
type usageError struct{ error }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe-align",
		Short: "Edit gapped multiple sequence alignments",
		Long: `vibe-align keeps named alignments in a local DuckDB file and edits them
with gap-aware operations: extend, trim, level, collapse, slide and
re-anchor rows against their parent sequences, with undo and redo.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.vibe-align.yaml)")
	pf.String("db", "", "alignment database path")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console, json")
	viper.BindPFlag("store.path", pf.Lookup("db"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))

	root.AddCommand(newNewCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newRowsCmd())
	root.AddCommand(newGapsCmd())
	root.AddCommand(newSlideCmd())
	root.AddCommand(newSidedCmd("extend", "Extend rows toward a column with parent residues", session.Extend))
	root.AddCommand(newSidedCmd("trim", "Trim rows at a column", session.Trim))
	root.AddCommand(newSidedCmd("level", "Make rows flush with a column", session.Level))
	root.AddCommand(newCollapseCmd())
	root.AddCommand(newAnchorCmd())
	root.AddCommand(newUndoCmd())
	root.AddCommand(newRedoCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() error {
	viper.SetDefault("gap", "-")
	viper.SetDefault("server.addr", "localhost:8080")
	viper.SetDefault("history.limit", session.DefaultHistoryLimit)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".vibe-align")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_ALIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// defaultStorePath returns ~/.vibe-align/alignments.duckdb.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "alignments.duckdb"
	}
	return filepath.Join(home, ".vibe-align", "alignments.duckdb")
}

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return nil, usageError{fmt.Errorf("log level: %w", err)}
	}

	var cfg zap.Config
	switch viper.GetString("log.format") {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, usageError{fmt.Errorf("unknown log format %q", viper.GetString("log.format"))}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// env holds what every subcommand needs. Close releases the store and
// flushes the logger.
type env struct {
	logger   *zap.Logger
	store    *store.Store
	sessions *session.Manager
}

func openEnv() (*env, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	path := viper.GetString("store.path")
	if path == "" {
		path = defaultStorePath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	st.SetLogger(logger)

	mg := session.NewManager(st)
	mg.SetLogger(logger)
	mg.SetHistoryLimit(viper.GetInt("history.limit"))
	gap := viper.GetString("gap")
	if len(gap) != 1 {
		st.Close()
		return nil, usageError{fmt.Errorf("gap must be a single character, got %q", gap)}
	}
	if err := mg.SetGap(gap[0]); err != nil {
		st.Close()
		return nil, usageError{err}
	}

	logger.Debug("opened store", zap.String("path", path))
	return &env{logger: logger, store: st, sessions: mg}, nil
}

func (e *env) Close() {
	e.store.Close()
	e.logger.Sync()
}
