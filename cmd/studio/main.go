// Command studio runs the portfolio in the terminal and exposes its pieces
// as subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/odvcencio/furry-motion/chat"
	"github.com/odvcencio/furry-motion/comments"
	"github.com/odvcencio/furry-motion/config"
	"github.com/odvcencio/furry-motion/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	configPath string
	logFile    string
	dbPath     string
	ephemeral  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "studio",
		Short:         "Amy Simpson's studio, in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (default $FURRY_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "comments database (overrides comments_db)")
	rootCmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep comments in memory only")

	rootCmd.AddCommand(runCmd(flags))
	rootCmd.AddCommand(chatCmd(flags))
	rootCmd.AddCommand(commentsCmd(flags))
	rootCmd.AddCommand(pathCmd())
	return rootCmd
}

// env is what every command needs after flags are parsed.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  comments.Store
	closer func() error
}

func setup(flags *globalFlags, interactive bool) (*env, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}
	if flags.dbPath != "" {
		cfg.CommentsDB = flags.dbPath
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}, interactive)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, logger: logger, closer: func() error { return nil }}
	if flags.ephemeral || cfg.CommentsDB == "" {
		e.store = comments.NewMemoryStore()
		return e, nil
	}
	db, err := comments.OpenSQLite(cfg.CommentsDB, logger)
	if err != nil {
		return nil, fmt.Errorf("comments store %s: %w", cfg.CommentsDB, err)
	}
	e.store = db
	e.closer = db.Close
	return e, nil
}

func (e *env) close() {
	if err := e.closer(); err != nil {
		e.logger.Warn("close comments store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// coach builds the assistant. Without credentials it answers with the
// offline fallback.
func (e *env) coach(ctx context.Context) *chat.Coach {
	if e.cfg.ChatAPIKey == "" {
		return chat.NewCoach(nil, e.logger)
	}
	backend, err := chat.NewGemini(ctx, e.cfg.ChatAPIKey, e.cfg.ChatModel)
	if err != nil {
		e.logger.Warn("assistant offline", zap.Error(err))
		return chat.NewCoach(nil, e.logger)
	}
	return chat.NewCoach(backend, e.logger)
}
