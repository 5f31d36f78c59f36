package main

import (
	"context"
	"fmt"

	"github.com/01moynul/binner-golang/internal/bootstrap"
	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/logging"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	configDir string
	userID    int64
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "binnerctl",
		Short:         "Administer a Binner parts inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config", "", "directory containing config.yaml")
	root.PersistentFlags().Int64Var(&opts.userID, "user-id", 0, "act as this user (0 sees every user's rows)")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newPartsCmd(opts))
	root.AddCommand(newUsersCmd(opts))
	return root
}

// session is an open store plus the context commands run under.
type session struct {
	ctx    context.Context
	store  storage.Provider
	logger *zap.Logger
}

func (s *session) Close() {
	_ = s.store.Close()
	_ = s.logger.Sync()
}

func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	var paths []string
	if o.configDir != "" {
		paths = append(paths, o.configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	// Keep command output readable; only problems are logged.
	cfg.Log.Level = "warn"
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if o.userID > 0 {
		ctx = requestctx.WithUser(ctx, models.UserContext{UserID: o.userID})
	}
	return &session{ctx: ctx, store: store, logger: logger}, nil
}

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Every provider migrates as part of opening.
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}
}
