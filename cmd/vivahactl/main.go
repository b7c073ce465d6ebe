// Command vivahactl bundles the operational tasks around the Vivaha API:
// seeding accounts, exporting users, sending test email, checking the
// dashboard for per-user storage leaks and capturing demo frames.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vivaha-be/internal/config"
	"vivaha-be/internal/database"
	"vivaha-be/internal/logger"
)

var (
	cfg      *config.Config
	log      zerolog.Logger
	logLevel string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "vivahactl",
	Short:         "Operational tooling for the Vivaha backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if logLevel == "" {
			logLevel = cfg.LogLevel
		}
		log = logger.New(logLevel, "console")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default: LOG_LEVEL or info)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(seedUserCmd)
	rootCmd.AddCommand(seedAccountsCmd)
	rootCmd.AddCommand(exportUsersCmd)
	rootCmd.AddCommand(sendWelcomeCmd)
	rootCmd.AddCommand(testEmailCmd)
	rootCmd.AddCommand(checkIsolationCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(captureDemoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// openDB connects to DATABASE_URL and applies pending migrations.
func openDB() (*sql.DB, error) {
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.RunMigrations(db, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
