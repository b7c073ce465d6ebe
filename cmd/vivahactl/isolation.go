package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vivaha-be/internal/isolation"
)

var isolationDir string

var checkIsolationCmd = &cobra.Command{
	Use:   "check-isolation",
	Short: "Find dashboard code that bypasses user-scoped storage",
	Long: `Scans TypeScript and JavaScript sources for direct localStorage access to
per-user data keys. Such access leaks one account's data into another on a
shared browser. Exits non-zero when anything is found.`,
	RunE: runCheckIsolation,
}

func init() {
	checkIsolationCmd.Flags().StringVar(&isolationDir, "dir", "client/src", "Source directory to scan")
}

func runCheckIsolation(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(isolationDir); err != nil {
		return err
	}

	findings, err := isolation.NewChecker(isolation.UserDataKeys).CheckFS(os.DirFS(isolationDir))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range findings {
		fmt.Fprintln(out, f)
	}
	if len(findings) > 0 {
		return fmt.Errorf("%d direct localStorage access(es) to user data", len(findings))
	}
	fmt.Fprintln(out, "No direct localStorage access to user data found")
	return nil
}
