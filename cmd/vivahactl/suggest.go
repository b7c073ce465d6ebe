package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vivaha-be/internal/aiclient"
)

var (
	suggestAPI        string
	suggestBudget     float64
	suggestGuests     int
	suggestCity       string
	suggestPriorities []string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Ask a running API for budget suggestions",
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestAPI, "api", "http://localhost:3000", "API base URL")
	suggestCmd.Flags().Float64Var(&suggestBudget, "budget", 0, "Total budget in dollars")
	suggestCmd.Flags().IntVar(&suggestGuests, "guests", 0, "Guest count")
	suggestCmd.Flags().StringVar(&suggestCity, "city", "", "Wedding city")
	suggestCmd.Flags().StringSliceVar(&suggestPriorities, "priority", nil, "Priority, repeatable")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	client := aiclient.New(suggestAPI, timeout, log)
	suggestions := client.GenerateBudgetSuggestions(ctx, suggestBudget, suggestGuests, suggestCity, suggestPriorities)

	out := cmd.OutOrStdout()
	if len(suggestions) == 0 {
		fmt.Fprintln(out, "No suggestions available")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintln(out, s)
	}
	return nil
}
