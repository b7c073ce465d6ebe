package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"vivaha-be/internal/email"
)

var (
	emailTo   string
	emailName string
)

var sendWelcomeCmd = &cobra.Command{
	Use:   "send-welcome",
	Short: "Send the welcome email to one address",
	RunE:  runSendWelcome,
}

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Send a delivery test email through Resend",
	RunE:  runTestEmail,
}

func init() {
	sendWelcomeCmd.Flags().StringVar(&emailTo, "to", "", "Recipient address")
	sendWelcomeCmd.Flags().StringVar(&emailName, "name", "", "Recipient name")
	_ = sendWelcomeCmd.MarkFlagRequired("to")

	testEmailCmd.Flags().StringVar(&emailTo, "to", "", "Recipient address")
	_ = testEmailCmd.MarkFlagRequired("to")
}

func newSender() (*email.Sender, error) {
	sender := email.NewSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL, log)
	if !sender.Configured() {
		return nil, errors.New("RESEND_API_KEY is not set")
	}
	return sender, nil
}

func runSendWelcome(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sender, err := newSender()
	if err != nil {
		return err
	}
	if err := sender.SendWelcome(ctx, emailTo, emailName); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Welcome email sent to %s\n", emailTo)
	return nil
}

func runTestEmail(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	sender, err := newSender()
	if err != nil {
		return err
	}
	id, err := sender.SendTest(ctx, emailTo)
	if err != nil {
		return fmt.Errorf("send test email: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s (id %s)\n", emailTo, id)
	return nil
}
