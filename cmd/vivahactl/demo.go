package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vivaha-be/internal/demo"
)

var (
	demoBaseURL string
	demoOut     string
	demoRoutes  []string
	demoToken   string
	demoSettle  time.Duration
	demoBrowser string
)

var captureDemoCmd = &cobra.Command{
	Use:   "capture-demo",
	Short: "Screenshot app routes in a headless browser as demo frames",
	RunE:  runCaptureDemo,
}

func init() {
	captureDemoCmd.Flags().StringVar(&demoBaseURL, "base-url", "http://localhost:5174", "Web app URL")
	captureDemoCmd.Flags().StringVar(&demoOut, "out", "demo-frames", "Output directory")
	captureDemoCmd.Flags().StringSliceVar(&demoRoutes, "route", nil, "Route to capture, repeatable (default: dashboard walkthrough)")
	captureDemoCmd.Flags().StringVar(&demoToken, "token", "", "JWT to sign the browser in with")
	captureDemoCmd.Flags().DurationVar(&demoSettle, "settle", time.Second, "Wait after each page load")
	captureDemoCmd.Flags().StringVar(&demoBrowser, "browser", "", "DevTools URL of a running Chrome (default: launch one)")
}

func runCaptureDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	frames, err := demo.Capture(ctx, demo.Config{
		BaseURL:    demoBaseURL,
		OutDir:     demoOut,
		Routes:     demoRoutes,
		Token:      demoToken,
		Settle:     demoSettle,
		ControlURL: demoBrowser,
	}, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Captured %d frame(s) into %s\n", len(frames), demoOut)
	return nil
}
