// Package demo drives a headless browser through the web app and saves one
// screenshot per route, the raw frames of the product demo video.
package demo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// DefaultRoutes is the walkthrough used when no routes are given.
var DefaultRoutes = []string{
	"/",
	"/dashboard",
	"/dashboard/budget",
	"/dashboard/guests",
	"/dashboard/seating",
	"/dashboard/vendors",
	"/dashboard/todos",
}

type Config struct {
	BaseURL    string
	OutDir     string
	Routes     []string
	Width      int
	Height     int
	Token      string // stored as localStorage "token" so dashboard routes render signed in
	Settle     time.Duration
	NavTimeout time.Duration
	ControlURL string // existing Chrome DevTools endpoint; empty launches a headless browser
}

func (c *Config) setDefaults() {
	if len(c.Routes) == 0 {
		c.Routes = DefaultRoutes
	}
	if c.Width == 0 {
		c.Width = 1920
	}
	if c.Height == 0 {
		c.Height = 1080
	}
	if c.Settle == 0 {
		c.Settle = time.Second
	}
	if c.NavTimeout == 0 {
		c.NavTimeout = 30 * time.Second
	}
}

// FrameName maps the i-th route to its screenshot file name.
func FrameName(i int, route string) string {
	slug := strings.Trim(strings.ReplaceAll(route, "/", "-"), "-")
	if slug == "" {
		slug = "home"
	}
	return fmt.Sprintf("%02d-%s.png", i+1, slug)
}

// Capture visits every route and writes a PNG per route into cfg.OutDir.
// It returns the written paths in route order.
func Capture(ctx context.Context, cfg Config, logger zerolog.Logger) ([]string, error) {
	cfg.setDefaults()
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		defer l.Cleanup()
		defer l.Kill()
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Width,
		Height:            cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Token != "" {
		// localStorage is per origin, so the origin has to be open first.
		if err := page.Timeout(cfg.NavTimeout).Navigate(base); err != nil {
			return nil, fmt.Errorf("open %s: %w", base, err)
		}
		if _, err := page.Eval(`(t) => localStorage.setItem("token", t)`, cfg.Token); err != nil {
			return nil, fmt.Errorf("store token: %w", err)
		}
	}

	paths := make([]string, 0, len(cfg.Routes))
	for i, route := range cfg.Routes {
		target := base + "/" + strings.TrimLeft(route, "/")
		if err := page.Timeout(cfg.NavTimeout).Navigate(target); err != nil {
			return paths, fmt.Errorf("navigate to %s: %w", target, err)
		}
		if err := page.Timeout(cfg.NavTimeout).WaitLoad(); err != nil {
			logger.Warn().Err(err).Str("route", route).Msg("page did not finish loading")
		}
		time.Sleep(cfg.Settle)

		png, err := page.Screenshot(false, nil)
		if err != nil {
			return paths, fmt.Errorf("screenshot %s: %w", route, err)
		}

		out := filepath.Join(cfg.OutDir, FrameName(i, route))
		if err := os.WriteFile(out, png, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info().Str("route", route).Str("file", out).Msg("frame captured")
		paths = append(paths, out)
	}
	return paths, nil
}
