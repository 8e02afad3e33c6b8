// Package main provides the scout CLI: a visual browser automation agent
// that executes recorded plans, grounding clicks through Set-of-Mark
// annotation when selectors fail.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/entrhq/scout/pkg/cache"
	"github.com/entrhq/scout/pkg/config"
	"github.com/entrhq/scout/pkg/llm"
	"github.com/entrhq/scout/pkg/llm/anthropic"
	"github.com/entrhq/scout/pkg/llm/openai"
	"github.com/entrhq/scout/pkg/logging"
	"github.com/entrhq/scout/pkg/navigator"
	"github.com/entrhq/scout/pkg/tools/browser"
	"github.com/entrhq/scout/pkg/types"
)

const version = "0.1.0"

var (
	headlessFlag bool
	providerFlag string
	modelFlag    string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "scout",
		Short:         "Visual browser automation agent",
		Long:          "scout executes recorded browser plans, resolving each click through\ncached selectors, text matching, or Set-of-Mark vision grounding.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&headlessFlag, "headless", true, "Run the browser without a visible window")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "LLM provider: openai or anthropic (default: from env)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model override")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd(), annotateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <plan-file>",
		Short: "Execute a recorded plan (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			log, closeLog := newLogger(cfg)
			defer closeLog()

			plan, err := types.LoadPlan(args[0])
			if err != nil {
				return err
			}

			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			store, err := cache.Open(cfg.CachePath)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			return withSession(cfg, log, func(session *browser.Session) error {
				nav := navigator.New(
					navigator.NewSessionDriver(session),
					provider,
					navigator.WithCache(store),
					navigator.WithLogger(log),
					navigator.WithScreenshotDir(cfg.ScreenshotDir),
					navigator.WithScreenshotMaxWidth(cfg.ScreenshotMaxWidth),
				)

				if plan.SourceURL != "" {
					if err := session.Navigate(plan.SourceURL, browser.NavigateOptions{WaitUntil: "domcontentloaded"}); err != nil {
						return fmt.Errorf("opening %s: %w", plan.SourceURL, err)
					}
				}
				return nav.ExecutePlan(ctx, plan)
			})
		},
	}
}

func annotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate <url>",
		Short: "Annotate a page with numbered badges and print the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			log, closeLog := newLogger(cfg)
			defer closeLog()

			return withSession(cfg, log, func(session *browser.Session) error {
				if err := session.Navigate(args[0], browser.NavigateOptions{WaitUntil: "domcontentloaded"}); err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}

				manifest, err := session.Annotate()
				if err != nil {
					return err
				}

				if _, err := session.Screenshot(browser.ScreenshotOptions{
					MaxWidth: cfg.ScreenshotMaxWidth,
					Path:     "annotated.png",
				}); err != nil {
					return err
				}

				for _, entry := range manifest {
					fmt.Printf("[%2d] %-8s %-20s %-16s %s\n",
						entry.ID, entry.TagName, truncate(entry.Label, 20), entry.Region, entry.Selector)
				}
				fmt.Printf("\n%d elements annotated, screenshot saved to annotated.png\n", len(manifest))
				return session.ClearAnnotations()
			})
		},
	}
}

// loadConfig reads environment settings and applies flag overrides. Flags
// only win when set explicitly, so env configuration survives the defaults.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if cmd.Flags().Changed("headless") {
		cfg.Headless = headlessFlag
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg
}

// newLogger builds the run logger and mirrors it to a per-run file when the
// log directory is available. The returned close function flushes the file
// and must be deferred by the caller.
func newLogger(cfg *config.Config) (*logrus.Logger, func()) {
	log := logging.New(cfg.LogLevel)

	dir, err := logging.DefaultDir()
	if err != nil {
		return log, func() {}
	}
	path, closeFn, err := logging.AttachRunFile(log, dir, logging.NewRunID())
	if err != nil {
		log.WithError(err).Warn("run log file unavailable")
		return log, func() {}
	}
	log.WithField("path", path).Debug("run log attached")
	return log, func() { _ = closeFn() }
}

// newProvider builds the configured LLM provider.
func newProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case "openai":
		var opts []openai.Option
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return openai.NewProvider(cfg.OpenAIAPIKey, opts...)
	case "anthropic":
		var opts []anthropic.Option
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		return anthropic.NewProvider(cfg.AnthropicAPIKey, opts...)
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or anthropic)", cfg.Provider)
	}
}

// withSession runs fn inside a fully initialized browser session and tears
// everything down afterwards.
func withSession(cfg *config.Config, log *logrus.Logger, fn func(*browser.Session) error) error {
	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := manager.CloseAll(); err != nil {
			log.WithError(err).Warn("closing browser sessions")
		}
	}()

	session, err := manager.StartSession("main", browser.SessionOptions{
		Headless: cfg.Headless,
		Viewport: &browser.Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
		Timeout:  cfg.BrowserTimeoutMs,
	})
	if err != nil {
		return err
	}
	return fn(session)
}

// signalContext cancels on SIGINT or SIGTERM for graceful shutdown.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
