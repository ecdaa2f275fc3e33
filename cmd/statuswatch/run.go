package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hive-corporation/statuswatch/internal/adapter/exporter"
	"github.com/hive-corporation/statuswatch/internal/adapter/fetch"
	"github.com/hive-corporation/statuswatch/internal/adapter/notifier"
	"github.com/hive-corporation/statuswatch/internal/adapter/vendor"
	"github.com/hive-corporation/statuswatch/internal/config"
	"github.com/hive-corporation/statuswatch/internal/core/domain"
	"github.com/hive-corporation/statuswatch/internal/core/ports"
	"github.com/hive-corporation/statuswatch/internal/metrics"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [vendor...]",
		Short: "Check one or more vendor status pages",
		Long:  "Fetches each vendor's status page, extracts the canonical incident report and prints it. With --notify the rendered report is also delivered to every configured channel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			metrics.Init()
			registry := vendor.NewRegistry()

			adapters, err := selectAdapters(registry, args)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			notifiers := buildNotifiers(cfg)

			for _, a := range adapters {
				report := collectReport(ctx, a, cfg)
				message := exporter.RenderReport(report)
				fmt.Println(message)

				if viper.GetBool("notify") {
					deliver(ctx, notifiers, message)
				}
			}
			return nil
		},
	}
	return cmd
}

// selectAdapters resolves the requested vendor ids, defaulting to all.
func selectAdapters(registry *vendor.Registry, names []string) ([]ports.StatusAdapter, error) {
	if len(names) == 0 {
		return registry.All(), nil
	}
	var adapters []ports.StatusAdapter
	for _, name := range names {
		a, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown vendor %q (known: %s)", name, strings.Join(registry.Names(), ", "))
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// collectReport fetches every source of the adapter and extracts the
// report. Fetch failures are logged and skipped; the adapter handles
// whatever snapshots arrived, including none.
func collectReport(ctx context.Context, a ports.StatusAdapter, cfg config.Config) domain.Report {
	started := time.Now()

	var snaps []domain.Snapshot
	for _, url := range a.Sources() {
		snap, err := pickFetcher(url, cfg).Fetch(ctx, url)
		if err != nil {
			log.Printf("⚠️  %s: fetch of %s failed: %v", a.Name(), url, err)
			continue
		}
		if snap.Truncated {
			log.Printf("⚠️  %s: page load timed out, extracting from partial document", a.Name())
		}
		snaps = append(snaps, snap)
	}

	report := a.Extract(snaps)
	metrics.RecordRun(a.Name(), len(report.Incidents), time.Since(started), len(snaps) == len(a.Sources()))
	return report
}

// pickFetcher chooses plain HTTP for JSON endpoints and, when headless
// rendering is enabled, Chrome for everything else.
func pickFetcher(url string, cfg config.Config) ports.DocumentFetcher {
	if strings.HasSuffix(url, ".json") || !viper.GetBool("headless") {
		return fetch.NewHTTPFetcher(nil)
	}
	return fetch.NewChromeFetcher(cfg.LoadTimeout)
}

func buildNotifiers(cfg config.Config) []ports.Notifier {
	var notifiers []ports.Notifier
	if cfg.TelegramEnabled() {
		notifiers = append(notifiers, notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID))
		log.Println("✅ Telegram notifier enabled")
	}
	if cfg.TeamsEnabled() {
		notifiers = append(notifiers, notifier.NewTeamsNotifier(cfg.TeamsWebhookURL))
		log.Println("✅ Teams notifier enabled")
	}
	if cfg.SlackEnabled() {
		notifiers = append(notifiers, notifier.NewSlackNotifier(cfg.SlackBotToken, cfg.SlackChannel))
		log.Println("✅ Slack notifier enabled")
	}
	if len(notifiers) == 0 {
		log.Println("⚠️  No notification channels configured")
	}
	return notifiers
}

// deliver sends the message to every channel. Failures are logged and
// never abort the run.
func deliver(ctx context.Context, notifiers []ports.Notifier, message string) {
	for _, n := range notifiers {
		err := n.Send(ctx, message)
		metrics.RecordNotification(n.Channel(), err)
		if err != nil {
			log.Printf("⚠️  Delivery to %s failed: %v", n.Channel(), err)
		} else {
			log.Printf("✅ Delivered to %s", n.Channel())
		}
	}
}
