package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hive-corporation/statuswatch/internal/adapter/exporter"
	"github.com/hive-corporation/statuswatch/internal/adapter/repository"
	"github.com/hive-corporation/statuswatch/internal/adapter/vendor"
	"github.com/hive-corporation/statuswatch/internal/config"
	"github.com/hive-corporation/statuswatch/internal/core/domain"
	"github.com/hive-corporation/statuswatch/internal/core/ports"
	"github.com/hive-corporation/statuswatch/internal/metrics"
)

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Check every vendor and build the cross-vendor digest",
		Long:  "Fetches all vendor status pages concurrently, merges the reports into one digest, prints it and optionally persists the reports and delivers the digest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			metrics.Init()
			registry := vendor.NewRegistry()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			log.Println("🚀 Vendor status check started...")

			adapters := registry.All()
			reports := make([]domain.Report, len(adapters))
			var wg sync.WaitGroup
			for i, a := range adapters {
				wg.Add(1)
				go func(i int, a ports.StatusAdapter) {
					defer wg.Done()
					log.Printf("📥 Checking %s...", a.Name())
					reports[i] = collectReport(ctx, a, cfg)
				}(i, a)
			}
			wg.Wait()

			digest := exporter.BuildDigest(reports, time.Now())
			log.Printf("🏁 %d vendors checked: %d OK, %d need attention", digest.Vendors, digest.OK, digest.Attention)

			if viper.GetBool("save") {
				saveReports(ctx, cfg, reports)
			}

			if html, _ := cmd.Flags().GetBool("html"); html {
				page, err := digest.HTML()
				if err != nil {
					return err
				}
				fmt.Print(page)
				return nil
			}

			message := digest.Text()
			fmt.Print(message)

			if viper.GetBool("notify") {
				deliver(ctx, buildNotifiers(cfg), message)
			}
			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Persist every report to the database")
	cmd.Flags().Bool("html", false, "Print the digest as HTML instead of plain text")
	_ = viper.BindPFlag("save", cmd.Flags().Lookup("save"))

	return cmd
}

func saveReports(ctx context.Context, cfg config.Config, reports []domain.Report) {
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Printf("❌ Failed to connect to database: %v", err)
		return
	}
	defer dbPool.Close()

	repo := repository.NewPostgresRepository(dbPool)
	saved := 0
	for _, report := range reports {
		if err := repo.SaveReport(ctx, report); err != nil {
			log.Printf("❌ Failed to save report for %s: %v", report.Vendor, err)
			continue
		}
		saved++
	}
	log.Printf("💾 %d/%d reports saved", saved, len(reports))
}
