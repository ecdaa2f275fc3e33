package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version = "0.1.0"
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "statuswatch",
		Short: "Vendor status-page watcher",
		Long:  "Statuswatch checks security-vendor status pages, normalizes their incidents into one canonical model, and delivers per-vendor reports or a cross-vendor digest.",
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("headless", true, "Render pages in headless Chrome (disable for JSON-only vendors)")
	rootCmd.PersistentFlags().Bool("notify", false, "Deliver results to the configured notification channels")
	_ = viper.BindPFlag("headless", rootCmd.PersistentFlags().Lookup("headless"))
	_ = viper.BindPFlag("notify", rootCmd.PersistentFlags().Lookup("notify"))

	// Environment variable support (STATUSWATCH_HEADLESS, etc.)
	viper.SetEnvPrefix("STATUSWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newVendorsCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDigestCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the statuswatch version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("statuswatch %s\n", Version)
		},
	}
}
