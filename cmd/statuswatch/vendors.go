package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hive-corporation/statuswatch/internal/adapter/vendor"
)

func newVendorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "List the supported vendors",
		Run: func(cmd *cobra.Command, args []string) {
			registry := vendor.NewRegistry()
			for _, a := range registry.All() {
				fmt.Printf("%-12s %s\n", a.Name(), a.Sources()[0])
			}
		},
	}
}
