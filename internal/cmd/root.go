package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oms",
	Short: "OMS - Order Management Demo Backend",
	Long: `OMS is a demo order-management backend: a REST API over products,
orders and worker configurations.

The order workflow validates stock against the catalog, snapshots product
data into each order item, persists the order atomically and publishes
domain events to an in-process queue for downstream workers.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
