package cmd

import (
	"fmt"

	"github.com/matthieukhl/oms/internal/config"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/spf13/cobra"
)

var dropFirst bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the database schema",
	Long: `Creates the application tables (products, orders, order_items,
order_status_transitions, worker_configurations).

Run 'oms seed' afterwards to populate products, the status transition
graph and the default worker configurations.`,
	RunE: setupSchema,
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&dropFirst, "drop-first", false, "Drop existing tables before creating")
}

func setupSchema(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Setting up database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Drop tables if requested
	if dropFirst {
		fmt.Println("🗑️  Dropping existing tables...")
		if err := db.DropSchema(); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	fmt.Println("📋 Creating schema...")
	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to setup schema: %w", err)
	}

	fmt.Println("✅ Database setup complete!")
	return nil
}
