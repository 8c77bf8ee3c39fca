package cmd

import (
	"fmt"

	"github.com/matthieukhl/oms/internal/config"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed products, status transitions and worker configurations",
	Long: `Clears reference data and repopulates it with the demo data set:
two products, the order status transition graph and five default worker
configurations (confirmation/shipping emails, warehouse and shipping
webhooks, stock reduction).`,
	RunE: seedData,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedData(cmd *cobra.Command, args []string) error {
	fmt.Println("🌱 Seeding database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.SetupSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if err := database.Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fmt.Println("✅ Database seeding complete!")
	return nil
}
