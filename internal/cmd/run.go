package cmd

import (
	"fmt"

	"github.com/matthieukhl/oms/internal/catalog"
	"github.com/matthieukhl/oms/internal/config"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/matthieukhl/oms/internal/metrics"
	"github.com/matthieukhl/oms/internal/orders"
	"github.com/matthieukhl/oms/internal/queue"
	"github.com/matthieukhl/oms/internal/server"
	"github.com/matthieukhl/oms/internal/workers"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the OMS server",
	Long: `Start the OMS server which provides:
- REST API for products, orders and worker configurations
- The order-creation workflow with stock validation and event publication
- Worker dispatch for order status changes (email/webhook/inventory)`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 OMS Starting...")

	fmt.Println("📝 Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("🔌 Connecting to database...")
	db, err := database.NewConnection(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("✅ Database connected successfully")

	m := metrics.New("server")
	publisher := queue.NewPublisher(cfg.Queue.PublishDelay, m)

	catalogStore := catalog.NewStore(db)
	orderStore := orders.NewSQLStore(db)
	workerStore := workers.NewStore(db)
	orderService := orders.NewService(catalogStore, orderStore, publisher, m)

	fmt.Println("⚙️  Registering worker dispatcher...")
	dispatcher := workers.NewDispatcher(workerStore, catalogStore)
	dispatcher.Register(publisher)

	fmt.Println("⚙️  Setting up server...")
	srv := server.NewServer(db, orderService, catalogStore, workerStore, m)

	fmt.Printf("🌐 Starting server on %s...\n", cfg.Server.Addr)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
