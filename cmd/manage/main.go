package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/labourlink/internal/config"
	"github.com/Windi-Fikriyansyah/labourlink/internal/db"
	"github.com/Windi-Fikriyansyah/labourlink/internal/logger"
	"github.com/Windi-Fikriyansyah/labourlink/internal/seed"
)

var rootCmd = &cobra.Command{
	Use:          "manage",
	Short:        "Database maintenance for LabourLink",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users, orders and works tables",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the bundled sample accounts, works and orders",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func open() (*gorm.DB, *zap.Logger, error) {
	cfg := config.LoadDatabase()
	log := logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	gdb, err := db.Connect(cfg.DBDSN, log)
	if err != nil {
		return nil, log, fmt.Errorf("connect database: %w", err)
	}
	return gdb, log, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	gdb, log, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("schema up to date")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	gdb, log, err := open()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	data, err := seed.Load()
	if err != nil {
		return err
	}
	sum, err := seed.Run(cmd.Context(), gdb, data, log)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "customers: %d, labours: %d, works: %d, orders: %d\n",
		sum.Customers, sum.Labours, sum.Works, sum.Orders)
	fmt.Fprintln(out, "sample logins:")
	for _, a := range slices.Concat(data.Customers, data.Labours) {
		fmt.Fprintf(out, "  %s / %s\n", a.Email, a.Password)
	}
	return nil
}
