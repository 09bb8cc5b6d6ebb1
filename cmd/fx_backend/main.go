package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// @title Wallet FX Engine API
// @version 1.0
// @description Currency registry, exchange rates, fees, transfer limits and transfer previews for the wallet.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth

var (
	rootCmd = &cobra.Command{
		Use:               "fx_backend",
		Short:             "Multi-currency exchange, fee and transfer-limit engine",
		PersistentPreRunE: loadEnvFile,
		RunE:              serve,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  serve,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the fx_backend version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	envFile string
	version = "dev"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "path to a .env file (optional)")
	rootCmd.AddCommand(serveCmd, migrateCmd, syncCurrenciesCmd, syncRatesCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Default().Error("fx_backend failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadEnvFile(cmd *cobra.Command, args []string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("cannot load env file %s: %w", envFile, err)
	}
	return nil
}
