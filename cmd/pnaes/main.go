package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataiesb/pnaes/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "pnaes",
	Short:   "Analytics server for Brazilian public-health data",
	Long: `PNAES serves descriptive analytics over pre-aggregated SUS ambulatory,
Censo 2022 population, municipal GDP, and municipality reference tables
through a read-only JSON and CSV API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		readConfig(cmd)
		setupLogging()

		configFile, _ := cmd.Flags().GetString("config")
		var configFiles []string
		if configFile != "" {
			configFiles = []string{configFile}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: postgres, sqlite (default: postgres, env: PNAES_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (env: PNAES_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("min-year", "", "earliest production year loaded (default: 2020, env: PNAES_DATABASE_MIN_YEAR)")

	_ = viper.BindPFlag("database.type", rootCmd.PersistentFlags().Lookup("db-type"))
	_ = viper.BindPFlag("database.dsn", rootCmd.PersistentFlags().Lookup("db-dsn"))
	_ = viper.BindPFlag("database.min_year", rootCmd.PersistentFlags().Lookup("min-year"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
