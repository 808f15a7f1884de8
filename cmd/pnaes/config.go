package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dataiesb/pnaes"
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("server.port", 8501)

	viper.SetDefault("database.type", "postgres")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.min_year", pnaes.DefaultMinYear)

	tables := pnaes.DefaultTables()
	viper.SetDefault("database.tables.ambulatory", tables.Ambulatory)
	viper.SetDefault("database.tables.population", tables.Population)
	viper.SetDefault("database.tables.economic", tables.Economic)
	viper.SetDefault("database.tables.municipality", tables.Municipality)

	limits := pnaes.DefaultLimits()
	viper.SetDefault("database.limits.population", limits.Population)
	viper.SetDefault("database.limits.economic", limits.Economic)
	viper.SetDefault("database.limits.municipality", limits.Municipality)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl_seconds", 0)
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.db", 0)

	viper.SetDefault("log.level", "info")
}

func readConfig(cmd *cobra.Command) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		slog.Warn("failed to bind flags", "err", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("PNAES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			slog.Warn("error reading config file", "err", err)
		}
	}
}
