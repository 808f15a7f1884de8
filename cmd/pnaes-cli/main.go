package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dataiesb/pnaes/clientcli"
)

var (
	version = "dev"

	cfgFile    string
	server     string
	profile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:     "pnaes-cli",
	Version: version,
	Short:   "Client for the PNAES analytics server",
	Long: `PNAES CLI - Client for the PNAES analytics server

Query the aggregate tables (by region, by state, by production year),
dataset overview, and schema diagnostics, or download the raw ambulatory
CSV export.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.pnaes/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:8501, env: PNAES_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: PNAES_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(yearsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath resolves the config file path from flag, env, or default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if envPath := clientcli.ConfigPathFromEnv(); envPath != "" {
		return envPath
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from profile, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	// 1. Load from the selected profile in the config file
	profileName := profile
	if profileName == "" {
		profileName = clientcli.ProfileFromEnv()
	}

	if configPath := getConfigPath(); configPath != "" {
		fileCfg, err := clientcli.LoadConfigFile(configPath)
		if err != nil {
			// Only error if user explicitly selected a profile
			if profileName != "" {
				return nil, err
			}
		} else {
			p, err := fileCfg.GetProfile(profileName)
			if err != nil {
				if profileName != "" {
					return nil, err
				}
			} else {
				configs = append(configs, clientcli.ConfigFromProfile(p))
			}
		}
	}

	// 2. Load from environment variables
	configs = append(configs, clientcli.ConfigFromEnv())

	// 3. Load from flags
	configs = append(configs, &clientcli.Config{Endpoint: server})

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}
