package main

import (
	"os"

	"github.com/spf13/cobra"
)

var topStates int

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show dataset row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		overview, err := client.Overview(cmd.Context())
		if err != nil {
			return err
		}

		return getFormatter().FormatOverview(os.Stdout, overview)
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Show the by-region aggregate table",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		summaries, err := client.RegionSummaries(cmd.Context())
		if err != nil {
			return err
		}

		return getFormatter().FormatRegions(os.Stdout, summaries)
	},
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Show the by-state aggregate table",
	Long: `Show the by-state aggregate table.

With --top N, only the N states with the highest summed value are shown,
ranked descending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		summaries, err := client.StateSummaries(cmd.Context(), topStates)
		if err != nil {
			return err
		}

		return getFormatter().FormatStates(os.Stdout, summaries)
	},
}

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Show the by-year aggregate table",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		summaries, err := client.YearSummaries(cmd.Context())
		if err != nil {
			return err
		}

		return getFormatter().FormatYears(os.Stdout, summaries)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show source table diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		probes, err := client.Schema(cmd.Context())
		if err != nil {
			return err
		}

		return getFormatter().FormatSchema(os.Stdout, probes)
	},
}

func init() {
	statesCmd.Flags().IntVar(&topStates, "top", 0, "show only the top N states by summed value")
}
