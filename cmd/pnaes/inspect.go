package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dataiesb/pnaes/config"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report the columns of the source tables",
	Long: `Sample one row from each configured source table and print the
columns actually present, or the error for tables that cannot be read.
Useful when the upstream schema drifts from what the loaders expect.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	service, _, cleanup, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	probes, err := service.Diagnostics(ctx)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	tables := make([]string, 0, len(probes))
	for table := range probes {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		probe := probes[table]
		fmt.Printf("Table: %s\n", table)
		if probe.Error != "" {
			fmt.Printf("  Error: %s\n", probe.Error)
			fmt.Println("---")
			continue
		}
		fmt.Printf("  Columns: %v\n", probe.Columns)
		if len(probe.Sample) > 0 {
			fmt.Printf("  Sample: %v\n", probe.Sample)
		}
		fmt.Println("---")
	}

	return nil
}
