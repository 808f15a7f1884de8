package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataiesb/pnaes"
	"github.com/dataiesb/pnaes/config"
)

func init() {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the raw ambulatory table to CSV",
		Long:  `Export all loaded ambulatory procedure rows to a CSV file with a header row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("create csv file: %w", err)
			}
			defer func() { _ = file.Close() }()

			if err := service.ExportAmbulatoryCSV(ctx, file); err != nil {
				return err
			}

			fmt.Printf("CSV written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", pnaes.ExportFileName, "output CSV file name")
	rootCmd.AddCommand(cmd)
}
