package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataiesb/pnaes"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the raw ambulatory CSV export",
	Long: `Download the raw ambulatory procedure table as CSV.

Use -o - to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err := client.ExportCSV(cmd.Context(), os.Stdout)
			return err
		}

		file, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer func() { _ = file.Close() }()

		n, err := client.ExportCSV(cmd.Context(), file)
		if err != nil {
			return err
		}

		fmt.Printf("Downloaded %s (%d bytes)\n", exportOutput, n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", pnaes.ExportFileName, "output CSV file name, or - for stdout")
}
