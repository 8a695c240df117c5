package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/output"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets [input.xlsx]",
	Short: "Dump the indexed cells of every sheet",
	Long: `Dump every indexed cell with its row and column, for locating the
cells a mapping should point at.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := pdsextract.Dump(args[0])
		if err != nil {
			return err
		}
		if sheetsDir != "" {
			return writeSheetFiles(wb, sheetsDir)
		}

		jsonData, err := output.ToJSON(wb, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	sheetsCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	sheetsCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Write one file per sheet into this directory")
}
