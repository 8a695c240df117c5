package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/output"
)

var (
	outputPath string
	pretty     bool
	jobs       int
	sheetsDir  string
)

var extractCmd = &cobra.Command{
	Use:   "extract [input.xlsx...]",
	Short: "Extract workbooks into JSON documents",
	Long: `Extract one or more workbooks. A single input produces its document;
several inputs produce an object keyed by input path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	extractCmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Maximum workbooks extracted concurrently")
	extractCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet dump files")
}

func runExtract(cmd *cobra.Command, args []string) error {
	if jobs < 1 {
		return fmt.Errorf("invalid --jobs %d: must be at least 1", jobs)
	}

	schema, err := loadSchema()
	if err != nil {
		return err
	}
	opts := pdsextract.Options{
		Logger:       logger,
		DefaultSheet: cfg.Mapping.DefaultSheet,
	}

	docs := make([]models.Document, len(args))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range args {
		g.Go(func() error {
			doc, err := pdsextract.ExtractFile(path, schema, opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			logger.Info("extracted",
				zap.String("file", path),
				zap.Int("keys", len(doc)),
				zap.Strings("sections", pdsextract.Sections(doc)),
			)
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var jsonData []byte
	if len(args) == 1 {
		jsonData, err = output.DocumentToJSON(docs[0], pretty)
	} else {
		byPath := make(map[string]models.Document, len(args))
		for i, path := range args {
			byPath[path] = docs[i]
		}
		jsonData, err = output.ToJSON(byPath, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		for _, path := range args {
			dir := sheetsDir
			if len(args) > 1 {
				dir = filepath.Join(sheetsDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
			}
			wb, err := pdsextract.Dump(path)
			if err != nil {
				return err
			}
			if err := writeSheetFiles(wb, dir); err != nil {
				return fmt.Errorf("failed to write sheet files: %w", err)
			}
		}
	}

	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
