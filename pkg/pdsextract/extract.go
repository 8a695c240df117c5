package pdsextract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/parser"
)

// ExtractFile extracts the workbook at path. A nil schema selects the
// built-in CS Form 212 mapping.
//
// Load errors wrap ErrUnreadable or ErrNoSheets in a *SourceError; a broken
// built-in mapping is returned as the mapping error itself. Anomalies
// inside the workbook degrade to missing values.
func ExtractFile(path string, schema *mapping.Schema, opts Options) (models.Document, error) {
	schema, err := resolveSchema(schema)
	if err != nil {
		return nil, err
	}

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := extract(f, schema, opts)
	if err != nil {
		return nil, newSourceError(path, err)
	}
	return doc, nil
}

// Extract extracts a workbook read from r.
func Extract(r io.Reader, schema *mapping.Schema, opts Options) (models.Document, error) {
	schema, err := resolveSchema(schema)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, newSourceError("", fmt.Errorf("%w: %w", ErrUnreadable, err))
	}
	defer f.Close()

	doc, err := extract(f, schema, opts)
	if err != nil {
		return nil, newSourceError("", err)
	}
	return doc, nil
}

// Dump indexes the workbook at path and returns every sheet as a dump,
// for inspecting cell positions while authoring a mapping.
func Dump(path string) (*models.WorkbookData, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := parser.IndexWorkbook(f)
	if err := checkIndexed(wb); err != nil {
		return nil, newSourceError(path, err)
	}

	sheets := make(map[string]models.SheetData, len(wb))
	for name, sheet := range wb {
		sheets[name] = parser.DumpSheet(name, sheet)
	}

	return &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   sheets,
	}, nil
}

func openFile(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newSourceError(path, ErrFileNotFound)
		}
		return nil, newSourceError(path, fmt.Errorf("%w: %w", ErrUnreadable, err))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, newSourceError(path, fmt.Errorf("%w: %w", ErrUnreadable, err))
	}
	return f, nil
}

// resolveSchema selects the built-in mapping for a nil schema. Its errors
// are mapping errors, not workbook errors.
func resolveSchema(schema *mapping.Schema) (*mapping.Schema, error) {
	if schema != nil {
		return schema, nil
	}
	return mapping.Default()
}

func extract(f *excelize.File, schema *mapping.Schema, opts Options) (models.Document, error) {
	wb := parser.IndexWorkbook(f)
	if err := checkIndexed(wb); err != nil {
		return nil, err
	}
	opts.logger().Debug("indexed workbook", zap.Int("sheets", len(wb)))

	if opts.Date1904 == nil {
		use1904 := workbookDate1904(f)
		opts.Date1904 = &use1904
	}
	return Assemble(wb, schema, opts), nil
}

func checkIndexed(wb models.Workbook) error {
	if len(wb) == 0 {
		return ErrNoSheets
	}
	return nil
}

func workbookDate1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
