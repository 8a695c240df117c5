// Package pdsextract extracts CS Form 212 (Personal Data Sheet) workbooks
// into structured documents, driven by a declarative mapping schema.
package pdsextract

import (
	"go.uber.org/zap"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
)

// Options configures extraction behavior.
type Options struct {
	// Logger receives debug entries. If nil, nothing is logged.
	Logger *zap.Logger
	// DefaultSheet overrides the schema's default sheet when set.
	DefaultSheet string
	// Date1904 selects the 1904 date system for date serials.
	// If nil, it is read from the workbook properties.
	Date1904 *bool
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldUse1904 returns whether date serials use the 1904 date system.
func (o Options) ShouldUse1904() bool {
	return o.Date1904 != nil && *o.Date1904
}

func (o Options) defaultSheet(schema *mapping.Schema) string {
	if o.DefaultSheet != "" {
		return o.DefaultSheet
	}
	if schema.DefaultSheet != "" {
		return schema.DefaultSheet
	}
	return mapping.DefaultSheetName
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
