package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/mapping"
	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// DateLayout is the output format of date fields.
const DateLayout = "2006-01-02"

// maxSerial is 9999-12-31, the last date a spreadsheet can represent.
const maxSerial = 2958465

// affirmative holds the lower-cased tokens read as a "yes" answer.
var affirmative = map[string]struct{}{
	"y":    {},
	"yes":  {},
	"true": {},
	"1":    {},
	"x":    {},
	"✓":    {},
	"✔":    {},
}

// Caster converts raw cell values into typed document values.
type Caster struct {
	// Date1904 selects the 1904 date system for serial numbers.
	Date1904 bool
	// Logger receives debug entries for values that could not be cast.
	Logger *zap.Logger
}

// Cast converts v to t. It returns nil for blank input and for dates that
// cannot be parsed; booleans never return nil. Dates are rendered with
// DateLayout and numerics are kept as strings.
func (c Caster) Cast(v models.Value, t mapping.FieldType) any {
	if v.Kind == models.KindString {
		v.Str = strings.TrimSpace(v.Str)
		if v.Str == "" {
			v = models.Value{}
		}
	}

	switch t {
	case mapping.TypeBoolean:
		return castBool(v)
	case mapping.TypeDate:
		return c.castDate(v)
	case mapping.TypeNumeric:
		return castNumeric(v)
	default:
		return castString(v)
	}
}

// CastString is Cast with TypeString, returning "" for blank input.
func (c Caster) CastString(v models.Value) string {
	s, _ := c.Cast(v, mapping.TypeString).(string)
	return s
}

func castBool(v models.Value) bool {
	switch v.Kind {
	case models.KindBool:
		return v.Bool
	case models.KindNumber:
		return v.Num != 0
	case models.KindString:
		token := strings.ToLower(strings.TrimSpace(norm.NFKC.String(v.Str)))
		_, ok := affirmative[token]
		return ok
	}
	return false
}

func (c Caster) castDate(v models.Value) any {
	switch v.Kind {
	case models.KindNumber:
		return c.serialDate(v.Num)
	case models.KindString:
		if n, err := strconv.ParseFloat(v.Str, 64); err == nil {
			return c.serialDate(n)
		}
		t, err := dateparse.ParseIn(v.Str, time.UTC)
		if err != nil {
			c.logger().Debug("unparsable date", zap.String("value", v.Str), zap.Error(err))
			return nil
		}
		return t.Format(DateLayout)
	}
	return nil
}

func (c Caster) serialDate(n float64) any {
	if n < 1 || n > maxSerial {
		c.logger().Debug("date serial out of range", zap.Float64("value", n))
		return nil
	}
	t, err := excelize.ExcelDateToTime(n, c.Date1904)
	if err != nil {
		c.logger().Debug("unconvertible date serial", zap.Float64("value", n), zap.Error(err))
		return nil
	}
	return t.Format(DateLayout)
}

func castNumeric(v models.Value) any {
	switch v.Kind {
	case models.KindString:
		return v.Str
	case models.KindNumber:
		return formatNumber(v.Num)
	case models.KindBool:
		if v.Bool {
			return "1"
		}
		return "0"
	}
	return nil
}

func castString(v models.Value) any {
	if v.IsEmpty() {
		return nil
	}
	return v.Text()
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (c Caster) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// isBlank reports whether v is absent or whitespace-only text.
func isBlank(v models.Value) bool {
	switch v.Kind {
	case models.KindEmpty:
		return true
	case models.KindString:
		return strings.TrimSpace(v.Str) == ""
	}
	return false
}

// isEmptyResult reports whether a cast result carries no data.
func isEmptyResult(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
