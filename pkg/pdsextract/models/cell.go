// Package models defines data structures for schema-driven form extraction.
package models

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value carries.
type Kind uint8

const (
	// KindEmpty marks an absent cell.
	KindEmpty Kind = iota
	// KindString marks a text cell, including numbers stored as text.
	KindString
	// KindNumber marks a numeric cell, including date serials.
	KindNumber
	// KindBool marks a boolean cell.
	KindBool
)

// Value is a raw cell value captured at the indexing boundary.
// Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

// StringValue returns a text Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// NumberValue returns a numeric Value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty reports whether v is the empty variant.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Text renders v the way a spreadsheet would display it unformatted.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return ""
}

// MarshalJSON encodes v as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	}
	return []byte("null"), nil
}

// CellRow represents a single indexed row for sheet dumps.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps upper-case column letters to cell values.
	C map[string]Value `json:"c"`
}
