// Package output serializes extracted documents and sheet dumps as JSON.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/ukaji3/pdsextract-go/pkg/pdsextract/models"
)

// ToJSON encodes v with sorted map keys and without HTML escaping, so the
// same document always encodes to the same bytes.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DocumentToJSON encodes an extracted document.
func DocumentToJSON(doc models.Document, pretty bool) ([]byte, error) {
	return ToJSON(doc, pretty)
}

// SheetToJSON encodes one sheet dump.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}
