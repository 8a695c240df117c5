// Package mapping loads the declarative configuration that tells the
// extractor which cells of a workbook become which document fields.
//
// A mapping is YAML, compiled once into a read-only Schema of typed
// strategies:
//
//	default_sheet: C1
//	fields:
//	  surname: D10                       # bare reference, type string
//	  date_of_birth: {cell: D13, type: date}
//	family_background:
//	  - relation: Father
//	    cells: {surname: D43, first_name: D44}
//	tables:
//	  children:
//	    start_row: 37
//	    end_row: 48
//	    columns:
//	      fullname: I
//	      date_of_birth: {columns: [M, N], type: date}
//	    required: [fullname]
//	references: {sheet: C4, start_row: 52, end_row: 54, columns: {...}}
//	other_information:
//	  sheet: C3
//	  special_skills: "A42:A48"
//	questionnaire:
//	  1: {sheet: C4, answer_cell: G6, details_cell: L8}
//
// Types are string (default), date, numeric and boolean. Cell references
// may carry "$" anchors, lower-case letters and a "Sheet!" qualifier.
//
// Configuration mistakes (unknown types, malformed references, unknown
// table sections, required fields that are not columns) are rejected when
// the mapping is loaded. Empty or inverted row ranges are accepted and
// simply produce no records.
package mapping
