package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawSchema mirrors the YAML document before compilation.
type rawSchema struct {
	DefaultSheet     string               `yaml:"default_sheet"`
	Fields           map[string]rawField  `yaml:"fields"`
	FamilyBackground []rawFamily          `yaml:"family_background"`
	Tables           map[string]rawTable  `yaml:"tables"`
	References       *rawTable            `yaml:"references"`
	OtherInformation *rawOtherInfo        `yaml:"other_information"`
	Questionnaire    map[int]rawQuestion  `yaml:"questionnaire"`
}

// rawField is a single-field definition. A bare scalar is shorthand for
// {cell: <scalar>}.
type rawField struct {
	Sheet string `yaml:"sheet"`
	Cell  string `yaml:"cell"`
	Type  string `yaml:"type"`
}

// UnmarshalYAML accepts either a cell reference or a mapping.
func (f *rawField) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&f.Cell)
	case yaml.MappingNode:
		type plain rawField
		return node.Decode((*plain)(f))
	default:
		return fmt.Errorf("line %d: expected cell reference or mapping", node.Line)
	}
}

// stringList accepts either a single string or a sequence of strings.
type stringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		if str != "" {
			*s = stringList{str}
		} else {
			*s = stringList{}
		}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		*s = arr
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list", node.Line)
	}
}

// rawColumn is a table column definition: a column letter, a list of
// fallback letters, or a mapping with an explicit type.
type rawColumn struct {
	Column  stringList `yaml:"column"`
	Columns stringList `yaml:"columns"`
	Type    string     `yaml:"type"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *rawColumn) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.SequenceNode:
		return node.Decode(&c.Columns)
	case yaml.MappingNode:
		type plain rawColumn
		return node.Decode((*plain)(c))
	default:
		return fmt.Errorf("line %d: expected column letters or mapping", node.Line)
	}
}

func (c rawColumn) letters() []string {
	return append(append([]string{}, c.Column...), c.Columns...)
}

type rawTable struct {
	Sheet    string               `yaml:"sheet"`
	StartRow int                  `yaml:"start_row"`
	EndRow   int                  `yaml:"end_row"`
	Columns  map[string]rawColumn `yaml:"columns"`
	Required []string             `yaml:"required"`
}

type rawFamily struct {
	Relation string              `yaml:"relation"`
	Sheet    string              `yaml:"sheet"`
	Cells    map[string]rawField `yaml:"cells"`
}

// rawRange is a column range. A bare scalar is shorthand for "A42:A48".
type rawRange struct {
	Ref      string `yaml:"-"`
	Column   string `yaml:"column"`
	StartRow int    `yaml:"start_row"`
	EndRow   int    `yaml:"end_row"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *rawRange) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.Ref)
	case yaml.MappingNode:
		type plain rawRange
		return node.Decode((*plain)(r))
	default:
		return fmt.Errorf("line %d: expected range or mapping", node.Line)
	}
}

// rawOtherInfo holds one shared sheet key next to the named ranges.
type rawOtherInfo struct {
	Sheet  string
	Fields map[string]rawRange
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *rawOtherInfo) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: other_information must be a mapping", node.Line)
	}
	o.Fields = make(map[string]rawRange)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "sheet" {
			if err := value.Decode(&o.Sheet); err != nil {
				return err
			}
			continue
		}
		var r rawRange
		if err := value.Decode(&r); err != nil {
			return err
		}
		o.Fields[key.Value] = r
	}
	return nil
}

type rawQuestion struct {
	Sheet       string `yaml:"sheet"`
	AnswerCell  string `yaml:"answer_cell"`
	DetailsCell string `yaml:"details_cell"`
}
