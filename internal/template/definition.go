// Package template loads and validates spreadsheet template
// definitions: the declared contract of variable ranges, fixed
// regions, and the blank reference workbook for one form layout.
package template

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klytics/formkit/internal/cellref"
)

// Variable value types.
const (
	TypeNumber = "number"
	TypeString = "string"
)

// Definition describes one spreadsheet form layout.
type Definition struct {
	Name        string     `yaml:"name,omitempty" json:"name,omitempty"`
	BlankFile   string     `yaml:"blank_file" json:"blankFile"`
	Variables   []Variable `yaml:"variables" json:"variables"`
	FixedValues []Fixed    `yaml:"fixed_values,omitempty" json:"fixedValues,omitempty"`
}

// Variable declares one extractable range.
type Variable struct {
	Name  string `yaml:"name" json:"name"`
	Sheet string `yaml:"sheet" json:"sheet"`
	Range string `yaml:"range" json:"range"`
	Type  string `yaml:"type,omitempty" json:"type,omitempty"`
}

// EffectiveType returns the declared type, defaulting to number.
func (v Variable) EffectiveType() string {
	if v.Type == "" {
		return TypeNumber
	}
	return v.Type
}

// Fixed declares the regions of one sheet that must stay identical to
// the blank reference.
type Fixed struct {
	Sheet  string   `yaml:"sheet" json:"sheet"`
	Ranges []string `yaml:"ranges" json:"ranges"`
}

// Load reads and validates a template definition YAML file. A relative
// blank_file path is resolved against the definition file's directory.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template definition not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read template definition %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if def.BlankFile != "" && !filepath.IsAbs(def.BlankFile) {
		def.BlankFile = filepath.Join(filepath.Dir(path), def.BlankFile)
	}

	return def, nil
}

// Parse parses a definition from YAML bytes and validates it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("invalid template definition YAML: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks the structural invariants of a definition: a blank
// reference is declared, variables are present with unique names,
// every range string parses, and every declared type is known.
func (d *Definition) Validate() error {
	if d.BlankFile == "" {
		return fmt.Errorf("template definition is missing a 'blank_file' field")
	}

	if len(d.Variables) == 0 {
		return fmt.Errorf("template definition declares no variables")
	}

	seen := make(map[string]bool)
	for i, v := range d.Variables {
		if v.Name == "" {
			return fmt.Errorf("variable %d is missing a 'name' field", i+1)
		}
		if seen[v.Name] {
			return fmt.Errorf("duplicate variable name %q — each variable must be unique within the template", v.Name)
		}
		seen[v.Name] = true

		if v.Sheet == "" {
			return fmt.Errorf("variable %q is missing a 'sheet' field", v.Name)
		}
		if _, _, err := cellref.RangeToPoints(v.Range); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
		switch v.EffectiveType() {
		case TypeNumber, TypeString:
		default:
			return fmt.Errorf("variable %q declares unknown type %q — expected %q or %q", v.Name, v.Type, TypeNumber, TypeString)
		}
	}

	for _, fx := range d.FixedValues {
		if fx.Sheet == "" {
			return fmt.Errorf("fixed_values entry is missing a 'sheet' field")
		}
		for _, rng := range fx.Ranges {
			if _, _, err := cellref.RangeToPoints(rng); err != nil {
				return fmt.Errorf("fixed range on sheet %q: %w", fx.Sheet, err)
			}
		}
	}

	return nil
}

// Resolve locates a definition file. An existing path wins; otherwise
// the name is looked up in the template library dir, with .yaml
// appended when no extension is given.
func Resolve(path, dir string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	name := path
	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	if candidate := filepath.Join(dir, name); dir != "" {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// SheetNames returns the union of every sheet referenced by variables
// and fixed regions, in first-appearance order.
func (d *Definition) SheetNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, v := range d.Variables {
		add(v.Sheet)
	}
	for _, fx := range d.FixedValues {
		add(fx.Sheet)
	}
	return names
}
