// Package schema loads keyspace descriptions from YAML. It sits at the
// boundary with the schema catalog: embedders and tests use it to produce
// the column metadata the binder and projector consume.
package schema

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/grpcql/grpcql/types"
)

type Keyspace struct {
	Name   string   `yaml:"keyspace" validate:"required"`
	Tables []*Table `yaml:"tables" validate:"required,dive"`
}

type Table struct {
	Name    string       `yaml:"name" validate:"required"`
	Columns []*ColumnDef `yaml:"columns" validate:"required,dive"`
}

// ColumnDef pairs a column name with a compact type string such as "int",
// "list<text>" or "map<text, frozen<int>>".
type ColumnDef struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type" validate:"required,coltype"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterTypeValidation(v)
	return v
}

func Load(r io.Reader) (*Keyspace, error) {
	var keyspace Keyspace
	if err := yaml.NewDecoder(r).Decode(&keyspace); err != nil {
		return nil, fmt.Errorf("failed to decode keyspace: %w", err)
	}
	if err := validate.Struct(&keyspace); err != nil {
		return nil, fmt.Errorf("invalid keyspace description: %w", err)
	}
	return &keyspace, nil
}

func LoadFile(path string) (*Keyspace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	keyspace, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return keyspace, nil
}

// Table returns the named table, or nil.
func (k *Keyspace) Table(name string) *Table {
	for _, t := range k.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Metadata resolves the table's column type strings into prepared-statement
// metadata.
func (t *Table) Metadata() (types.PreparedMetadata, error) {
	columns := make([]types.Column, 0, len(t.Columns))
	for _, def := range t.Columns {
		typ, err := ParseType(def.Type)
		if err != nil {
			return types.PreparedMetadata{}, fmt.Errorf("column '%s': %w", def.Name, err)
		}
		columns = append(columns, types.NewColumn(def.Name, typ))
	}
	return types.PreparedMetadata{Columns: columns}, nil
}
