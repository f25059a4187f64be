package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cube2222/tablefunc"
)

// FieldConfig declares one input column.
type FieldConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// InputConfig declares the table argument: a csv or json file and its
// schema. Format defaults from the path's extension.
type InputConfig struct {
	Path   string        `yaml:"path"`
	Format string        `yaml:"format"`
	Schema []FieldConfig `yaml:"schema"`
}

// ArgumentConfig is one scalar argument. Exactly one field should be
// set; column references are only valid in lateral calls.
type ArgumentConfig struct {
	Int    *int     `yaml:"int"`
	Float  *float64 `yaml:"float"`
	String *string  `yaml:"string"`
	Bool   *bool    `yaml:"bool"`
	Column *string  `yaml:"column"`
}

// CallConfig describes the call site. PartitionBy entries are column
// names; an entry that parses as an integer is a constant key part, the
// documented way to aggregate everything into one partition.
type CallConfig struct {
	Function    string           `yaml:"function"`
	Arguments   []ArgumentConfig `yaml:"arguments"`
	PartitionBy []string         `yaml:"partitionBy"`
	Lateral     bool             `yaml:"lateral"`
}

type Config struct {
	Input *InputConfig `yaml:"input"`
	Call  CallConfig   `yaml:"call"`
}

func Read(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open file")
	}
	defer f.Close()

	var config Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return nil, errors.Wrap(err, "couldn't decode yaml configuration")
	}

	if config.Call.Function == "" {
		return nil, errors.New("configuration names no function to call")
	}

	return &config, nil
}

// ParseType maps a configured type name to a runtime type.
func ParseType(name string) (tablefunc.Type, error) {
	switch strings.ToLower(name) {
	case "int":
		return tablefunc.Int, nil
	case "float":
		return tablefunc.Float, nil
	case "boolean", "bool":
		return tablefunc.Boolean, nil
	case "string":
		return tablefunc.String, nil
	case "time":
		return tablefunc.Time, nil
	case "duration":
		return tablefunc.Duration, nil
	case "any", "":
		return tablefunc.Any, nil
	default:
		return tablefunc.Type{}, errors.Errorf("unknown type '%s'", name)
	}
}

// TableSchema converts the declared input columns to a runtime schema.
func (input *InputConfig) TableSchema() (tablefunc.Schema, error) {
	fields := make([]tablefunc.Field, len(input.Schema))
	for i := range input.Schema {
		if input.Schema[i].Name == "" {
			return tablefunc.Schema{}, errors.Errorf("input schema column %d has no name", i)
		}
		t, err := ParseType(input.Schema[i].Type)
		if err != nil {
			return tablefunc.Schema{}, errors.Wrapf(err, "couldn't parse type of input column '%s'", input.Schema[i].Name)
		}
		fields[i] = tablefunc.Field{
			Name: input.Schema[i].Name,
			Type: t,
		}
	}
	return tablefunc.NewSchema(fields), nil
}
