package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/tablefunc"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invocation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`input:
  path: data.csv
  schema:
    - name: id
      type: int
    - name: value
      type: int
call:
  function: count_rows
  partitionBy: [id]
`), 0644))

	cfg, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, "count_rows", cfg.Call.Function)
	require.Equal(t, []string{"id"}, cfg.Call.PartitionBy)
	require.NotNil(t, cfg.Input)
	require.Equal(t, "data.csv", cfg.Input.Path)

	schema, err := cfg.Input.TableSchema()
	require.NoError(t, err)
	require.Equal(t, tablefunc.NewSchema([]tablefunc.Field{
		{Name: "id", Type: tablefunc.Int},
		{Name: "value", Type: tablefunc.Int},
	}), schema)
}

func TestReadRejectsMissingFunction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invocation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`input:
  path: data.csv
`), 0644))

	_, err := Read(path)
	require.Error(t, err)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		want    tablefunc.Type
		wantErr bool
	}{
		{name: "int", want: tablefunc.Int},
		{name: "Boolean", want: tablefunc.Boolean},
		{name: "STRING", want: tablefunc.String},
		{name: "", want: tablefunc.Any},
		{name: "decimal", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if tt.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}
