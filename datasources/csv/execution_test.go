package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
)

func TestDatasource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name,score\n1,alice,1.5\n2,bob,2.25\n"), 0644))

	node := NewDatasource(path, []tablefunc.Field{
		{Name: "id", Type: tablefunc.Int},
		{Name: "name", Type: tablefunc.String},
		{Name: "score", Type: tablefunc.Float},
	})

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 1, records[0].Values[0].Int)
	require.Equal(t, "alice", records[0].Values[1].Str)
	require.Equal(t, 2.25, records[1].Values[2].Float)
}

func TestDatasourceTypeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\nnot_a_number\n"), 0644))

	node := NewDatasource(path, []tablefunc.Field{
		{Name: "id", Type: tablefunc.Int},
	})

	_, err := execution.CollectRecords(context.Background(), node)
	require.Error(t, err)
}

func TestDatasourceColumnCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,alice\n"), 0644))

	node := NewDatasource(path, []tablefunc.Field{
		{Name: "id", Type: tablefunc.Int},
	})

	_, err := execution.CollectRecords(context.Background(), node)
	require.Error(t, err)
}
