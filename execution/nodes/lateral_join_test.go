package nodes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
)

func splitWords(ctx execution.ExecutionContext, args []tablefunc.Value, produce execution.ProduceFn) error {
	for _, word := range strings.Fields(args[0].Str) {
		if err := produce(execution.ProduceFromExecutionContext(ctx), execution.NewRecord([]tablefunc.Value{tablefunc.NewString(word)})); err != nil {
			return err
		}
	}
	return nil
}

var wordField = []tablefunc.Field{
	{Name: "word", Type: tablefunc.String},
}

func TestLateralJoin_OneOutputRowPerEmission(t *testing.T) {
	node := NewLateralJoin(
		NewInMemoryRecords([]execution.Record{
			execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(1), tablefunc.NewString("hello world")}),
			execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(2), tablefunc.NewString("single")}),
		}),
		splitWords,
		[]Selector{ColumnSelector(1)},
		wordField,
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Outer columns come first, function output columns after.
	require.Equal(t, 1, records[0].Values[0].Int)
	require.Equal(t, "hello world", records[0].Values[1].Str)
	require.Equal(t, "hello", records[0].Values[2].Str)
	require.Equal(t, "world", records[1].Values[2].Str)
	require.Equal(t, 2, records[2].Values[0].Int)
	require.Equal(t, "single", records[2].Values[2].Str)
}

func TestLateralJoin_EmptyEmissionDropsOuterRow(t *testing.T) {
	node := NewLateralJoin(
		NewInMemoryRecords([]execution.Record{
			execution.NewRecord([]tablefunc.Value{tablefunc.NewString("")}),
			execution.NewRecord([]tablefunc.Value{tablefunc.NewString("kept")}),
		}),
		splitWords,
		[]Selector{ColumnSelector(0)},
		wordField,
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "kept", records[0].Values[0].Str)
	require.Equal(t, "kept", records[0].Values[1].Str)
}

func TestLateralJoin_ConstantArgument(t *testing.T) {
	node := NewLateralJoin(
		NewInMemoryRecords([]execution.Record{
			execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(1)}),
			execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(2)}),
		}),
		splitWords,
		[]Selector{ConstantSelector(tablefunc.NewString("same text"))},
		wordField,
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, "same", records[0].Values[1].Str)
	require.Equal(t, "text", records[3].Values[1].Str)
}
