package nodes

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
)

type countingHandler struct {
	count int
}

func (h *countingHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *countingHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	h.count++
	return nil
}

func (h *countingHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return produce(
		execution.ProduceFromExecutionContext(ctx),
		execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(h.count)}),
	)
}

type summingHandler struct {
	column int
	sum    int
	count  int
}

func (h *summingHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *summingHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	h.sum += row.Values[h.column].Int
	h.count++
	return nil
}

func (h *summingHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return produce(
		execution.ProduceFromExecutionContext(ctx),
		execution.NewRecord([]tablefunc.Value{
			tablefunc.NewInt(h.sum),
			tablefunc.NewInt(h.count),
		}),
	)
}

// echoingHandler emits every row's first value as it's processed and a
// trailing marker at end of partition.
type echoingHandler struct{}

func (h *echoingHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *echoingHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	return produce(execution.ProduceFromExecutionContext(ctx), execution.NewRecord([]tablefunc.Value{row.Values[0]}))
}

func (h *echoingHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return produce(execution.ProduceFromExecutionContext(ctx), execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(-1)}))
}

type failingHandler struct {
	failSetup    bool
	failOnRow    int
	failTeardown bool
	row          int
}

func (h *failingHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	if h.failSetup {
		return fmt.Errorf("setup failed")
	}
	return nil
}

func (h *failingHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	if h.row == h.failOnRow {
		return fmt.Errorf("row failed")
	}
	h.row++
	return nil
}

func (h *failingHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	if h.failTeardown {
		return fmt.Errorf("teardown failed")
	}
	return nil
}

type overflowingHandler struct{}

func (h *overflowingHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *overflowingHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	return produce(execution.ProduceFromExecutionContext(ctx), execution.NewRecord([]tablefunc.Value{
		tablefunc.NewInt(1),
		tablefunc.NewInt(2),
	}))
}

func (h *overflowingHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func intRows(values ...int) []execution.Record {
	out := make([]execution.Record, len(values))
	for i := range values {
		out[i] = execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(values[i])})
	}
	return out
}

var singleIntField = []tablefunc.Field{
	{Name: "row_count", Type: tablefunc.Int},
}

func TestPartitionedCall_SingleImplicitPartition(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(10, 20, 30)),
		nil,
		func() execution.Handler { return &countingHandler{} },
		singleIntField,
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 3, records[0].Values[0].Int)
}

func TestPartitionedCall_PartitionByUniqueKey(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(1, 2, 3)),
		[]Selector{ColumnSelector(0)},
		func() execution.Handler { return &countingHandler{} },
		singleIntField,
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := range records {
		require.Equal(t, 1, records[i].Values[0].Int)
	}
}

func TestPartitionedCall_ConstantKeyAggregatesEverything(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(10, 20, 30)),
		[]Selector{ConstantSelector(tablefunc.NewInt(1))},
		func() execution.Handler { return &summingHandler{column: 0} },
		[]tablefunc.Field{
			{Name: "total", Type: tablefunc.Int},
			{Name: "row_count", Type: tablefunc.Int},
		},
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 60, records[0].Values[0].Int)
	require.Equal(t, 3, records[0].Values[1].Int)
}

func TestPartitionedCall_PartitionIsolation(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords([]execution.Record{
			execution.NewRecord([]tablefunc.Value{tablefunc.NewString("a"), tablefunc.NewInt(10)}),
			execution.NewRecord([]tablefunc.Value{tablefunc.NewString("a"), tablefunc.NewInt(20)}),
			execution.NewRecord([]tablefunc.Value{tablefunc.NewString("b"), tablefunc.NewInt(5)}),
		}),
		[]Selector{ColumnSelector(0)},
		func() execution.Handler { return &summingHandler{column: 1} },
		[]tablefunc.Field{
			{Name: "total", Type: tablefunc.Int},
			{Name: "row_count", Type: tablefunc.Int},
		},
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Partitions are assembled in first-seen key order.
	require.Equal(t, 30, records[0].Values[0].Int)
	require.Equal(t, 2, records[0].Values[1].Int)
	require.Equal(t, 5, records[1].Values[0].Int)
	require.Equal(t, 1, records[1].Values[1].Int)
}

func TestPartitionedCall_TeardownOutputsFollowRowOutputs(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(7, 8)),
		nil,
		func() execution.Handler { return &echoingHandler{} },
		[]tablefunc.Field{{Name: "n", Type: tablefunc.Int}},
	)

	records, err := execution.CollectRecords(context.Background(), node)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, 7, records[0].Values[0].Int)
	require.Equal(t, 8, records[1].Values[0].Int)
	require.Equal(t, -1, records[2].Values[0].Int)
}

func TestPartitionedCall_EmptySource(t *testing.T) {
	t.Run("implicit partition still runs the handler", func(t *testing.T) {
		node := NewPartitionedCall(
			NewInMemoryRecords(nil),
			nil,
			func() execution.Handler { return &countingHandler{} },
			singleIntField,
		)

		records, err := execution.CollectRecords(context.Background(), node)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, 0, records[0].Values[0].Int)
	})

	t.Run("column key over no rows yields no partitions", func(t *testing.T) {
		node := NewPartitionedCall(
			NewInMemoryRecords(nil),
			[]Selector{ColumnSelector(0)},
			func() execution.Handler { return &countingHandler{} },
			singleIntField,
		)

		records, err := execution.CollectRecords(context.Background(), node)
		require.NoError(t, err)
		require.Len(t, records, 0)
	})
}

func TestPartitionedCall_SetupError(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(1)),
		nil,
		func() execution.Handler { return &failingHandler{failSetup: true} },
		singleIntField,
	)

	_, err := execution.CollectRecords(context.Background(), node)
	var setupErr *execution.HandlerSetupError
	require.True(t, errors.As(err, &setupErr))
}

func TestPartitionedCall_RowErrorCarriesOrdinal(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(10, 20, 30)),
		nil,
		func() execution.Handler { return &failingHandler{failOnRow: 1} },
		singleIntField,
	)

	_, err := execution.CollectRecords(context.Background(), node)
	var rowErr *execution.HandlerRowError
	require.True(t, errors.As(err, &rowErr))
	require.Equal(t, 1, rowErr.RowIndex)
}

func TestPartitionedCall_TeardownError(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(1)),
		nil,
		func() execution.Handler { return &failingHandler{failOnRow: -1, failTeardown: true} },
		singleIntField,
	)

	_, err := execution.CollectRecords(context.Background(), node)
	var teardownErr *execution.HandlerTeardownError
	require.True(t, errors.As(err, &teardownErr))
}

func TestPartitionedCall_FailingPartitionDoesntAffectOthers(t *testing.T) {
	// Rows keyed 1 and 2: the handler of partition 1 fails on its only
	// row, the handler of partition 2 succeeds. The invocation as a
	// whole fails, tagged with the failing partition's key.
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(1, 2)),
		[]Selector{ColumnSelector(0)},
		func() execution.Handler { return &failingHandler{failOnRow: 0} },
		singleIntField,
	)

	_, err := execution.CollectRecords(context.Background(), node)
	var rowErr *execution.HandlerRowError
	require.True(t, errors.As(err, &rowErr))
	require.Len(t, rowErr.PartitionKey, 1)
}

func TestPartitionedCall_SchemaMismatch(t *testing.T) {
	node := NewPartitionedCall(
		NewInMemoryRecords(intRows(1)),
		nil,
		func() execution.Handler { return &overflowingHandler{} },
		singleIntField,
	)

	_, err := execution.CollectRecords(context.Background(), node)
	var mismatchErr *execution.SchemaMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	require.Equal(t, -1, mismatchErr.Column)
}
