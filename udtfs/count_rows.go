package udtfs

import (
	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/registry"
)

// CountRows counts the rows of each partition and emits the count as a
// single row at end of partition.
var CountRows = &registry.Definition{
	Name:          "count_rows",
	TableArgument: true,
	Output: tablefunc.NewSchema([]tablefunc.Field{
		{Name: "row_count", Type: tablefunc.Int},
	}),
	NewHandler: func() execution.Handler {
		return &countRowsHandler{}
	},
}

type countRowsHandler struct {
	count int
}

func (h *countRowsHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *countRowsHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	h.count++
	return nil
}

func (h *countRowsHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return produce(
		execution.ProduceFromExecutionContext(ctx),
		execution.NewRecord([]tablefunc.Value{tablefunc.NewInt(h.count)}),
	)
}
