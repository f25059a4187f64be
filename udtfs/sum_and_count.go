package udtfs

import (
	"fmt"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/registry"
)

// SumAndCount sums the first column of each partition's rows and emits
// (total, row_count) at end of partition. The first column must be Int.
var SumAndCount = &registry.Definition{
	Name:          "sum_and_count",
	TableArgument: true,
	Output: tablefunc.NewSchema([]tablefunc.Field{
		{Name: "total", Type: tablefunc.Int},
		{Name: "row_count", Type: tablefunc.Int},
	}),
	NewHandler: func() execution.Handler {
		return &sumAndCountHandler{}
	},
}

type sumAndCountHandler struct {
	sum   int
	count int
}

func (h *sumAndCountHandler) Initialize(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return nil
}

func (h *sumAndCountHandler) ProcessRow(ctx execution.ExecutionContext, row execution.Record, produce execution.ProduceFn) error {
	if len(row.Values) == 0 {
		return fmt.Errorf("row has no columns")
	}
	if row.Values[0].TypeID != tablefunc.TypeIDInt {
		return fmt.Errorf("first column has type %s, expected Int", row.Values[0].TypeID)
	}
	h.sum += row.Values[0].Int
	h.count++
	return nil
}

func (h *sumAndCountHandler) EndPartition(ctx execution.ExecutionContext, produce execution.ProduceFn) error {
	return produce(
		execution.ProduceFromExecutionContext(ctx),
		execution.NewRecord([]tablefunc.Value{
			tablefunc.NewInt(h.sum),
			tablefunc.NewInt(h.count),
		}),
	)
}
