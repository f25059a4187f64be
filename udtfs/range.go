package udtfs

import (
	"fmt"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/registry"
)

// GenerateRange yields one row per integer from start to stop inclusive,
// with its square and cube. An empty range (start > stop) yields no rows.
var GenerateRange = &registry.Definition{
	Name: "generate_range",
	Parameters: []registry.Parameter{
		{Name: "start", Type: tablefunc.Int},
		{Name: "stop", Type: tablefunc.Int},
	},
	Output: tablefunc.NewSchema([]tablefunc.Field{
		{Name: "n", Type: tablefunc.Int},
		{Name: "n_squared", Type: tablefunc.Int},
		{Name: "n_cubed", Type: tablefunc.Int},
	}),
	Scalar: func(ctx execution.ExecutionContext, args []tablefunc.Value, produce execution.ProduceFn) error {
		for n := args[0].Int; n <= args[1].Int; n++ {
			if err := produce(
				execution.ProduceFromExecutionContext(ctx),
				execution.NewRecord([]tablefunc.Value{
					tablefunc.NewInt(n),
					tablefunc.NewInt(n * n),
					tablefunc.NewInt(n * n * n),
				}),
			); err != nil {
				return fmt.Errorf("couldn't produce record: %w", err)
			}
		}
		return nil
	},
}
