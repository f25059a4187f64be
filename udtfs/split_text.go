package udtfs

import (
	"fmt"
	"strings"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/registry"
)

// SplitText emits one row per whitespace-separated word of the input,
// with the word's zero-based position. Blank input yields no rows.
var SplitText = &registry.Definition{
	Name: "split_text",
	Parameters: []registry.Parameter{
		{Name: "text", Type: tablefunc.String},
	},
	Output: tablefunc.NewSchema([]tablefunc.Field{
		{Name: "position", Type: tablefunc.Int},
		{Name: "word", Type: tablefunc.String},
	}),
	Scalar: func(ctx execution.ExecutionContext, args []tablefunc.Value, produce execution.ProduceFn) error {
		for i, word := range strings.Fields(args[0].Str) {
			if err := produce(
				execution.ProduceFromExecutionContext(ctx),
				execution.NewRecord([]tablefunc.Value{
					tablefunc.NewInt(i),
					tablefunc.NewString(word),
				}),
			); err != nil {
				return fmt.Errorf("couldn't produce record: %w", err)
			}
		}
		return nil
	},
}
