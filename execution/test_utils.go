package execution

import (
	"context"
)

// CollectRecords runs the node to completion and returns every record it
// produced, in production order.
func CollectRecords(ctx context.Context, node Node) ([]Record, error) {
	var out []Record
	if err := node.Run(NewExecutionContext(ctx), func(produceCtx ProduceContext, record Record) error {
		out = append(out, record)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
