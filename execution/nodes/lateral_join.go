package nodes

import (
	"fmt"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

// LateralJoin invokes the function once per source row, with arguments
// projected from that row, and pairs the row with every record the call
// emits. A call that emits nothing contributes no rows: inner-join
// semantics.
type LateralJoin struct {
	source       Node
	function     ScalarFunction
	args         []Selector
	outputFields []tablefunc.Field
}

func NewLateralJoin(source Node, function ScalarFunction, args []Selector, outputFields []tablefunc.Field) *LateralJoin {
	return &LateralJoin{
		source:       source,
		function:     function,
		args:         args,
		outputFields: outputFields,
	}
}

func (l *LateralJoin) Run(ctx ExecutionContext, produce ProduceFn) error {
	if err := l.source.Run(ctx, func(produceCtx ProduceContext, sourceRecord Record) error {
		args := make([]tablefunc.Value, len(l.args))
		for i := range l.args {
			args[i] = l.args[i].Select(sourceRecord)
		}

		innerProduce := ValidateProduce(l.outputFields, func(produceCtx ProduceContext, functionRecord Record) error {
			outputValues := make([]tablefunc.Value, len(sourceRecord.Values)+len(functionRecord.Values))

			copy(outputValues, sourceRecord.Values)
			copy(outputValues[len(sourceRecord.Values):], functionRecord.Values)

			if err := produce(produceCtx, NewRecord(outputValues)); err != nil {
				return fmt.Errorf("couldn't produce: %w", err)
			}

			return nil
		})

		if err := l.function(ctx, args, innerProduce); err != nil {
			return fmt.Errorf("couldn't run lateral function: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("couldn't run source: %w", err)
	}
	return nil
}
