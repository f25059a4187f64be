package nodes

import (
	"fmt"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

// ScalarCall invokes a function without a table argument. The lifecycle
// collapses to a single step: the function runs once with the evaluated
// arguments and its lazily emitted records are passed through in
// emission order.
type ScalarCall struct {
	function     ScalarFunction
	args         []tablefunc.Value
	outputFields []tablefunc.Field
}

func NewScalarCall(function ScalarFunction, args []tablefunc.Value, outputFields []tablefunc.Field) *ScalarCall {
	return &ScalarCall{
		function:     function,
		args:         args,
		outputFields: outputFields,
	}
}

func (s *ScalarCall) Run(ctx ExecutionContext, produce ProduceFn) error {
	if err := s.function(ctx, s.args, ValidateProduce(s.outputFields, produce)); err != nil {
		return fmt.Errorf("couldn't run scalar function: %w", err)
	}
	return nil
}
