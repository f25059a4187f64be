package execution

import (
	"github.com/cube2222/tablefunc"
)

// Handler is the stateful lifecycle of a table-argument function. One
// handler instance is created per partition and is never shared: state
// accumulated in ProcessRow is visible to later calls on the same
// instance only.
//
// Initialize runs before the first row, ProcessRow runs once per row in
// input order, EndPartition runs exactly once after the last row. Every
// step may emit records through produce; records emitted by EndPartition
// always follow the records emitted for rows.
type Handler interface {
	Initialize(ctx ExecutionContext, produce ProduceFn) error
	ProcessRow(ctx ExecutionContext, row Record, produce ProduceFn) error
	EndPartition(ctx ExecutionContext, produce ProduceFn) error
}

// ScalarFunction is the collapsed lifecycle of a function without a
// table argument. It's invoked once per call with the evaluated scalar
// arguments and may emit any number of records.
type ScalarFunction func(ctx ExecutionContext, args []tablefunc.Value, produce ProduceFn) error
