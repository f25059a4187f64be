package execution

import (
	"fmt"
)

// HandlerSetupError reports a failure of a handler's Initialize step.
// The partition produced no records.
type HandlerSetupError struct {
	PartitionKey GroupKey
	Err          error
}

func (e *HandlerSetupError) Error() string {
	return fmt.Sprintf("handler setup failed for partition %s: %s", e.PartitionKey, e.Err)
}

func (e *HandlerSetupError) Unwrap() error {
	return e.Err
}

// HandlerRowError reports a failure of the per-row step. RowIndex is the
// zero-based ordinal of the failing row within its partition.
type HandlerRowError struct {
	PartitionKey GroupKey
	RowIndex     int
	Err          error
}

func (e *HandlerRowError) Error() string {
	return fmt.Sprintf("handler failed on row %d of partition %s: %s", e.RowIndex, e.PartitionKey, e.Err)
}

func (e *HandlerRowError) Unwrap() error {
	return e.Err
}

// HandlerTeardownError reports a failure of the EndPartition step.
type HandlerTeardownError struct {
	PartitionKey GroupKey
	Err          error
}

func (e *HandlerTeardownError) Error() string {
	return fmt.Sprintf("handler teardown failed for partition %s: %s", e.PartitionKey, e.Err)
}

func (e *HandlerTeardownError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports a produced record that doesn't conform to
// the function's declared output schema. Column is -1 when the record's
// arity itself is wrong.
type SchemaMismatchError struct {
	Column   int
	Expected string
	Actual   string
}

func (e *SchemaMismatchError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("produced record has %s columns, declared output schema has %s", e.Actual, e.Expected)
	}
	return fmt.Sprintf("produced record column %d has type %s, declared type is %s", e.Column, e.Actual, e.Expected)
}
