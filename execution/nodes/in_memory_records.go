package nodes

import (
	"fmt"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

type InMemoryRecords struct {
	records []Record
}

func NewInMemoryRecords(records []Record) *InMemoryRecords {
	return &InMemoryRecords{
		records: records,
	}
}

func (r *InMemoryRecords) Run(ctx ExecutionContext, produce ProduceFn) error {
	for i := 0; i < len(r.records); i++ {
		recordValues := make([]tablefunc.Value, len(r.records[i].Values))
		copy(recordValues, r.records[i].Values)

		if err := produce(
			ProduceFromExecutionContext(ctx),
			NewRecord(recordValues),
		); err != nil {
			return fmt.Errorf("couldn't produce record: %w", err)
		}
	}
	return nil
}
