package execution

import (
	"fmt"

	"github.com/cube2222/tablefunc"
)

// ValidateRecord checks a produced record against the declared output
// fields of the producing function.
func ValidateRecord(fields []tablefunc.Field, record Record) error {
	if len(record.Values) != len(fields) {
		return &SchemaMismatchError{
			Column:   -1,
			Expected: fmt.Sprint(len(fields)),
			Actual:   fmt.Sprint(len(record.Values)),
		}
	}
	for i := range fields {
		if fields[i].Type.TypeID == tablefunc.TypeIDAny {
			continue
		}
		if record.Values[i].TypeID != fields[i].Type.TypeID {
			return &SchemaMismatchError{
				Column:   i,
				Expected: fields[i].Type.String(),
				Actual:   record.Values[i].TypeID.String(),
			}
		}
	}
	return nil
}

// ValidateProduce wraps produce so that every record passing through it
// is first checked against the declared output fields.
func ValidateProduce(fields []tablefunc.Field, produce ProduceFn) ProduceFn {
	return func(ctx ProduceContext, record Record) error {
		if err := ValidateRecord(fields, record); err != nil {
			return err
		}
		return produce(ctx, record)
	}
}
