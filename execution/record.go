package execution

import (
	"strings"

	"github.com/cube2222/tablefunc"
)

// Record is a single row of values, positionally matching a schema.
type Record struct {
	Values []tablefunc.Value
}

func NewRecord(values []tablefunc.Value) Record {
	return Record{
		Values: values,
	}
}

func (record Record) String() string {
	builder := &strings.Builder{}
	builder.WriteString("{")
	for i := range record.Values {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(record.Values[i].String())
	}
	builder.WriteString("}")
	return builder.String()
}
