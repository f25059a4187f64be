package nodes

import (
	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
)

// Selector picks one input value for a call: either a source column by
// index, or a constant.
type Selector struct {
	ColumnIndex int
	Constant    *tablefunc.Value
}

func ColumnSelector(index int) Selector {
	return Selector{
		ColumnIndex: index,
	}
}

func ConstantSelector(value tablefunc.Value) Selector {
	return Selector{
		ColumnIndex: -1,
		Constant:    &value,
	}
}

func (s Selector) Select(record execution.Record) tablefunc.Value {
	if s.Constant != nil {
		return *s.Constant
	}
	return record.Values[s.ColumnIndex]
}
