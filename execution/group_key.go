package execution

import (
	"hash/fnv"
	"strings"

	"github.com/cube2222/tablefunc"
)

// GroupKey identifies one partition. Rows with equal keys belong to the
// same partition.
type GroupKey []tablefunc.Value

func (key GroupKey) Equals(other GroupKey) bool {
	if len(key) != len(other) {
		return false
	}
	for i := range key {
		if key[i].Compare(other[i]) != 0 {
			return false
		}
	}
	return true
}

func (key GroupKey) HashSum() uint64 {
	h := fnv.New64()
	for _, value := range key {
		value.Hash(h)
	}
	return h.Sum64()
}

func (key GroupKey) String() string {
	builder := &strings.Builder{}
	builder.WriteString("(")
	for i := range key {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(key[i].String())
	}
	builder.WriteString(")")
	return builder.String()
}
