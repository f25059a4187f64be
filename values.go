package tablefunc

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"strings"
	"time"
)

var ZeroValue = Value{}

// Value is a single concrete cell value. The TypeID discriminates which
// of the payload fields carries the value.
type Value struct {
	TypeID   TypeID
	Int      int
	Float    float64
	Boolean  bool
	Str      string
	Time     time.Time
	Duration time.Duration
	List     []Value
}

func NewNull() Value {
	return Value{
		TypeID: TypeIDNull,
	}
}

func NewInt(value int) Value {
	return Value{
		TypeID: TypeIDInt,
		Int:    value,
	}
}

func NewFloat(value float64) Value {
	return Value{
		TypeID: TypeIDFloat,
		Float:  value,
	}
}

func NewBoolean(value bool) Value {
	return Value{
		TypeID:  TypeIDBoolean,
		Boolean: value,
	}
}

func NewString(value string) Value {
	return Value{
		TypeID: TypeIDString,
		Str:    value,
	}
}

func NewTime(value time.Time) Value {
	return Value{
		TypeID: TypeIDTime,
		Time:   value,
	}
}

func NewDuration(value time.Duration) Value {
	return Value{
		TypeID:   TypeIDDuration,
		Duration: value,
	}
}

func NewList(value []Value) Value {
	return Value{
		TypeID: TypeIDList,
		List:   value,
	}
}

func (value Value) Compare(other Value) int {
	if value.TypeID != other.TypeID {
		if value.TypeID < other.TypeID {
			return -1
		} else {
			return 1
		}
	}

	switch value.TypeID {
	case TypeIDNull:
		return 0

	case TypeIDInt:
		if value.Int < other.Int {
			return -1
		} else if value.Int > other.Int {
			return 1
		} else {
			return 0
		}

	case TypeIDFloat:
		if value.Float < other.Float {
			return -1
		} else if value.Float > other.Float {
			return 1
		} else {
			return 0
		}

	case TypeIDBoolean:
		if value.Boolean == other.Boolean {
			return 0
		} else if !value.Boolean {
			return -1
		} else {
			return 1
		}

	case TypeIDString:
		if value.Str < other.Str {
			return -1
		} else if value.Str > other.Str {
			return 1
		} else {
			return 0
		}

	case TypeIDTime:
		if value.Time.Before(other.Time) {
			return -1
		} else if value.Time.After(other.Time) {
			return 1
		} else {
			return 0
		}

	case TypeIDDuration:
		if value.Duration < other.Duration {
			return -1
		} else if value.Duration > other.Duration {
			return 1
		} else {
			return 0
		}

	case TypeIDList:
		maxLen := len(value.List)
		if len(other.List) > maxLen {
			maxLen = len(other.List)
		}

		for i := 0; i < maxLen; i++ {
			if i == len(value.List) {
				return -1
			} else if i == len(other.List) {
				return 1
			}

			if comp := value.List[i].Compare(other.List[i]); comp != 0 {
				return comp
			}
		}

		return 0

	default:
		panic("impossible, type switch bug")
	}
}

func (value Value) Equals(other Value) bool {
	return value.Compare(other) == 0
}

// Hash mixes the value into h. Values that are equal hash identically.
func (value Value) Hash(h hash.Hash64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(value.TypeID))
	h.Write(buf[:])

	switch value.TypeID {
	case TypeIDNull:
	case TypeIDInt:
		binary.LittleEndian.PutUint64(buf[:], uint64(value.Int))
		h.Write(buf[:])
	case TypeIDFloat:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(value.Float))
		h.Write(buf[:])
	case TypeIDBoolean:
		if value.Boolean {
			buf[0] = 1
		} else {
			buf[0] = 0
		}
		h.Write(buf[:1])
	case TypeIDString:
		h.Write([]byte(value.Str))
	case TypeIDTime:
		binary.LittleEndian.PutUint64(buf[:], uint64(value.Time.UnixNano()))
		h.Write(buf[:])
	case TypeIDDuration:
		binary.LittleEndian.PutUint64(buf[:], uint64(value.Duration))
		h.Write(buf[:])
	case TypeIDList:
		for i := range value.List {
			value.List[i].Hash(h)
		}
	default:
		panic("impossible, type switch bug")
	}
}

func (value Value) String() string {
	builder := &strings.Builder{}
	value.append(builder)
	return builder.String()
}

func (value Value) append(builder *strings.Builder) {
	switch value.TypeID {
	case TypeIDNull:
		builder.WriteString("null")

	case TypeIDInt:
		builder.WriteString(fmt.Sprint(value.Int))

	case TypeIDFloat:
		builder.WriteString(fmt.Sprint(value.Float))

	case TypeIDBoolean:
		builder.WriteString(fmt.Sprint(value.Boolean))

	case TypeIDString:
		builder.WriteString(value.Str)

	case TypeIDTime:
		builder.WriteString(value.Time.Format(time.RFC3339Nano))

	case TypeIDDuration:
		builder.WriteString(value.Duration.String())

	case TypeIDList:
		builder.WriteString("[")
		for i := range value.List {
			if i > 0 {
				builder.WriteString(", ")
			}
			value.List[i].append(builder)
		}
		builder.WriteString("]")

	default:
		panic("impossible, type switch bug")
	}
}

// ToRawGoValue converts the value into plain Go types, mostly for
// interoperability with encoders.
func (value Value) ToRawGoValue() interface{} {
	switch value.TypeID {
	case TypeIDNull:
		return nil
	case TypeIDInt:
		return value.Int
	case TypeIDFloat:
		return value.Float
	case TypeIDBoolean:
		return value.Boolean
	case TypeIDString:
		return value.Str
	case TypeIDTime:
		return value.Time
	case TypeIDDuration:
		return value.Duration
	case TypeIDList:
		out := make([]interface{}, len(value.List))
		for i := range value.List {
			out[i] = value.List[i].ToRawGoValue()
		}
		return out
	default:
		panic("impossible, type switch bug")
	}
}
