package formats

import (
	"fmt"
	"io"
	"time"

	"github.com/valyala/fastjson"

	"github.com/cube2222/tablefunc"
)

type JSONFormatter struct {
	buf    []byte
	arena  *fastjson.Arena
	w      io.Writer
	fields []tablefunc.Field
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetSchema(schema tablefunc.Schema) {
	t.fields = schema.Fields
}

func (t *JSONFormatter) Write(values []tablefunc.Value) error {
	obj := t.arena.NewObject()
	for i := range t.fields {
		obj.Set(t.fields[i].Name, valueToJSON(t.arena, values[i]))
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	if _, err := t.w.Write(t.buf); err != nil {
		return fmt.Errorf("couldn't write row: %w", err)
	}
	t.buf = t.buf[:0]
	t.arena.Reset()
	return nil
}

func valueToJSON(arena *fastjson.Arena, value tablefunc.Value) *fastjson.Value {
	switch value.TypeID {
	case tablefunc.TypeIDNull:
		return arena.NewNull()
	case tablefunc.TypeIDInt:
		return arena.NewNumberInt(value.Int)
	case tablefunc.TypeIDFloat:
		return arena.NewNumberFloat64(value.Float)
	case tablefunc.TypeIDBoolean:
		if value.Boolean {
			return arena.NewTrue()
		} else {
			return arena.NewFalse()
		}
	case tablefunc.TypeIDString:
		return arena.NewString(value.Str)
	case tablefunc.TypeIDTime:
		return arena.NewString(value.Time.Format(time.RFC3339))
	case tablefunc.TypeIDDuration:
		return arena.NewString(value.Duration.String())
	case tablefunc.TypeIDList:
		arr := arena.NewArray()
		for i := range value.List {
			arr.SetArrayItem(i, valueToJSON(arena, value.List[i]))
		}
		return arr
	default:
		panic(fmt.Sprintf("invalid value type to print: %s", value.TypeID.String()))
	}
}

func (t *JSONFormatter) Close() error {
	return nil
}
