package json

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fastjson"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

// DatasourceExecuting reads a newline-delimited JSON file as a record
// source. Each line must be an object; declared fields are looked up by
// name, missing ones become null.
type DatasourceExecuting struct {
	path   string
	fields []tablefunc.Field
}

func NewDatasource(path string, fields []tablefunc.Field) *DatasourceExecuting {
	return &DatasourceExecuting{
		path:   path,
		fields: fields,
	}
}

func (d *DatasourceExecuting) Run(ctx ExecutionContext, produce ProduceFn) error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("couldn't open file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(bufio.NewReaderSize(f, 4096*1024))
	sc.Buffer(nil, 1024*1024)

	var p fastjson.Parser
	for sc.Scan() {
		v, err := p.ParseBytes(sc.Bytes())
		if err != nil {
			return fmt.Errorf("couldn't parse json: %w", err)
		}
		if v.Type() != fastjson.TypeObject {
			return fmt.Errorf("expected JSON object, got '%s'", sc.Text())
		}
		o, err := v.Object()
		if err != nil {
			return fmt.Errorf("expected JSON object, got '%s'", sc.Text())
		}

		values := make([]tablefunc.Value, len(d.fields))
		for i := range values {
			value, err := getValue(d.fields[i].Type, o.Get(d.fields[i].Name))
			if err != nil {
				return fmt.Errorf("couldn't read field '%s': %w", d.fields[i].Name, err)
			}
			values[i] = value
		}

		if err := produce(ProduceFromExecutionContext(ctx), NewRecord(values)); err != nil {
			return fmt.Errorf("couldn't produce record: %w", err)
		}
	}
	return sc.Err()
}

func getValue(t tablefunc.Type, v *fastjson.Value) (tablefunc.Value, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return tablefunc.NewNull(), nil
	}

	switch t.TypeID {
	case tablefunc.TypeIDInt:
		i, err := v.Int()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as Int: %w", v, err)
		}
		return tablefunc.NewInt(i), nil

	case tablefunc.TypeIDFloat:
		f, err := v.Float64()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as Float: %w", v, err)
		}
		return tablefunc.NewFloat(f), nil

	case tablefunc.TypeIDBoolean:
		b, err := v.Bool()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as Boolean: %w", v, err)
		}
		return tablefunc.NewBoolean(b), nil

	case tablefunc.TypeIDString:
		str, err := v.StringBytes()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as String: %w", v, err)
		}
		return tablefunc.NewString(string(str)), nil

	case tablefunc.TypeIDTime:
		str, err := v.StringBytes()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as Time: %w", v, err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, string(str))
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't parse '%s' as Time: %w", str, err)
		}
		return tablefunc.NewTime(parsed), nil

	case tablefunc.TypeIDList:
		arr, err := v.Array()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read '%s' as List: %w", v, err)
		}
		element := tablefunc.Any
		if t.List.Element != nil {
			element = *t.List.Element
		}
		out := make([]tablefunc.Value, len(arr))
		for i := range arr {
			out[i], err = getValue(element, arr[i])
			if err != nil {
				return tablefunc.ZeroValue, fmt.Errorf("couldn't read list element %d: %w", i, err)
			}
		}
		return tablefunc.NewList(out), nil

	case tablefunc.TypeIDAny:
		return inferValue(v)

	default:
		return tablefunc.ZeroValue, fmt.Errorf("unsupported json column type %s", t)
	}
}

func inferValue(v *fastjson.Value) (tablefunc.Value, error) {
	switch v.Type() {
	case fastjson.TypeNumber:
		if i, err := v.Int(); err == nil {
			return tablefunc.NewInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't read number '%s': %w", v, err)
		}
		return tablefunc.NewFloat(f), nil
	case fastjson.TypeTrue:
		return tablefunc.NewBoolean(true), nil
	case fastjson.TypeFalse:
		return tablefunc.NewBoolean(false), nil
	case fastjson.TypeString:
		str, _ := v.StringBytes()
		return tablefunc.NewString(string(str)), nil
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]tablefunc.Value, len(arr))
		for i := range arr {
			value, err := inferValue(arr[i])
			if err != nil {
				return tablefunc.ZeroValue, err
			}
			out[i] = value
		}
		return tablefunc.NewList(out), nil
	default:
		return tablefunc.ZeroValue, fmt.Errorf("unsupported json value '%s'", v)
	}
}
