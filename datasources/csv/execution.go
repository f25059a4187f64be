package csv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

// DatasourceExecuting reads a headered CSV file as a record source. Cell
// values are parsed according to the declared fields; a field declared
// Any is inferred per cell.
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

	decoder := csv.NewReader(bufio.NewReaderSize(f, 4096*1024))
	decoder.Comma = ','
	decoder.ReuseRecord = true
	header, err := decoder.Read()
	if err != nil {
		return fmt.Errorf("couldn't decode csv header row: %w", err)
	}
	if len(header) != len(d.fields) {
		return fmt.Errorf("csv file has %d columns, declared schema has %d", len(header), len(d.fields))
	}

	line := 1
	for {
		row, err := decoder.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("couldn't decode row: %w", err)
		}
		line++

		values := make([]tablefunc.Value, len(d.fields))
		for i := range row {
			value, err := parseValue(d.fields[i].Type, row[i])
			if err != nil {
				return fmt.Errorf("couldn't parse row %d column '%s': %w", line, d.fields[i].Name, err)
			}
			values[i] = value
		}

		if err := produce(ProduceFromExecutionContext(ctx), NewRecord(values)); err != nil {
			return fmt.Errorf("couldn't produce record: %w", err)
		}
	}

	return nil
}

func parseValue(t tablefunc.Type, str string) (tablefunc.Value, error) {
	switch t.TypeID {
	case tablefunc.TypeIDInt:
		integer, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't parse '%s' as Int: %w", str, err)
		}
		return tablefunc.NewInt(int(integer)), nil

	case tablefunc.TypeIDFloat:
		float, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't parse '%s' as Float: %w", str, err)
		}
		return tablefunc.NewFloat(float), nil

	case tablefunc.TypeIDBoolean:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't parse '%s' as Boolean: %w", str, err)
		}
		return tablefunc.NewBoolean(b), nil

	case tablefunc.TypeIDTime:
		parsed, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return tablefunc.ZeroValue, fmt.Errorf("couldn't parse '%s' as Time: %w", str, err)
		}
		return tablefunc.NewTime(parsed), nil

	case tablefunc.TypeIDString:
		return tablefunc.NewString(str), nil

	case tablefunc.TypeIDAny:
		return inferValue(str), nil

	default:
		return tablefunc.ZeroValue, fmt.Errorf("unsupported csv column type %s", t)
	}
}

func inferValue(str string) tablefunc.Value {
	integer, err := strconv.ParseInt(str, 10, 64)
	if err == nil {
		return tablefunc.NewInt(int(integer))
	}

	float, err := strconv.ParseFloat(str, 64)
	if err == nil {
		return tablefunc.NewFloat(float)
	}

	b, err := strconv.ParseBool(str)
	if err == nil {
		return tablefunc.NewBoolean(b)
	}

	t, err := time.Parse(time.RFC3339Nano, str)
	if err == nil {
		return tablefunc.NewTime(t)
	}

	return tablefunc.NewString(str)
}
