package formats

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cube2222/tablefunc"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (t *CSVFormatter) SetSchema(schema tablefunc.Schema) {
	header := make([]string, len(schema.Fields))
	for i := range schema.Fields {
		header[i] = schema.Fields[i].Name
	}
	t.writer.Write(header)
}

func (t *CSVFormatter) Write(values []tablefunc.Value) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = values[i].String()
	}
	if err := t.writer.Write(row); err != nil {
		return fmt.Errorf("couldn't write row: %w", err)
	}
	return nil
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
