package eager

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

type Format interface {
	SetSchema(tablefunc.Schema)
	Write(values []tablefunc.Value) error
	Close() error
}

// OutputPrinter runs its source to completion, formatting every record
// as it arrives.
type OutputPrinter struct {
	source Node

	schema tablefunc.Schema
	format func(io.Writer) Format
}

func NewOutputPrinter(source Node, schema tablefunc.Schema, format func(io.Writer) Format) *OutputPrinter {
	return &OutputPrinter{
		source: source,
		schema: schema,
		format: format,
	}
}

func (o *OutputPrinter) Run(execCtx ExecutionContext, w io.Writer) error {
	buffered := bufio.NewWriterSize(w, 4096*1024)
	format := o.format(buffered)
	format.SetSchema(o.schema)

	if err := o.source.Run(
		execCtx,
		func(ctx ProduceContext, record Record) error {
			return format.Write(record.Values)
		},
	); err != nil {
		return err
	}

	if err := format.Close(); err != nil {
		return fmt.Errorf("couldn't close output formatter: %w", err)
	}
	return buffered.Flush()
}
