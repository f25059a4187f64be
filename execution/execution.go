package execution

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ExecutionContext accompanies a whole invocation while it runs.
type ExecutionContext struct {
	context.Context
	InvocationID string
}

func NewExecutionContext(ctx context.Context) ExecutionContext {
	return ExecutionContext{
		Context:      ctx,
		InvocationID: GetRawInvocationID(),
	}
}

func (ctx ExecutionContext) WithContext(inner context.Context) ExecutionContext {
	return ExecutionContext{
		Context:      inner,
		InvocationID: ctx.InvocationID,
	}
}

func GetRawInvocationID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

type ProduceContext struct {
	context.Context
}

func ProduceFromExecutionContext(ctx ExecutionContext) ProduceContext {
	return ProduceContext{
		Context: ctx.Context,
	}
}

// ProduceFn receives output records one by one, in emission order.
type ProduceFn func(ctx ProduceContext, record Record) error

// Node is a runnable record producer. Run drives the node to completion,
// pushing every output record through produce.
type Node interface {
	Run(ctx ExecutionContext, produce ProduceFn) error
}
