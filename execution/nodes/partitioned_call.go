package nodes

import (
	"fmt"
	"runtime"

	"github.com/zyedidia/generic/hashmap"
	"golang.org/x/sync/errgroup"

	"github.com/cube2222/tablefunc"
	. "github.com/cube2222/tablefunc/execution"
)

const initialPartitionMapSize = 16

// PartitionedCall routes the source's rows into partitions by the
// partition key, runs one handler instance per partition, and assembles
// the partitions' outputs in first-seen key order.
//
// An empty or all-constant key yields a single partition holding every
// source row, which is also formed when the source is empty.
type PartitionedCall struct {
	source       Node
	key          []Selector
	newHandler   func() Handler
	outputFields []tablefunc.Field
}

func NewPartitionedCall(source Node, key []Selector, newHandler func() Handler, outputFields []tablefunc.Field) *PartitionedCall {
	return &PartitionedCall{
		source:       source,
		key:          key,
		newHandler:   newHandler,
		outputFields: outputFields,
	}
}

type partitionState int

const (
	partitionCreated partitionState = iota
	partitionInitialized
	partitionProcessing
	partitionTerminating
	partitionDone
)

// partition owns its handler instance slot for the duration of the
// dispatch; rows and produced records are touched by exactly one
// goroutine at a time.
type partition struct {
	key  GroupKey
	rows []Record

	state    partitionState
	produced []Record
}

func (p *PartitionedCall) Run(ctx ExecutionContext, produce ProduceFn) error {
	partitionIndex := hashmap.New[GroupKey, int](initialPartitionMapSize, func(a, b GroupKey) bool {
		return a.Equals(b)
	}, func(k GroupKey) uint64 {
		return k.HashSum()
	})
	var partitions []*partition

	if err := p.source.Run(ctx, func(produceCtx ProduceContext, record Record) error {
		key := make(GroupKey, len(p.key))
		for i := range p.key {
			key[i] = p.key[i].Select(record)
		}

		index, ok := partitionIndex.Get(key)
		if !ok {
			index = len(partitions)
			partitions = append(partitions, &partition{key: key})
			partitionIndex.Put(key, index)
		}
		partitions[index].rows = append(partitions[index].rows, record)

		return nil
	}); err != nil {
		return fmt.Errorf("couldn't run source: %w", err)
	}

	// A keyless (or all-constant) call aggregates over everything, so the
	// single implicit partition exists even for an empty source.
	if len(partitions) == 0 && p.keyIsConstant() {
		key := make(GroupKey, len(p.key))
		for i := range p.key {
			key[i] = *p.key[i].Constant
		}
		partitions = append(partitions, &partition{key: key})
	}

	g, groupCtx := errgroup.WithContext(ctx.Context)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, part := range partitions {
		part := part
		g.Go(func() error {
			return p.runPartition(ctx.WithContext(groupCtx), part)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, part := range partitions {
		for _, record := range part.produced {
			if err := produce(ProduceFromExecutionContext(ctx), record); err != nil {
				return fmt.Errorf("couldn't produce record: %w", err)
			}
		}
	}

	return nil
}

func (p *PartitionedCall) keyIsConstant() bool {
	for i := range p.key {
		if p.key[i].Constant == nil {
			return false
		}
	}
	return true
}

func (p *PartitionedCall) runPartition(ctx ExecutionContext, part *partition) error {
	handler := p.newHandler()

	buffer := ValidateProduce(p.outputFields, func(produceCtx ProduceContext, record Record) error {
		part.produced = append(part.produced, record)
		return nil
	})

	if err := handler.Initialize(ctx, buffer); err != nil {
		part.state = partitionDone
		part.produced = nil
		return &HandlerSetupError{PartitionKey: part.key, Err: err}
	}
	part.state = partitionInitialized

	part.state = partitionProcessing
	for i := range part.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handler.ProcessRow(ctx, part.rows[i], buffer); err != nil {
			part.state = partitionDone
			return &HandlerRowError{PartitionKey: part.key, RowIndex: i, Err: err}
		}
	}

	part.state = partitionTerminating
	if err := handler.EndPartition(ctx, buffer); err != nil {
		part.state = partitionDone
		return &HandlerTeardownError{PartitionKey: part.key, Err: err}
	}
	part.state = partitionDone

	return nil
}
