package planner

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/execution/nodes"
	"github.com/cube2222/tablefunc/registry"
)

// Argument is one call-site argument: a literal value, or (in lateral
// calls) a reference to a column of the outer relation.
type Argument struct {
	Literal *tablefunc.Value
	Column  string
}

func Literal(value tablefunc.Value) Argument {
	return Argument{
		Literal: &value,
	}
}

func ColumnReference(name string) Argument {
	return Argument{
		Column: name,
	}
}

// KeyPart is one PARTITION BY entry: a column of the table argument, or
// a constant. A constant part doesn't vary between rows, so an
// all-constant key forces a single partition.
type KeyPart struct {
	Column   string
	Constant *tablefunc.Value
}

func KeyColumn(name string) KeyPart {
	return KeyPart{
		Column: name,
	}
}

func KeyConstant(value tablefunc.Value) KeyPart {
	return KeyPart{
		Constant: &value,
	}
}

// Call is a resolved-from-syntax call site.
//
// The three documented variants map onto it as follows:
//   - name(args...): Arguments set, Source nil.
//   - name(TABLE(...) [PARTITION BY (...)]): Source and SourceSchema
//     set, PartitionBy optionally set.
//   - outer, LATERAL name(outer.col, ...): Source is the outer
//     relation, Lateral is true, Arguments reference its columns.
type Call struct {
	Function     string
	Arguments    []Argument
	Source       execution.Node
	SourceSchema tablefunc.Schema
	PartitionBy  []KeyPart
	Lateral      bool
}

// InvalidPartitionKeyError is returned when a named partition key column
// doesn't exist in the table argument's schema.
type InvalidPartitionKeyError struct {
	Column string
}

func (e *InvalidPartitionKeyError) Error() string {
	return fmt.Sprintf("partition key column '%s' does not exist in the input schema", e.Column)
}

// Plan is an executable invocation with its output schema.
type Plan struct {
	Node   execution.Node
	Schema tablefunc.Schema
}

func PlanCall(r *registry.Registry, call Call) (*Plan, error) {
	def, err := r.Resolve(call.Function)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't resolve function")
	}

	switch {
	case call.Lateral:
		return planLateral(def, call)
	case def.TableArgument:
		return planPartitioned(def, call)
	default:
		return planScalar(def, call)
	}
}

func planScalar(def *registry.Definition, call Call) (*Plan, error) {
	if def.TableArgument {
		return nil, errors.Errorf("function '%s' takes a table argument, but was called with scalar arguments only", def.Name)
	}
	if call.Source != nil {
		return nil, errors.Errorf("function '%s' doesn't take a table argument", def.Name)
	}

	args, err := evaluateArguments(def, call.Arguments)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Node:   nodes.NewScalarCall(def.Scalar, args, def.Output.Fields),
		Schema: def.Output,
	}, nil
}

func evaluateArguments(def *registry.Definition, arguments []Argument) ([]tablefunc.Value, error) {
	if len(arguments) != len(def.Parameters) {
		return nil, errors.Errorf("function '%s' expects %d arguments, got %d", def.Name, len(def.Parameters), len(arguments))
	}
	args := make([]tablefunc.Value, len(arguments))
	for i := range arguments {
		if arguments[i].Literal == nil {
			return nil, errors.Errorf("argument '%s' of function '%s' must be a literal outside of a lateral call", def.Parameters[i].Name, def.Name)
		}
		if !typeOfValue(*arguments[i].Literal).Is(def.Parameters[i].Type) {
			return nil, errors.Errorf(
				"argument '%s' of function '%s' has type %s, expected %s",
				def.Parameters[i].Name, def.Name, arguments[i].Literal.TypeID, def.Parameters[i].Type,
			)
		}
		args[i] = *arguments[i].Literal
	}
	return args, nil
}

func planPartitioned(def *registry.Definition, call Call) (*Plan, error) {
	if call.Source == nil {
		return nil, errors.Errorf("function '%s' takes a table argument, but none was given", def.Name)
	}
	if len(call.Arguments) > 0 {
		return nil, errors.Errorf("function '%s' takes only a table argument", def.Name)
	}

	key := make([]nodes.Selector, len(call.PartitionBy))
	for i, part := range call.PartitionBy {
		if part.Constant != nil {
			key[i] = nodes.ConstantSelector(*part.Constant)
			continue
		}
		index := call.SourceSchema.FieldIndex(part.Column)
		if index == -1 {
			return nil, &InvalidPartitionKeyError{Column: part.Column}
		}
		key[i] = nodes.ColumnSelector(index)
	}

	return &Plan{
		Node:   nodes.NewPartitionedCall(call.Source, key, def.NewHandler, def.Output.Fields),
		Schema: def.Output,
	}, nil
}

func planLateral(def *registry.Definition, call Call) (*Plan, error) {
	if def.TableArgument {
		return nil, errors.Errorf("function '%s' takes a table argument and can't be used laterally", def.Name)
	}
	if call.Source == nil {
		return nil, errors.Errorf("lateral call of '%s' needs an outer relation", def.Name)
	}
	if len(call.Arguments) != len(def.Parameters) {
		return nil, errors.Errorf("function '%s' expects %d arguments, got %d", def.Name, len(def.Parameters), len(call.Arguments))
	}

	args := make([]nodes.Selector, len(call.Arguments))
	for i := range call.Arguments {
		if call.Arguments[i].Literal != nil {
			if !typeOfValue(*call.Arguments[i].Literal).Is(def.Parameters[i].Type) {
				return nil, errors.Errorf(
					"argument '%s' of function '%s' has type %s, expected %s",
					def.Parameters[i].Name, def.Name, call.Arguments[i].Literal.TypeID, def.Parameters[i].Type,
				)
			}
			args[i] = nodes.ConstantSelector(*call.Arguments[i].Literal)
			continue
		}

		index := call.SourceSchema.FieldIndex(call.Arguments[i].Column)
		if index == -1 {
			return nil, errors.Errorf("column '%s' referenced by argument '%s' of function '%s' does not exist in the outer schema", call.Arguments[i].Column, def.Parameters[i].Name, def.Name)
		}
		if !call.SourceSchema.Fields[index].Type.Is(def.Parameters[i].Type) {
			return nil, errors.Errorf(
				"column '%s' has type %s, argument '%s' of function '%s' expects %s",
				call.Arguments[i].Column, call.SourceSchema.Fields[index].Type, def.Parameters[i].Name, def.Name, def.Parameters[i].Type,
			)
		}
		args[i] = nodes.ColumnSelector(index)
	}

	outFields := make([]tablefunc.Field, 0, len(call.SourceSchema.Fields)+len(def.Output.Fields))
	outFields = append(outFields, call.SourceSchema.Fields...)
	outFields = append(outFields, def.Output.Fields...)

	return &Plan{
		Node:   nodes.NewLateralJoin(call.Source, def.Scalar, args, def.Output.Fields),
		Schema: tablefunc.NewSchema(outFields),
	}, nil
}

func typeOfValue(value tablefunc.Value) tablefunc.Type {
	return tablefunc.Type{TypeID: value.TypeID}
}
