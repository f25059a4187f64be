package registry

import (
	"fmt"
	"sync"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
)

// Capability is a feature tier of the runtime. Scalar table functions
// and table-argument functions with partitioning were introduced as
// separate tiers, so they're gated separately.
type Capability int

const (
	CapabilityScalarFunctions Capability = 1 << iota
	CapabilityTableArguments
)

func AllCapabilities() Capability {
	return CapabilityScalarFunctions | CapabilityTableArguments
}

// Parameter is a declared scalar parameter of a function.
type Parameter struct {
	Name string
	Type tablefunc.Type
}

// Definition describes one named table function. Exactly one of Scalar
// and NewHandler is set: Scalar for functions called with scalar
// arguments only, NewHandler for functions taking a table argument.
type Definition struct {
	Name          string
	Parameters    []Parameter
	TableArgument bool
	Output        tablefunc.Schema

	Scalar     execution.ScalarFunction
	NewHandler func() execution.Handler
}

// NotFoundError is returned by Resolve for names that were never
// defined.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("function '%s' is not defined", e.Name)
}

// Registry maps function names to their current definitions. Define
// replaces any prior definition of the same name; callers holding a
// resolved definition keep using the one they resolved.
type Registry struct {
	capabilities Capability

	mu        sync.RWMutex
	functions map[string]*Definition
}

func NewRegistry(capabilities Capability) *Registry {
	return &Registry{
		capabilities: capabilities,
		functions:    make(map[string]*Definition),
	}
}

func (r *Registry) Capabilities() Capability {
	return r.capabilities
}

func (r *Registry) Define(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("function definition has no name")
	}
	if def.TableArgument {
		if def.NewHandler == nil || def.Scalar != nil {
			return fmt.Errorf("table-argument function '%s' must have a handler constructor and no scalar function", def.Name)
		}
		if r.capabilities&CapabilityTableArguments == 0 {
			return fmt.Errorf("can't define '%s': table-argument functions aren't available in this runtime", def.Name)
		}
	} else {
		if def.Scalar == nil || def.NewHandler != nil {
			return fmt.Errorf("scalar function '%s' must have a scalar function and no handler constructor", def.Name)
		}
		if r.capabilities&CapabilityScalarFunctions == 0 {
			return fmt.Errorf("can't define '%s': scalar table functions aren't available in this runtime", def.Name)
		}
	}

	r.mu.Lock()
	r.functions[def.Name] = def
	r.mu.Unlock()

	return nil
}

func (r *Registry) Resolve(name string) (*Definition, error) {
	r.mu.RLock()
	def, ok := r.functions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return def, nil
}
