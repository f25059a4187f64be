package udtfs

import (
	"fmt"

	"github.com/cube2222/tablefunc/registry"
)

var Definitions = []*registry.Definition{
	CountRows,
	GenerateRange,
	SimpleIPCheck,
	SplitText,
	SumAndCount,
}

// Register defines every built-in function in the registry.
func Register(r *registry.Registry) error {
	for _, def := range Definitions {
		if err := r.Define(def); err != nil {
			return fmt.Errorf("couldn't define '%s': %w", def.Name, err)
		}
	}
	return nil
}
