package udtfs

import (
	"fmt"
	"net"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/registry"
)

// SimpleIPCheck emits a single row telling whether the given address
// lies in a private range. Meant for lateral use over a column of
// addresses.
var SimpleIPCheck = &registry.Definition{
	Name: "simple_ip_check",
	Parameters: []registry.Parameter{
		{Name: "ip", Type: tablefunc.String},
	},
	Output: tablefunc.NewSchema([]tablefunc.Field{
		{Name: "is_private", Type: tablefunc.Boolean},
	}),
	Scalar: func(ctx execution.ExecutionContext, args []tablefunc.Value, produce execution.ProduceFn) error {
		ip := net.ParseIP(args[0].Str)
		if ip == nil {
			return fmt.Errorf("invalid IP address: '%s'", args[0].Str)
		}

		return produce(
			execution.ProduceFromExecutionContext(ctx),
			execution.NewRecord([]tablefunc.Value{
				tablefunc.NewBoolean(ip.IsPrivate()),
			}),
		)
	},
}
