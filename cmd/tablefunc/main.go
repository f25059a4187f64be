package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cube2222/tablefunc"
	"github.com/cube2222/tablefunc/config"
	"github.com/cube2222/tablefunc/datasources/csv"
	"github.com/cube2222/tablefunc/datasources/json"
	"github.com/cube2222/tablefunc/execution"
	"github.com/cube2222/tablefunc/logs"
	"github.com/cube2222/tablefunc/outputs/eager"
	"github.com/cube2222/tablefunc/outputs/formats"
	"github.com/cube2222/tablefunc/planner"
	"github.com/cube2222/tablefunc/registry"
	"github.com/cube2222/tablefunc/udtfs"
)

var output string

var rootCmd = &cobra.Command{
	Use:   "tablefunc <invocation.yaml>",
	Args:  cobra.ExactArgs(1),
	Short: "Run a table function invocation described by a YAML file.",
	Example: `tablefunc invocation.yaml
tablefunc invocation.yaml --output json`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		formatter, ok := formatters[output]
		if !ok {
			return fmt.Errorf("invalid output format: '%s'", output)
		}

		cfg, err := config.Read(args[0])
		if err != nil {
			return fmt.Errorf("couldn't read invocation configuration: %w", err)
		}

		r := registry.NewRegistry(registry.AllCapabilities())
		if err := udtfs.Register(r); err != nil {
			return fmt.Errorf("couldn't register built-in functions: %w", err)
		}

		call, err := buildCall(cfg)
		if err != nil {
			return fmt.Errorf("couldn't build call: %w", err)
		}

		plan, err := planner.PlanCall(r, *call)
		if err != nil {
			return fmt.Errorf("couldn't plan call: %w", err)
		}

		execCtx := execution.NewExecutionContext(ctx)
		log.Printf("invocation %s: running '%s'", execCtx.InvocationID, cfg.Call.Function)

		printer := eager.NewOutputPrinter(plan.Node, plan.Schema, formatter)
		if err := printer.Run(execCtx, os.Stdout); err != nil {
			return fmt.Errorf("couldn't run invocation: %w", err)
		}

		log.Printf("invocation %s: done", execCtx.InvocationID)
		return nil
	},
}

var formatters = map[string]func(io.Writer) eager.Format{
	"csv": func(w io.Writer) eager.Format {
		return formats.NewCSVFormatter(w)
	},
	"json": func(w io.Writer) eager.Format {
		return formats.NewJSONFormatter(w)
	},
	"table": func(w io.Writer) eager.Format {
		return formats.NewTableFormatter(w)
	},
}

func buildCall(cfg *config.Config) (*planner.Call, error) {
	call := planner.Call{
		Function: cfg.Call.Function,
		Lateral:  cfg.Call.Lateral,
	}

	if cfg.Input != nil {
		schema, err := cfg.Input.TableSchema()
		if err != nil {
			return nil, fmt.Errorf("couldn't build input schema: %w", err)
		}

		format := cfg.Input.Format
		if format == "" {
			switch filepath.Ext(cfg.Input.Path) {
			case ".csv":
				format = "csv"
			case ".json":
				format = "json"
			}
		}

		switch format {
		case "csv":
			call.Source = csv.NewDatasource(cfg.Input.Path, schema.Fields)
		case "json":
			call.Source = json.NewDatasource(cfg.Input.Path, schema.Fields)
		default:
			return nil, fmt.Errorf("unsupported input format: '%s'", format)
		}
		call.SourceSchema = schema
	}

	for i := range cfg.Call.Arguments {
		arg, err := buildArgument(cfg.Call.Arguments[i])
		if err != nil {
			return nil, fmt.Errorf("couldn't build argument %d: %w", i, err)
		}
		call.Arguments = append(call.Arguments, arg)
	}

	for _, part := range cfg.Call.PartitionBy {
		if constant, err := strconv.Atoi(part); err == nil {
			call.PartitionBy = append(call.PartitionBy, planner.KeyConstant(tablefunc.NewInt(constant)))
			continue
		}
		call.PartitionBy = append(call.PartitionBy, planner.KeyColumn(part))
	}

	return &call, nil
}

func buildArgument(arg config.ArgumentConfig) (planner.Argument, error) {
	switch {
	case arg.Column != nil:
		return planner.ColumnReference(*arg.Column), nil
	case arg.Int != nil:
		return planner.Literal(tablefunc.NewInt(*arg.Int)), nil
	case arg.Float != nil:
		return planner.Literal(tablefunc.NewFloat(*arg.Float)), nil
	case arg.String != nil:
		return planner.Literal(tablefunc.NewString(*arg.String)), nil
	case arg.Bool != nil:
		return planner.Literal(tablefunc.NewBoolean(*arg.Bool)), nil
	default:
		return planner.Argument{}, fmt.Errorf("argument sets no value")
	}
}

func main() {
	logs.InitializeFileLogger()
	defer logs.CloseLogger()

	rootCmd.Flags().StringVar(&output, "output", "table", "output format: table, csv or json")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
