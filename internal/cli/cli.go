package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/optionkit/internal/app"
	"github.com/vk/optionkit/options"
	"github.com/zclconf/go-cty/cty"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("optlint", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
optlint - Checks option schema manifests for defaults that break their own rules.

Usage:
  optlint [options] PATH...

Arguments:
  PATH
    Path to a single .hcl manifest or a directory containing .hcl manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.String("format", "table", "Report format. Options: 'table' or 'json'.")
	flagSet.Bool("no-color", false, "Disable colored output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	bag, err := toBag(flagSet)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	config, err := app.NewConfig(context.Background(), bag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "options", config.Options().Names())
	return config, false, nil
}

// toBag collects the positional paths and every flag set explicitly by the
// user. Flags left alone are omitted so the config defaults apply.
func toBag(flagSet *flag.FlagSet) (options.Bag, error) {
	paths := make([]cty.Value, 0, flagSet.NArg())
	for _, p := range flagSet.Args() {
		paths = append(paths, cty.StringVal(p))
	}

	bag := options.Bag{"paths": cty.ListVal(paths)}

	var err error
	flagSet.Visit(func(f *flag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if getter, ok := f.Value.(flag.Getter); ok {
			switch v := getter.Get().(type) {
			case bool:
				bag[key] = cty.BoolVal(v)
				return
			case string:
				bag[key] = cty.StringVal(strings.ToLower(v))
				return
			}
		}
		err = fmt.Errorf("unsupported flag type for --%s", f.Name)
	})
	return bag, err
}
