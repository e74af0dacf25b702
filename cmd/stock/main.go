// Command stock tracks a small fleet of machines in a CSV file (or sqlite).
//
// Every invocation is one session: the data file is loaded, the command runs,
// and mutating commands save the whole inventory back.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
)

// silentError marks a failure the notifier has already shown to the user.
type silentError struct {
	error
}

func (e silentError) Unwrap() error {
	return e.error
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(args []string, out io.Writer) error
}

func commands() []command {
	return []command{
		{"list", "list", "show every machine", runList},
		{"add", "add --id N --name NAME --duration H --performance P", "add a machine", runAdd},
		{"update", "update --row R --id N --name NAME --duration H --performance P", "replace the machine at row R", runUpdate},
		{"delete", "delete --row R", "delete the machine at row R", runDelete},
		{"chart", "chart machine|state [--format term|xlsx|pdf] [--out PATH]", "draw a summary chart", runChart},
		{"metrics", "metrics [--out PATH]", "write a Prometheus textfile", runMetrics},
	}
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	common.Sync()
	if err != nil {
		var se silentError
		if !errors.As(err, &se) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if err := loadEnv(); err != nil {
		return err
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(out)
		return nil
	}

	for _, cmd := range commands() {
		if cmd.name == args[0] {
			common.GetLoggerWith(common.LoggerNameCLI).Debug("Running command",
				zap.String("command", cmd.name),
				zap.Strings("args", args[1:]))
			return cmd.run(args[1:], out)
		}
	}

	printUsage(out)
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "stock commands:")
	for _, cmd := range commands() {
		fmt.Fprintf(out, "  %-62s %s\n", cmd.usage, cmd.summary)
	}
	fmt.Fprintln(out, "common flags: --store csv|sqlite  --file PATH  --db PATH")
}
