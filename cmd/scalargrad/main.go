// Package main provides the scalargrad CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/scalargrad/internal/config"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("scalargrad: ")

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "scalargrad %s\n", version)
		return nil
	case "check", "demo":
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if args[0] == "check" {
		return runCheck(cfg, out)
	}
	return runDemo(ctx, cfg, out)
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "scalargrad - scalar reverse-mode automatic differentiation")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  check      Compare engine gradients with finite differences")
	fmt.Fprintln(out, "  demo       Back-propagate a mean BCE loss through a small MLP on XOR")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Settings are read from SCALARGRAD_* variables or a .env file.")
}
