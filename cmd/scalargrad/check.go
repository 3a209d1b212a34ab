package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/born-ml/scalargrad/internal/config"
	"github.com/born-ml/scalargrad/internal/gradcheck"
)

var errCheckFailed = errors.New("gradient check failed")

// runCheck runs every standard case and reports the worst deviation.
func runCheck(cfg *config.Config, out io.Writer) error {
	settings := gradcheck.Settings{
		Step:      cfg.FDStep,
		Tolerance: cfg.Tolerance,
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CASE\tVALUE\tMAX |Δ|\tSTATUS")

	failures := 0
	for _, c := range gradcheck.StandardCases() {
		res, err := gradcheck.Check(c.F, c.At, settings)
		status := "ok"
		if err != nil {
			failures++
			status = err.Error()
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%.3g\t%s\n", c.Name, res.Value, res.MaxAbsDiff, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d case(s)", errCheckFailed, failures)
	}
	return nil
}
