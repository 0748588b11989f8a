package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/benchmark"
)

var benchCommand = &cli.Command{
	Name:  "bench",
	Usage: "Measure key schedule and block latency for the configured parameters",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "iterations",
			Aliases: []string{"n"},
			Usage:   "Number of timed `N` calls per phase",
			Value:   1000,
		},
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"s"},
			Usage:   "Buffer `BYTES` per encrypt/decrypt call, rounded down to whole blocks",
			Value:   4096,
		},
		&cli.StringFlag{
			Name:  "csv",
			Usage: "Also write results to `FILE` as CSV",
		},
	},
	Action: benchCmd,
}

func benchCmd(c *cli.Context) error {
	p, err := cfg.CipherParams()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	opts := benchmark.DefaultOptions()
	opts.Params = p
	opts.Iterations = c.Int("iterations")
	opts.Size = c.Int("size")
	if opts.Iterations <= 0 {
		return cli.Exit("Error: --iterations must be positive", 1)
	}

	results := benchmark.RunAll(opts)
	if len(results) == 0 {
		return cli.Exit("Error: every benchmark phase failed", 1)
	}
	for _, r := range results {
		benchmark.PrintResults(c.App.Writer, r)
		fmt.Fprintln(c.App.Writer)
	}
	if file := c.String("csv"); file != "" {
		if err := benchmark.SaveResultsToFile(results, file); err != nil {
			return cli.Exit(fmt.Sprintf("Error writing %s: %v", file, err), 1)
		}
	}
	return nil
}
