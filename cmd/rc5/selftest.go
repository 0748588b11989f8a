package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/log"
	"rc5-go/pkg/vectors"
)

var selftestCommand = &cli.Command{
	Name:  "selftest",
	Usage: "Check the engine against the published RC5 test vectors",
	Action: func(c *cli.Context) error {
		results := vectors.RunAll()
		for _, r := range results {
			status := "ok"
			if !r.Passed {
				status = "FAIL: " + r.Error
			}
			fmt.Fprintf(c.App.Writer, "%-14s %s\n", r.Name, status)
		}
		if n := vectors.Failed(results); n > 0 {
			log.Error().Int("failed", n).Msg("self test failed")
			return cli.Exit(fmt.Sprintf("%d of %d vectors failed", n, len(results)), 2)
		}
		log.Info().Int("vectors", len(results)).Msg("self test passed")
		return nil
	},
}
