package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/log"
)

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "Print entries from the operation journal",
	UsageText: "rc5 [global options] logs [--count N | --since TIME_SPEC [--until TIME_SPEC]] [--limit N]",
	Description: `TIME_SPEC is either a duration relative to now ("30m", "2h") or an
absolute timestamp ("2026-10-18T15:04:05Z", "2026-10-18 15:04:05", "2026-10-18").`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Print the last `N` entries",
			Value:   20,
		},
		&cli.StringFlag{
			Name:    "since",
			Aliases: []string{"s"},
			Usage:   "Print entries logged after `TIME_SPEC`",
		},
		&cli.StringFlag{
			Name:    "until",
			Aliases: []string{"u"},
			Usage:   "Upper bound `TIME_SPEC` for --since (default: now)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since `N`",
			Value:   log.DefaultLimit,
		},
	},
	Action: logsCmd,
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec accepts a duration back from now or an absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification %q, use a duration (\"1h\") or a timestamp (\"2026-10-18T15:04:05Z\")", spec)
}

func logsCmd(c *cli.Context) error {
	if c.Bool("no-journal") {
		return cli.Exit("Error: the journal is disabled by --no-journal", 1)
	}
	var (
		entries []log.Entry
		err     error
	)
	now := time.Now()
	if c.IsSet("since") {
		start, perr := parseTimeSpec(c.String("since"), now)
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", perr), 1)
		}
		end := now
		if c.IsSet("until") {
			if end, perr = parseTimeSpec(c.String("until"), now); perr != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", perr), 1)
			}
		}
		entries, err = log.Between(start, end, c.Int("limit"))
	} else {
		if c.Int("count") <= 0 {
			return cli.Exit("Error: --count must be positive", 1)
		}
		entries, err = log.Last(c.Int("count"))
	}
	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Error: no log journal configured (log_db)", 1)
		}
		return cli.Exit(fmt.Sprintf("Error reading journal: %v", err), 1)
	}
	for _, e := range entries {
		fmt.Fprintln(c.App.Writer, strings.TrimRight(e.Data, "\n"))
	}
	return nil
}
