package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/appdir"
	"rc5-go/pkg/config"
	"rc5-go/pkg/log"
	"rc5-go/pkg/rc5"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// cfg is loaded once in before() and shared by the commands.
var cfg *config.Config

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the configuration `FILE` (default: rc5.yaml in ., /etc/rc5-go, ~/.rc5-go)",
	},
	&cli.StringFlag{
		Name:    "params",
		Aliases: []string{"p"},
		Usage:   "Cipher parameters `RC5-w/r/b`",
	},
	&cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "Key as `HEX`",
	},
	&cli.StringFlag{
		Name:  "key-file",
		Usage: "Read the key from `PATH` as raw bytes (a trailing newline counts as key material)",
	},
	&cli.StringFlag{
		Name:  "log-db",
		Usage: "SQLite log journal `PATH`, relative to ~/.rc5-go unless absolute",
	},
	&cli.BoolFlag{
		Name:  "no-journal",
		Usage: "Do not record operations in the log journal",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging on stderr",
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "rc5",
		Usage:   "RC5-w/r/b block cipher tool",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   globalFlags,
		Before:  before,
		After:   after,
		Commands: []*cli.Command{
			encryptCommand,
			decryptCommand,
			selftestCommand,
			serveCommand,
			logsCommand,
			benchCommand,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.SetStd(false)
		log.Fatalf("%v", err)
	}
}

func before(c *cli.Context) error {
	var err error
	cfg, err = config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading configuration: %v", err), 1)
	}
	if c.IsSet("params") {
		cfg.Params = c.String("params")
	}
	if c.IsSet("key") {
		cfg.Key = c.String("key")
		cfg.KeyFile = ""
	}
	if c.IsSet("key-file") {
		cfg.KeyFile = c.String("key-file")
		cfg.Key = ""
	}
	if c.IsSet("log-db") {
		cfg.LogDB = c.String("log-db")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if cfg.Debug {
		log.SetStd(true)
	}
	if !c.Bool("no-journal") && cfg.LogDB != "" {
		if err := log.Init(appdir.Path(cfg.LogDB)); err != nil {
			return cli.Exit(fmt.Sprintf("Error opening log journal: %v", err), 1)
		}
	}
	log.Debug().Str("config", cfg.ConfigFile).Str("params", cfg.Params).Msg("configuration loaded")
	return nil
}

func after(c *cli.Context) error {
	return log.Close()
}

// session builds a cipher session from the effective configuration.
func session() (rc5.Session, error) {
	p, err := cfg.CipherParams()
	if err != nil {
		return nil, err
	}
	key, err := cfg.KeyBytes()
	if err != nil {
		return nil, err
	}
	s, err := rc5.New(p, key)
	if errors.Is(err, rc5.ErrWrongKeySize) && cfg.KeyFile != "" {
		return nil, fmt.Errorf("%w (key_file %s is read as raw bytes, including any trailing newline)", err, cfg.KeyFile)
	}
	return s, err
}
