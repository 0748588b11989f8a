package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"rc5-go/pkg/config"
	"rc5-go/pkg/log"
	"rc5-go/pkg/rc5"
)

var cryptFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "in",
		Aliases: []string{"i"},
		Usage:   "Read input from `FILE` instead of stdin",
	},
	&cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Write output to `FILE` instead of stdout",
	},
	&cli.BoolFlag{
		Name:  "hex",
		Usage: "Input and output are hex text instead of raw bytes",
	},
}

var (
	encryptCommand = &cli.Command{
		Name:        "encrypt",
		Usage:       "Encrypt whole blocks (ECB, no padding)",
		UsageText:   "rc5 [global options] encrypt [--in FILE] [--out FILE] [--hex] [HEX]",
		Description: `The input length must be a multiple of the block size, 2*w/8 bytes.`,
		Flags:       cryptFlags,
		Action: func(c *cli.Context) error {
			return cryptCmd(c, "encrypt", rc5.Session.Encrypt)
		},
	}

	decryptCommand = &cli.Command{
		Name:        "decrypt",
		Usage:       "Decrypt whole blocks (ECB, no padding)",
		UsageText:   "rc5 [global options] decrypt [--in FILE] [--out FILE] [--hex] [HEX]",
		Description: `The input length must be a multiple of the block size, 2*w/8 bytes.`,
		Flags:       cryptFlags,
		Action: func(c *cli.Context) error {
			return cryptCmd(c, "decrypt", rc5.Session.Decrypt)
		},
	}
)

func cryptCmd(c *cli.Context, op string, fn func(rc5.Session, []byte) ([]byte, error)) error {
	s, err := session()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	hexMode := c.Bool("hex")
	var input []byte
	switch {
	case c.Args().Present():
		// Positional data is always hex.
		hexMode = true
		input = []byte(strings.Join(c.Args().Slice(), ""))
	case c.IsSet("in"):
		if input, err = os.ReadFile(c.String("in")); err != nil {
			return cli.Exit(fmt.Sprintf("Error reading input: %v", err), 1)
		}
	default:
		if input, err = io.ReadAll(c.App.Reader); err != nil {
			return cli.Exit(fmt.Sprintf("Error reading stdin: %v", err), 1)
		}
	}
	if hexMode {
		if input, err = config.DecodeHex(string(input)); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
	}

	out, err := fn(s, input)
	if err != nil {
		log.Error().Str("op", op).Str("params", s.Params().String()).Int("bytes", len(input)).Err(err).Msg("rejected")
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	log.Info().Str("op", op).Str("params", s.Params().String()).Int("bytes", len(input)).Msg("done")

	if hexMode {
		out = []byte(strings.ToUpper(hex.EncodeToString(out)) + "\n")
	}
	if c.IsSet("out") {
		if err := os.WriteFile(c.String("out"), out, 0o600); err != nil {
			return cli.Exit(fmt.Sprintf("Error writing output: %v", err), 1)
		}
		return nil
	}
	if _, err := c.App.Writer.Write(out); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing output: %v", err), 1)
	}
	return nil
}
