package rc5

import (
	"fmt"
	"strconv"
	"strings"
)

// Params is the runtime form of an RC5-w/r/b parameterization, for callers
// that only learn the word size at run time (flags, config files, requests).
type Params struct {
	WordSize int `json:"word_size" mapstructure:"word_size"`
	Rounds   int `json:"rounds" mapstructure:"rounds"`
	KeySize  int `json:"key_size" mapstructure:"key_size"`
}

// DefaultParams returns RC5-32/12/16.
func DefaultParams() Params {
	return Params{WordSize: 32, Rounds: DefaultRounds, KeySize: DefaultKeySize}
}

// WordSizes lists the supported word widths in bits.
var WordSizes = []int{8, 16, 32, 64, 128}

// ParseParams reads the conventional "RC5-w/r/b" notation. The "RC5-"
// prefix is optional and case insensitive.
func ParseParams(s string) (Params, error) {
	body := strings.TrimSpace(s)
	if len(body) >= 4 && strings.EqualFold(body[:4], "rc5-") {
		body = body[4:]
	}
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return Params{}, fmt.Errorf("rc5: invalid parameters %q, expected RC5-w/r/b", s)
	}
	var vals [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return Params{}, fmt.Errorf("rc5: invalid parameters %q: %w", s, err)
		}
		vals[i] = v
	}
	p := Params{WordSize: vals[0], Rounds: vals[1], KeySize: vals[2]}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the word size and the rounds/key size limits.
func (p Params) Validate() error {
	switch p.WordSize {
	case 8:
		_, err := NewConfig(W8, p.Rounds, p.KeySize)
		return err
	case 16:
		_, err := NewConfig(W16, p.Rounds, p.KeySize)
		return err
	case 32:
		_, err := NewConfig(W32, p.Rounds, p.KeySize)
		return err
	case 64:
		_, err := NewConfig(W64, p.Rounds, p.KeySize)
		return err
	case 128:
		_, err := NewConfig(W128, p.Rounds, p.KeySize)
		return err
	}
	return fmt.Errorf("%w: %d bits", ErrUnsupportedWordSize, p.WordSize)
}

// BlockSize returns the block size in bytes, 2*w/8.
func (p Params) BlockSize() int { return 2 * p.WordSize / 8 }

func (p Params) String() string {
	return fmt.Sprintf("RC5-%d/%d/%d", p.WordSize, p.Rounds, p.KeySize)
}
