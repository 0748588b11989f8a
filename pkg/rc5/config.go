package rc5

import "fmt"

const (
	// MaxRounds bounds the subkey table to 2*(MaxRounds+1) words.
	MaxRounds = 256
	// MaxKeySize bounds the raw key, in bytes.
	MaxKeySize = 256

	DefaultRounds  = 12
	DefaultKeySize = 16
)

// Config couples a word width with a number of rounds and a key size,
// i.e. one RC5-w/r/b parameterization.
type Config[W Word[W]] struct {
	Word    *WordConfig[W]
	Rounds  int
	KeySize int
}

// NewConfig validates rounds and keysize against the implementation limits.
func NewConfig[W Word[W]](word *WordConfig[W], rounds, keysize int) (*Config[W], error) {
	if word == nil {
		return nil, fmt.Errorf("%w: no word configuration", ErrUnsupportedWordSize)
	}
	switch {
	case rounds < 0:
		return nil, fmt.Errorf("%w: %d", ErrWrongRoundsCount, rounds)
	case rounds > MaxRounds:
		return nil, fmt.Errorf("%w: %d > %d", ErrRoundsCountTooLarge, rounds, MaxRounds)
	case keysize < 0:
		return nil, fmt.Errorf("%w: %d", ErrWrongKeySize, keysize)
	case keysize > MaxKeySize:
		return nil, fmt.Errorf("%w: %d > %d", ErrKeySizeTooLarge, keysize, MaxKeySize)
	}
	return &Config[W]{Word: word, Rounds: rounds, KeySize: keysize}, nil
}

// DefaultConfig returns RC5-32/12/16.
func DefaultConfig() *Config[Word32] {
	return &Config[Word32]{Word: W32, Rounds: DefaultRounds, KeySize: DefaultKeySize}
}

// SubkeyCount is t = 2*(r+1), the length of the expanded key.
func (c *Config[W]) SubkeyCount() int { return 2 * (c.Rounds + 1) }

// Params returns the runtime description of c.
func (c *Config[W]) Params() Params {
	return Params{WordSize: c.Word.Bits, Rounds: c.Rounds, KeySize: c.KeySize}
}

func (c *Config[W]) String() string { return c.Params().String() }
