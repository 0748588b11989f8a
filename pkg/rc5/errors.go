package rc5

import (
	"errors"
	"fmt"
)

var (
	ErrBytesLengthMismatch        = errors.New("rc5: bytes provided do not match word size")
	ErrPlaintextBlockSizeMismatch = errors.New("rc5: input should be a multiple of the block size")
	ErrUnsupportedWordSize        = errors.New("rc5: unsupported word size")
	ErrRoundsCountTooLarge        = errors.New("rc5: rounds count too large")
	ErrKeySizeTooLarge            = errors.New("rc5: key size too large")
	ErrWrongRoundsCount           = errors.New("rc5: wrong rounds count")
	ErrWrongKeySize               = errors.New("rc5: wrong key size")
)

// KeySizeError reports a key whose length differs from the configured key
// size. It matches ErrWrongKeySize.
type KeySizeError struct {
	Expected int
	Got      int
}

func (e *KeySizeError) Error() string {
	return fmt.Sprintf("rc5: key must be %d bytes, got %d", e.Expected, e.Got)
}

func (e *KeySizeError) Is(target error) bool { return target == ErrWrongKeySize }

// BlockSizeError reports a buffer that is not a whole number of blocks. It
// matches ErrPlaintextBlockSizeMismatch.
type BlockSizeError struct {
	BlockSize int
	Got       int
}

func (e *BlockSizeError) Error() string {
	return fmt.Sprintf("rc5: input length %d is not a multiple of the %d byte block size", e.Got, e.BlockSize)
}

func (e *BlockSizeError) Is(target error) bool { return target == ErrPlaintextBlockSizeMismatch }
