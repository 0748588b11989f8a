package rc5

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"lukechampine.com/uint128"
)

// Version is the RC5 version byte (1.0) from the reference description.
const Version = 0x10

// Word is the arithmetic a cipher word has to provide. All arithmetic wraps
// modulo 2^w and rotations are circular within the word width.
type Word[W any] interface {
	comparable
	Add(W) W
	Sub(W) W
	Xor(W) W
	RotateLeft(k uint) W
	RotateRight(k uint) W
	// Low returns the least significant bits of the word as a machine uint.
	Low() uint
}

type (
	Word8   uint8
	Word16  uint16
	Word32  uint32
	Word64  uint64
	Word128 struct{ uint128.Uint128 }
)

func (x Word8) Add(y Word8) Word8 { return x + y }
func (x Word8) Sub(y Word8) Word8 { return x - y }
func (x Word8) Xor(y Word8) Word8 { return x ^ y }
func (x Word8) RotateLeft(k uint) Word8 { return Word8(bits.RotateLeft8(uint8(x), int(k))) }
func (x Word8) RotateRight(k uint) Word8 { return Word8(bits.RotateLeft8(uint8(x), -int(k))) }
func (x Word8) Low() uint { return uint(x) }
func (x Word16) Add(y Word16) Word16 { return x + y }
func (x Word16) Sub(y Word16) Word16 { return x - y }
func (x Word16) Xor(y Word16) Word16 { return x ^ y }
func (x Word16) RotateLeft(k uint) Word16 { return Word16(bits.RotateLeft16(uint16(x), int(k))) }
func (x Word16) RotateRight(k uint) Word16 { return Word16(bits.RotateLeft16(uint16(x), -int(k))) }
func (x Word16) Low() uint { return uint(x) }
func (x Word32) Add(y Word32) Word32 { return x + y }
func (x Word32) Sub(y Word32) Word32 { return x - y }
func (x Word32) Xor(y Word32) Word32 { return x ^ y }
func (x Word32) RotateLeft(k uint) Word32 { return Word32(bits.RotateLeft32(uint32(x), int(k))) }
func (x Word32) RotateRight(k uint) Word32 { return Word32(bits.RotateLeft32(uint32(x), -int(k))) }
func (x Word32) Low() uint { return uint(x) }
func (x Word64) Add(y Word64) Word64 { return x + y }
func (x Word64) Sub(y Word64) Word64 { return x - y }
func (x Word64) Xor(y Word64) Word64 { return x ^ y }
func (x Word64) RotateLeft(k uint) Word64 { return Word64(bits.RotateLeft64(uint64(x), int(k))) }
func (x Word64) RotateRight(k uint) Word64 { return Word64(bits.RotateLeft64(uint64(x), -int(k))) }
func (x Word64) Low() uint { return uint(x) }

func (x Word128) Add(y Word128) Word128 { return Word128{x.AddWrap(y.Uint128)} }
func (x Word128) Sub(y Word128) Word128 { return Word128{x.SubWrap(y.Uint128)} }
func (x Word128) Xor(y Word128) Word128 { return Word128{x.Uint128.Xor(y.Uint128)} }
func (x Word128) RotateLeft(k uint) Word128 {
	return Word128{x.Uint128.RotateLeft(int(k))}
}
func (x Word128) RotateRight(k uint) Word128 {
	return Word128{x.Uint128.RotateRight(int(k))}
}
func (x Word128) Low() uint { return uint(x.Lo) }

// NewWord128 builds a 128-bit word from its two 64-bit halves.
func NewWord128(lo, hi uint64) Word128 { return Word128{uint128.New(lo, hi)} }

// WordConfig holds everything that depends on the word width w: the sizes,
// the magic constants and the little-endian codec. Configs are immutable and
// shared; use the predefined W8 .. W128 values.
type WordConfig[W Word[W]] struct {
	Name  string
	Bits  int
	Bytes int
	P     W // Odd((e-2)*2^w)
	Q     W // Odd((phi-1)*2^w)

	mask     uint
	load     func([]byte) W
	store    func([]byte, W)
	fromByte func(byte) W
}

var (
	W8 = mustWordConfig("RC5-8", 8, Word8(0xB7), Word8(0x9F),
		func(b []byte) Word8 { return Word8(b[0]) },
		func(b []byte, w Word8) { b[0] = byte(w) },
		func(b byte) Word8 { return Word8(b) })

	W16 = mustWordConfig("RC5-16", 16, Word16(0xB7E1), Word16(0x9E37),
		func(b []byte) Word16 { return Word16(binary.LittleEndian.Uint16(b)) },
		func(b []byte, w Word16) { binary.LittleEndian.PutUint16(b, uint16(w)) },
		func(b byte) Word16 { return Word16(b) })

	W32 = mustWordConfig("RC5-32", 32, Word32(0xB7E15163), Word32(0x9E3779B9),
		func(b []byte) Word32 { return Word32(binary.LittleEndian.Uint32(b)) },
		func(b []byte, w Word32) { binary.LittleEndian.PutUint32(b, uint32(w)) },
		func(b byte) Word32 { return Word32(b) })

	W64 = mustWordConfig("RC5-64", 64, Word64(0xB7E151628AED2A6B), Word64(0x9E3779B97F4A7C15),
		func(b []byte) Word64 { return Word64(binary.LittleEndian.Uint64(b)) },
		func(b []byte, w Word64) { binary.LittleEndian.PutUint64(b, uint64(w)) },
		func(b byte) Word64 { return Word64(b) })

	W128 = mustWordConfig("RC5-128", 128,
		NewWord128(0xBF7158809CF4F3C7, 0xB7E151628AED2A6A),
		NewWord128(0xF39CC0605CEDC835, 0x9E3779B97F4A7C15),
		func(b []byte) Word128 { return Word128{uint128.FromBytes(b)} },
		func(b []byte, w Word128) { w.PutBytes(b) },
		func(b byte) Word128 { return Word128{uint128.From64(uint64(b))} })
)

func newWordConfig[W Word[W]](name string, wordBits int, p, q W,
	load func([]byte) W, store func([]byte, W), fromByte func(byte) W) (*WordConfig[W], error) {
	// Rotation amounts are reduced by masking, which only equals "mod w"
	// for power-of-two widths.
	if wordBits < 8 || wordBits > 128 || bits.OnesCount(uint(wordBits)) != 1 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedWordSize, wordBits)
	}
	return &WordConfig[W]{
		Name:     name,
		Bits:     wordBits,
		Bytes:    wordBits / 8,
		P:        p,
		Q:        q,
		mask:     uint(wordBits - 1),
		load:     load,
		store:    store,
		fromByte: fromByte,
	}, nil
}

func mustWordConfig[W Word[W]](name string, wordBits int, p, q W,
	load func([]byte) W, store func([]byte, W), fromByte func(byte) W) *WordConfig[W] {
	c, err := newWordConfig(name, wordBits, p, q, load, store, fromByte)
	if err != nil {
		panic(err)
	}
	return c
}

// BlockSize returns the size in bytes of a two-word block.
func (c *WordConfig[W]) BlockSize() int { return 2 * c.Bytes }

// FromLittleEndian decodes a word from exactly Bytes little-endian bytes.
func (c *WordConfig[W]) FromLittleEndian(b []byte) (W, error) {
	if len(b) != c.Bytes {
		var zero W
		return zero, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrBytesLengthMismatch, c.Name, c.Bytes, len(b))
	}
	return c.load(b), nil
}

// ToLittleEndian encodes w into a new Bytes long slice.
func (c *WordConfig[W]) ToLittleEndian(w W) []byte {
	b := make([]byte, c.Bytes)
	c.store(b, w)
	return b
}

// PutLittleEndian encodes w into the first Bytes bytes of dst.
func (c *WordConfig[W]) PutLittleEndian(dst []byte, w W) {
	c.store(dst[:c.Bytes], w)
}

// rotation reduces a data-dependent rotation amount modulo the word width.
func (c *WordConfig[W]) rotation(w W) uint {
	return w.Low() & c.mask
}
