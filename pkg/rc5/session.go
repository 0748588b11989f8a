package rc5

import (
	"crypto/cipher"
	"fmt"
)

// Session encrypts and decrypts whole-block buffers under one expanded key.
// It hides the word type so the width can be chosen at run time.
type Session interface {
	Params() Params
	BlockSize() int
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

type session[W Word[W]] struct {
	*ExpandedKey[W]
	params Params
}

func (s *session[W]) Params() Params { return s.params }

func newSession[W Word[W]](word *WordConfig[W], p Params, key []byte) (Session, error) {
	cfg, err := NewConfig(word, p.Rounds, p.KeySize)
	if err != nil {
		return nil, err
	}
	ek, err := ExpandKey(cfg, key)
	if err != nil {
		return nil, err
	}
	return &session[W]{ExpandedKey: ek, params: p}, nil
}

// New validates p and key, expands the key once and returns a reusable
// session.
func New(p Params, key []byte) (Session, error) {
	switch p.WordSize {
	case 8:
		return newSession(W8, p, key)
	case 16:
		return newSession(W16, p, key)
	case 32:
		return newSession(W32, p, key)
	case 64:
		return newSession(W64, p, key)
	case 128:
		return newSession(W128, p, key)
	}
	return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedWordSize, p.WordSize)
}

type blockCipher[W Word[W]] struct {
	ek *ExpandedKey[W]
}

func (c *blockCipher[W]) BlockSize() int { return c.ek.BlockSize() }

func (c *blockCipher[W]) Encrypt(dst, src []byte) {
	c.crypt(dst, src, c.ek.EncryptBlock)
}

func (c *blockCipher[W]) Decrypt(dst, src []byte) {
	c.crypt(dst, src, c.ek.DecryptBlock)
}

func (c *blockCipher[W]) crypt(dst, src []byte, fn func(Block[W]) Block[W]) {
	wc := c.ek.word
	bs := wc.BlockSize()
	if len(src) < bs {
		panic("rc5: input not full block")
	}
	if len(dst) < bs {
		panic("rc5: output not full block")
	}
	r := fn(Block[W]{wc.load(src[:wc.Bytes]), wc.load(src[wc.Bytes:bs])})
	wc.store(dst[:wc.Bytes], r[0])
	wc.store(dst[wc.Bytes:bs], r[1])
}

// NewBlockCipher wraps an expanded key as a crypto/cipher.Block operating
// on a single block at a time.
func NewBlockCipher[W Word[W]](ek *ExpandedKey[W]) cipher.Block {
	return &blockCipher[W]{ek: ek}
}

// NewBlock returns a cipher.Block for the parameterization p.
func NewBlock(p Params, key []byte) (cipher.Block, error) {
	switch p.WordSize {
	case 8:
		return newBlock(W8, p, key)
	case 16:
		return newBlock(W16, p, key)
	case 32:
		return newBlock(W32, p, key)
	case 64:
		return newBlock(W64, p, key)
	case 128:
		return newBlock(W128, p, key)
	}
	return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedWordSize, p.WordSize)
}

func newBlock[W Word[W]](word *WordConfig[W], p Params, key []byte) (cipher.Block, error) {
	cfg, err := NewConfig(word, p.Rounds, p.KeySize)
	if err != nil {
		return nil, err
	}
	ek, err := ExpandKey(cfg, key)
	if err != nil {
		return nil, err
	}
	return NewBlockCipher(ek), nil
}

// NewCipher returns RC5-32/12/16 as a cipher.Block; key must be 16 bytes.
func NewCipher(key []byte) (cipher.Block, error) {
	return newBlock(W32, DefaultParams(), key)
}
