package rc5

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"testing"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func unhex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

// checkVector runs one known-answer vector in both directions.
func checkVector[W Word[W]](t *testing.T, word *WordConfig[W], rounds, keysize int, key, pt, ct []byte) {
	t.Helper()
	got, err := Encode(word, rounds, keysize, key, pt)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(got, ct) {
		t.Fatalf("ciphertext %X, want %X", got, ct)
	}
	back, err := Decode(word, rounds, keysize, key, ct)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(back, pt) {
		t.Fatalf("plaintext %X, want %X", back, pt)
	}
}

func TestRC5_8_12_4(t *testing.T) {
	checkVector(t, W8, 12, 4, seq(4), seq(2), unhex(t, "212A"))
}

func TestRC5_16_16_8(t *testing.T) {
	checkVector(t, W16, 16, 8, seq(8), seq(4), unhex(t, "23A8D72E"))
}

func TestRC5_32_20_16(t *testing.T) {
	checkVector(t, W32, 20, 16, seq(16), seq(8), unhex(t, "2A0EDC0E9431FF73"))
}

func TestRC5_64_24_24(t *testing.T) {
	checkVector(t, W64, 24, 24, seq(24), seq(16), unhex(t, "A46772820EDBCE0235ABEA32AE7178DA"))
}

func TestRC5_128_28_32(t *testing.T) {
	checkVector(t, W128, 28, 32, seq(32), seq(32),
		unhex(t, "ECA5910921A4F4CFDD7AD7AD20A1FCBA068EC7A7CD752D68FE914B7FE180B440"))
}

func TestRoundTripAllWidths(t *testing.T) {
	plaintext := make([]byte, 32*8)
	if _, err := rand.Read(plaintext); err != nil {
		t.Fatal(err)
	}
	for _, ws := range WordSizes {
		for _, rounds := range []int{0, 1, 12, 33} {
			for _, keysize := range []int{0, 1, 7, 16, 255} {
				key := make([]byte, keysize)
				if _, err := rand.Read(key); err != nil {
					t.Fatal(err)
				}
				p := Params{WordSize: ws, Rounds: rounds, KeySize: keysize}
				s, err := New(p, key)
				if err != nil {
					t.Fatalf("%s: New: %v", p, err)
				}
				ct, err := s.Encrypt(plaintext)
				if err != nil {
					t.Fatalf("%s: Encrypt: %v", p, err)
				}
				if len(ct) != len(plaintext) {
					t.Fatalf("%s: ciphertext length %d", p, len(ct))
				}
				pt, err := s.Decrypt(ct)
				if err != nil {
					t.Fatalf("%s: Decrypt: %v", p, err)
				}
				if !bytes.Equal(pt, plaintext) {
					t.Fatalf("%s: round trip mismatch", p)
				}
			}
		}
	}
}

func TestBlocksAreIndependent(t *testing.T) {
	ek, err := ExpandKey(DefaultConfig(), seq(16))
	if err != nil {
		t.Fatalf("ExpandKey: %v", err)
	}
	block := seq(8)
	one, _ := ek.Encrypt(block)
	two, _ := ek.Encrypt(append(append([]byte{}, block...), block...))
	if !bytes.Equal(two[:8], one) || !bytes.Equal(two[8:], one) {
		t.Fatalf("identical blocks should encrypt identically: %X vs %X", one, two)
	}
}

func TestEncryptEmptyInput(t *testing.T) {
	ek, _ := ExpandKey(DefaultConfig(), seq(16))
	out, err := ek.Encrypt(nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("Encrypt(nil) = %X, %v", out, err)
	}
}

func TestBlockSizeMismatch(t *testing.T) {
	s, err := New(Params{WordSize: 64, Rounds: 12, KeySize: 16}, seq(16))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, n := range []int{1, 8, 15, 17, 31} {
		if _, err := s.Encrypt(make([]byte, n)); !errors.Is(err, ErrPlaintextBlockSizeMismatch) {
			t.Errorf("Encrypt(%d bytes): expected ErrPlaintextBlockSizeMismatch, got %v", n, err)
		}
		if _, err := s.Decrypt(make([]byte, n)); !errors.Is(err, ErrPlaintextBlockSizeMismatch) {
			t.Errorf("Decrypt(%d bytes): expected ErrPlaintextBlockSizeMismatch, got %v", n, err)
		}
	}
	_, err = s.Encrypt(make([]byte, 17))
	var bse *BlockSizeError
	if !errors.As(err, &bse) || bse.BlockSize != 16 || bse.Got != 17 {
		t.Fatalf("expected BlockSizeError{16, 17}, got %#v", err)
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		p    Params
		key  []byte
		want error
	}{
		{Params{WordSize: 24, Rounds: 4, KeySize: 0}, nil, ErrUnsupportedWordSize},
		{Params{WordSize: 32, Rounds: 300, KeySize: 16}, seq(16), ErrRoundsCountTooLarge},
		{Params{WordSize: 32, Rounds: 12, KeySize: 300}, seq(300), ErrKeySizeTooLarge},
		{Params{WordSize: 32, Rounds: 12, KeySize: 16}, seq(15), ErrWrongKeySize},
	}
	for _, tt := range tests {
		if _, err := New(tt.p, tt.key); !errors.Is(err, tt.want) {
			t.Errorf("New(%s): expected %v, got %v", tt.p, tt.want, err)
		}
	}
}

func TestNewCipher(t *testing.T) {
	tests := []struct {
		key, pt, ct string
	}{
		{"00000000000000000000000000000000", "0000000000000000", "21A5DBEE154B8F6D"},
		{"915F4619BE41B2516355A50110A9CE91", "21A5DBEE154B8F6D", "F7C013AC5B2B8952"},
	}
	for _, tt := range tests {
		block, err := NewCipher(unhex(t, tt.key))
		if err != nil {
			t.Fatalf("NewCipher: %v", err)
		}
		if block.BlockSize() != 8 {
			t.Fatalf("BlockSize = %d", block.BlockSize())
		}
		dst := make([]byte, 8)
		block.Encrypt(dst, unhex(t, tt.pt))
		if !bytes.Equal(dst, unhex(t, tt.ct)) {
			t.Errorf("key %s: got %X, want %s", tt.key, dst, tt.ct)
		}
		block.Decrypt(dst, dst)
		if !bytes.Equal(dst, unhex(t, tt.pt)) {
			t.Errorf("key %s: decrypt got %X, want %s", tt.key, dst, tt.pt)
		}
	}
	if _, err := NewCipher(make([]byte, 8)); !errors.Is(err, ErrWrongKeySize) {
		t.Fatalf("expected ErrWrongKeySize, got %v", err)
	}
}

func TestNewBlockPanicsOnShortInput(t *testing.T) {
	block, err := NewBlock(Params{WordSize: 16, Rounds: 16, KeySize: 8}, seq(8))
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on short block")
		}
	}()
	block.Encrypt(make([]byte, 4), make([]byte, 3))
}

func TestExpandedKeyConcurrentUse(t *testing.T) {
	ek, err := ExpandKey(DefaultConfig(), seq(16))
	if err != nil {
		t.Fatalf("ExpandKey: %v", err)
	}
	want, _ := ek.Encrypt(seq(64))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := ek.Encrypt(seq(64))
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(got, want) {
					errs <- errors.New("concurrent encryption diverged")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func BenchmarkEncrypt32(b *testing.B) {
	ek, _ := ExpandKey(DefaultConfig(), seq(16))
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ek.Encrypt(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncrypt128(b *testing.B) {
	cfg, _ := NewConfig(W128, 28, 32)
	ek, _ := ExpandKey(cfg, seq(32))
	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ek.Encrypt(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExpandKey(b *testing.B) {
	cfg := DefaultConfig()
	key := seq(16)
	for i := 0; i < b.N; i++ {
		if _, err := ExpandKey(cfg, key); err != nil {
			b.Fatal(err)
		}
	}
}
