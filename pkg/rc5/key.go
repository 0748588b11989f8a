package rc5

// SecretKey is a raw key checked against its configuration. It is only
// needed until Expand has run.
type SecretKey[W Word[W]] struct {
	config Config[W]
	key    []byte
}

// NewSecretKey copies key after checking its length against cfg.KeySize.
func NewSecretKey[W Word[W]](cfg *Config[W], key []byte) (*SecretKey[W], error) {
	if len(key) != cfg.KeySize {
		return nil, &KeySizeError{Expected: cfg.KeySize, Got: len(key)}
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &SecretKey[W]{config: *cfg, key: k}, nil
}

// Config returns the parameterization the key was built for.
func (k *SecretKey[W]) Config() Config[W] { return k.config }

// Wipe zeroes the retained key bytes. Expanded keys are unaffected.
func (k *SecretKey[W]) Wipe() {
	clear(k.key)
}

// Expand runs the RC5 key schedule.
func (k *SecretKey[W]) Expand() *ExpandedKey[W] {
	wc := k.config.Word
	l := keyToWords(wc, k.key)
	s := initSubkeys(wc, k.config.Rounds)

	var a, b W
	i, j := 0, 0
	n := 3 * max(len(s), len(l))
	for step := 0; step < n; step++ {
		s[i] = s[i].Add(a).Add(b).RotateLeft(3)
		a = s[i]
		ab := a.Add(b)
		l[j] = l[j].Add(ab).RotateLeft(wc.rotation(ab))
		b = l[j]
		i = (i + 1) % len(s)
		j = (j + 1) % len(l)
	}

	clear(l)
	return &ExpandedKey[W]{word: wc, subkeys: s}
}

// ExpandKey validates key against cfg and expands it.
func ExpandKey[W Word[W]](cfg *Config[W], key []byte) (*ExpandedKey[W], error) {
	sk, err := NewSecretKey(cfg, key)
	if err != nil {
		return nil, err
	}
	defer sk.Wipe()
	return sk.Expand(), nil
}

// keyToWords packs the key into c = ceil(max(b,1)/u) words, last byte
// first, so that K[0] ends up in the low byte of L[0].
func keyToWords[W Word[W]](wc *WordConfig[W], key []byte) []W {
	c := (max(len(key), 1) + wc.Bytes - 1) / wc.Bytes
	l := make([]W, c)
	for i := len(key) - 1; i >= 0; i-- {
		idx := i / wc.Bytes
		l[idx] = l[idx].RotateLeft(8).Add(wc.fromByte(key[i]))
	}
	return l
}

// initSubkeys fills the key independent table S[0] = P, S[i] = S[i-1] + Q.
func initSubkeys[W Word[W]](wc *WordConfig[W], rounds int) []W {
	s := make([]W, 2*(rounds+1))
	s[0] = wc.P
	for i := 1; i < len(s); i++ {
		s[i] = s[i-1].Add(wc.Q)
	}
	return s
}

// ExpandedKey is the subkey table S. It is read-only after construction and
// may be shared between goroutines.
type ExpandedKey[W Word[W]] struct {
	word    *WordConfig[W]
	subkeys []W
}

// Rounds is derived from the table length.
func (k *ExpandedKey[W]) Rounds() int { return len(k.subkeys)/2 - 1 }

// Word returns the word configuration the table was expanded for.
func (k *ExpandedKey[W]) Word() *WordConfig[W] { return k.word }

// BlockSize returns the size in bytes of one block.
func (k *ExpandedKey[W]) BlockSize() int { return k.word.BlockSize() }

// Subkeys returns a copy of the subkey table.
func (k *ExpandedKey[W]) Subkeys() []W {
	s := make([]W, len(k.subkeys))
	copy(s, k.subkeys)
	return s
}

// Encrypt encrypts a buffer made of whole blocks, each independently (ECB).
// No padding is applied.
func (k *ExpandedKey[W]) Encrypt(plaintext []byte) ([]byte, error) {
	return k.process(plaintext, k.EncryptBlock)
}

// Decrypt is the inverse of Encrypt.
func (k *ExpandedKey[W]) Decrypt(ciphertext []byte) ([]byte, error) {
	return k.process(ciphertext, k.DecryptBlock)
}

func (k *ExpandedKey[W]) process(in []byte, fn func(Block[W]) Block[W]) ([]byte, error) {
	wc := k.word
	bs := wc.BlockSize()
	if len(in)%bs != 0 {
		return nil, &BlockSizeError{BlockSize: bs, Got: len(in)}
	}
	out := make([]byte, len(in))
	for off := 0; off < len(in); off += bs {
		a, err := wc.FromLittleEndian(in[off : off+wc.Bytes])
		if err != nil {
			return nil, err
		}
		b, err := wc.FromLittleEndian(in[off+wc.Bytes : off+bs])
		if err != nil {
			return nil, err
		}
		r := fn(Block[W]{a, b})
		wc.PutLittleEndian(out[off:], r[0])
		wc.PutLittleEndian(out[off+wc.Bytes:], r[1])
	}
	return out, nil
}

// Encode expands key for RC5-w/rounds/keysize and encrypts plaintext.
func Encode[W Word[W]](word *WordConfig[W], rounds, keysize int, key, plaintext []byte) ([]byte, error) {
	ek, err := expandFor(word, rounds, keysize, key)
	if err != nil {
		return nil, err
	}
	return ek.Encrypt(plaintext)
}

// Decode expands key for RC5-w/rounds/keysize and decrypts ciphertext.
func Decode[W Word[W]](word *WordConfig[W], rounds, keysize int, key, ciphertext []byte) ([]byte, error) {
	ek, err := expandFor(word, rounds, keysize, key)
	if err != nil {
		return nil, err
	}
	return ek.Decrypt(ciphertext)
}

func expandFor[W Word[W]](word *WordConfig[W], rounds, keysize int, key []byte) (*ExpandedKey[W], error) {
	cfg, err := NewConfig(word, rounds, keysize)
	if err != nil {
		return nil, err
	}
	return ExpandKey(cfg, key)
}
