package rc5

// Block is the two-word unit RC5 operates on, A and B.
type Block[W Word[W]] [2]W

// EncryptBlock runs the RC5 round function forward over one block:
//
//	A = A + S[0]
//	B = B + S[1]
//	for i = 1 to r:
//	    A = ((A xor B) <<< B) + S[2i]
//	    B = ((B xor A) <<< A) + S[2i+1]
//
// The rotation amounts depend on the data, so this is not constant time.
func (k *ExpandedKey[W]) EncryptBlock(blk Block[W]) Block[W] {
	s, wc := k.subkeys, k.word
	a := blk[0].Add(s[0])
	b := blk[1].Add(s[1])
	for i := 1; i <= k.Rounds(); i++ {
		a = a.Xor(b).RotateLeft(wc.rotation(b)).Add(s[2*i])
		b = b.Xor(a).RotateLeft(wc.rotation(a)).Add(s[2*i+1])
	}
	return Block[W]{a, b}
}

// DecryptBlock is the inverse of EncryptBlock, rounds applied from r down
// to 1.
func (k *ExpandedKey[W]) DecryptBlock(blk Block[W]) Block[W] {
	s, wc := k.subkeys, k.word
	a, b := blk[0], blk[1]
	for i := k.Rounds(); i >= 1; i-- {
		b = b.Sub(s[2*i+1]).RotateRight(wc.rotation(a)).Xor(a)
		a = a.Sub(s[2*i]).RotateRight(wc.rotation(b)).Xor(b)
	}
	b = b.Sub(s[1])
	a = a.Sub(s[0])
	return Block[W]{a, b}
}
