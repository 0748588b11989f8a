// Package rc5 implements the RC5 block cipher (RC5-w/r/b) for word sizes of
// 8, 16, 32, 64 and 128 bits, 0 to 256 rounds and keys of 0 to 256 bytes.
//
// The engine is generic over the word type so each width gets its own
// arithmetic; New and NewBlock pick the width at run time. Buffers are
// processed block by block (ECB) and must be a whole number of blocks long,
// there is no padding and no chaining mode.
//
// RC5 rotates by data-dependent amounts, so neither the key schedule nor the
// round function runs in constant time.
package rc5
