package sm2

import "encoding/hex"

// mustDecodeHex32 decodes a 64-character hex string into a 32-byte
// array. It panics on malformed input; every call site in this package
// passes a compile-time domain-parameter constant, never caller data.
func mustDecodeHex32(s string) [32]byte {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("sm2: invalid hex constant: " + err.Error())
	}
	if len(b) != 32 {
		panic("sm2: hex constant is not 32 bytes")
	}
	copy(out[:], b)
	return out
}
