package sm2

import (
	"encoding/binary"
	"hash"
)

const (
	sm3BlockSize  = 64
	sm3Size       = 32
	sm3T1         = 0x79CC4519
	sm3T2         = 0x7A879D8A
)

// sm3IV is the SM3 initial chaining value.
var sm3IV = [8]uint32{
	0x7380166F, 0x4914B2B9, 0x172442D7, 0xDA8A0600,
	0xA96F30BC, 0x163138AA, 0xE38DEE4D, 0xB0FB0E4E,
}

// SM3 implements the SM3 cryptographic hash function as a streaming
// hash.Hash, the same surface the teacher wraps around sha256-simd in
// hash.go's SHA256 type.
type SM3 struct {
	digest [8]uint32
	buf    [sm3BlockSize]byte
	bufLen int
	total  uint64 // bytes absorbed, not counting padding
}

// NewSM3 returns a freshly initialized SM3 hash context.
func NewSM3() *SM3 {
	s := &SM3{}
	s.Reset()
	return s
}

// Reset returns the context to its fresh, just-initialized state.
func (s *SM3) Reset() {
	s.digest = sm3IV
	s.bufLen = 0
	s.total = 0
}

// Size returns the number of bytes Sum will append: 32.
func (s *SM3) Size() int { return sm3Size }

// BlockSize returns the hash's natural block size: 64.
func (s *SM3) BlockSize() int { return sm3BlockSize }

func rotl32(x uint32, n uint) uint32 {
	n %= 32
	return (x << n) | (x >> (32 - n))
}

func p0(x uint32) uint32 { return x ^ rotl32(x, 9) ^ rotl32(x, 17) }
func p1(x uint32) uint32 { return x ^ rotl32(x, 15) ^ rotl32(x, 23) }

func ff(j int, x, y, z uint32) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (x & z) | (y & z)
}

func gg(j int, x, y, z uint32) uint32 {
	if j < 16 {
		return x ^ y ^ z
	}
	return (x & y) | (^x & z)
}

// compress absorbs exactly one 64-byte block, following the message
// expansion and two-phase round structure of GB/T 32905-2016.
func (s *SM3) compress(block []byte) {
	var w [68]uint32
	var wp [64]uint32

	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for j := 16; j < 68; j++ {
		w[j] = p1(w[j-16]^w[j-9]^rotl32(w[j-3], 15)) ^ rotl32(w[j-13], 7) ^ w[j-6]
	}
	for j := 0; j < 64; j++ {
		wp[j] = w[j] ^ w[j+4]
	}

	a, b, c, d := s.digest[0], s.digest[1], s.digest[2], s.digest[3]
	e, f, g, h := s.digest[4], s.digest[5], s.digest[6], s.digest[7]

	for j := 0; j < 64; j++ {
		tj := uint32(sm3T1)
		if j >= 16 {
			tj = sm3T2
		}
		ss1 := rotl32(rotl32(a, 12)+e+rotl32(tj, uint(j%32)), 7)
		ss2 := ss1 ^ rotl32(a, 12)
		tt1 := ff(j, a, b, c) + d + ss2 + wp[j]
		tt2 := gg(j, e, f, g) + h + ss1 + w[j]
		d = c
		c = rotl32(b, 9)
		b = a
		a = tt1
		h = g
		g = rotl32(f, 19)
		f = e
		e = p0(tt2)
	}

	s.digest[0] ^= a
	s.digest[1] ^= b
	s.digest[2] ^= c
	s.digest[3] ^= d
	s.digest[4] ^= e
	s.digest[5] ^= f
	s.digest[6] ^= g
	s.digest[7] ^= h
}

// Write absorbs data into the hash state, satisfying io.Writer.
// Concurrent Write calls on the same context are forbidden, the same
// restriction stdlib's own hash.Hash implementations carry.
func (s *SM3) Write(p []byte) (n int, err error) {
	n = len(p)
	s.total += uint64(n)

	if s.bufLen > 0 {
		fill := sm3BlockSize - s.bufLen
		if fill > len(p) {
			fill = len(p)
		}
		copy(s.buf[s.bufLen:], p[:fill])
		s.bufLen += fill
		p = p[fill:]
		if s.bufLen == sm3BlockSize {
			s.compress(s.buf[:])
			s.bufLen = 0
		}
	}

	for len(p) >= sm3BlockSize {
		s.compress(p[:sm3BlockSize])
		p = p[sm3BlockSize:]
	}

	if len(p) > 0 {
		copy(s.buf[s.bufLen:], p)
		s.bufLen += len(p)
	}
	return n, nil
}

// Sum appends the 32-byte digest of a *copy* of the current state to b
// and returns the result, leaving the receiver unmodified — the same
// non-destructive contract crypto/sha256's exported Sum gives.
func (s *SM3) Sum(b []byte) []byte {
	clone := *s
	return clone.final(b)
}

func (s *SM3) final(b []byte) []byte {
	bitLen := s.total * 8
	var pad [sm3BlockSize * 2]byte
	pad[0] = 0x80
	padLen := 1
	if s.bufLen < sm3BlockSize-8 {
		padLen = sm3BlockSize - 8 - s.bufLen
	} else {
		padLen = sm3BlockSize*2 - 8 - s.bufLen
	}
	binary.BigEndian.PutUint64(pad[padLen:padLen+8], bitLen)

	s.Write(pad[:padLen+8])

	out := s.digest
	var digestBytes [sm3Size]byte
	for i, w := range out {
		binary.BigEndian.PutUint32(digestBytes[i*4:], w)
	}
	return append(b, digestBytes[:]...)
}

// Clear zeroes the hash context, best-effort, the way the teacher's own
// SHA256.Clear and HMACSHA256.Clear scrub their state in hash.go.
func (s *SM3) Clear() {
	s.digest = [8]uint32{}
	for i := range s.buf {
		s.buf[i] = 0
	}
	s.bufLen = 0
	s.total = 0
}

var _ hash.Hash = (*SM3)(nil)

// Sum256 is a convenience one-shot SM3 digest, the counterpart of
// crypto/sha256.Sum256.
func Sum256(data []byte) [32]byte {
	h := NewSM3()
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
