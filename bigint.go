package sm2

import (
	"crypto/subtle"
	"encoding/binary"
)

// Int256 is an unsigned 256-bit integer stored as eight 32-bit limbs in
// little-endian order: Limbs[0] is the least significant limb. Unlike the
// field elements in the teacher's secp256k1 layer, an Int256 carries no
// magnitude/normalized bookkeeping — every limb is always fully reduced
// into its 32 bits, so no extra normalization pass is ever required
// before a comparison or an equality check.
type Int256 struct {
	Limbs [8]uint32
}

// Int512 is the unsigned 512-bit product of two Int256 values. It exists
// solely as an intermediate between multiplication and modular reduction
// and is never retained across a call boundary.
type Int512 struct {
	Limbs [16]uint32
}

// Zero256 is the additive identity. Its use is purely documentary; the
// Go zero value of Int256 already satisfies this.
var Zero256 Int256

// NewInt256FromUint64 builds an Int256 from a small non-negative value.
func NewInt256FromUint64(v uint64) Int256 {
	var r Int256
	r.Limbs[0] = uint32(v)
	r.Limbs[1] = uint32(v >> 32)
	return r
}

// Int256FromBytes decodes 32 big-endian bytes into an Int256.
func Int256FromBytes(b []byte) Int256 {
	var r Int256
	if len(b) != 32 {
		panic("sm2: Int256FromBytes requires exactly 32 bytes")
	}
	for i := 0; i < 8; i++ {
		// Limb i covers bytes [32-4*(i+1), 32-4*i), big-endian within the limb.
		off := 32 - 4*(i+1)
		r.Limbs[i] = binary.BigEndian.Uint32(b[off : off+4])
	}
	return r
}

// Bytes encodes the Int256 as 32 big-endian bytes.
func (a Int256) Bytes() [32]byte {
	var out [32]byte
	for i := 0; i < 8; i++ {
		off := 32 - 4*(i+1)
		binary.BigEndian.PutUint32(out[off:off+4], a.Limbs[i])
	}
	return out
}

// IsZero reports whether a is the zero value.
func (a Int256) IsZero() bool {
	var acc uint32
	for _, w := range a.Limbs {
		acc |= w
	}
	return acc == 0
}

// Equal reports limb-wise equality in constant time.
func (a Int256) Equal(b Int256) bool {
	ab := a.Bytes()
	bb := b.Bytes()
	return subtle.ConstantTimeCompare(ab[:], bb[:]) == 1
}

// Cmp256 compares a and b from the most significant limb down, returning
// -1, 0, or +1.
func Cmp256(a, b Int256) int {
	for i := 7; i >= 0; i-- {
		if a.Limbs[i] > b.Limbs[i] {
			return 1
		}
		if a.Limbs[i] < b.Limbs[i] {
			return -1
		}
	}
	return 0
}

// Add256 computes r = a + b and returns the carry out of bit 256.
func Add256(a, b Int256) (r Int256, carry uint32) {
	var sum uint64
	for i := 0; i < 8; i++ {
		sum = uint64(a.Limbs[i]) + uint64(b.Limbs[i]) + uint64(carry)
		r.Limbs[i] = uint32(sum)
		carry = uint32(sum >> 32)
	}
	return r, carry
}

// Sub256 computes r = a - b and returns the borrow out of bit 256. When
// a < b, r holds the 256-bit two's-complement wraparound and borrow is 1.
func Sub256(a, b Int256) (r Int256, borrow uint32) {
	var diff uint64
	for i := 0; i < 8; i++ {
		diff = uint64(a.Limbs[i]) - uint64(b.Limbs[i]) - uint64(borrow)
		r.Limbs[i] = uint32(diff)
		borrow = uint32((diff >> 63) & 1)
	}
	return r, borrow
}

// Mul256 computes the full 512-bit product a*b via schoolbook
// multiplication.
//
// The outer-loop carry from each limb's inner pass does not necessarily
// die at limb i+8: it must keep propagating into limbs i+9, i+10, ...
// until a limb absorbs it without itself overflowing. Dropping this
// cascade silently truncates the high end of the product and is the
// single easiest mistake to make here.
func Mul256(a, b Int256) Int512 {
	var r Int512
	for i := 0; i < 8; i++ {
		var carry uint64
		for j := 0; j < 8; j++ {
			prod := uint64(a.Limbs[i])*uint64(b.Limbs[j]) + uint64(r.Limbs[i+j]) + carry
			r.Limbs[i+j] = uint32(prod)
			carry = prod >> 32
		}
		k := i + 8
		for carry > 0 && k < 16 {
			sum := uint64(r.Limbs[k]) + carry
			r.Limbs[k] = uint32(sum)
			carry = sum >> 32
			k++
		}
	}
	return r
}

// getBit512 returns bit index (0 = least significant) of a 512-bit value.
func getBit512(a Int512, idx int) uint32 {
	word := idx / 32
	if word >= 16 {
		return 0
	}
	return (a.Limbs[word] >> uint(idx%32)) & 1
}

// lshift1_256 shifts n left by one bit in place and returns the bit
// shifted out of the top.
func lshift1_256(n *Int256) uint32 {
	var carry uint32
	for i := 0; i < 8; i++ {
		next := n.Limbs[i] >> 31
		n.Limbs[i] = (n.Limbs[i] << 1) | carry
		carry = next
	}
	return carry
}

// Mod reduces a 512-bit value modulo a 256-bit modulus p using bitwise
// long division, scanning from the top bit of a down to the bottom.
//
// After r is shifted left, it may represent a value >= 2^256 that no
// longer fits the 256-bit limb array — the overflow bit disappears from
// the limbs entirely. Comparing the truncated r against p alone cannot
// detect this case, so the bit shifted out of the top on the previous
// step must also force a subtraction.
func Mod(a Int512, p Int256) Int256 {
	var r Int256
	for i := 511; i >= 0; i-- {
		carry := lshift1_256(&r)
		if getBit512(a, i) != 0 {
			r.Limbs[0] |= 1
		}
		if carry != 0 || Cmp256(r, p) >= 0 {
			r, _ = Sub256(r, p)
		}
	}
	return r
}

// ModAdd computes (a+b) mod p, assuming a, b < p.
func ModAdd(a, b, p Int256) Int256 {
	r, carry := Add256(a, b)
	if carry != 0 || Cmp256(r, p) >= 0 {
		r, _ = Sub256(r, p)
	}
	return r
}

// ModSub computes (a-b) mod p, assuming a, b < p.
func ModSub(a, b, p Int256) Int256 {
	r, borrow := Sub256(a, b)
	if borrow != 0 {
		r, _ = Add256(r, p)
	}
	return r
}

// ModMul computes (a*b) mod p.
func ModMul(a, b, p Int256) Int256 {
	return Mod(Mul256(a, b), p)
}

// ModSqr computes (a*a) mod p.
func ModSqr(a, p Int256) Int256 {
	return Mod(Mul256(a, a), p)
}

// ModExp computes base^exp mod m via left-to-right square-and-multiply,
// reducing after every multiplication.
func ModExp(base, exp, m Int256) Int256 {
	r := NewInt256FromUint64(1)
	b := base
	for i := 255; i >= 0; i-- {
		r = ModSqr(r, m)
		word := i / 32
		bit := uint(i % 32)
		if (exp.Limbs[word]>>bit)&1 != 0 {
			r = ModMul(r, b, m)
		}
	}
	return r
}

// ModInverse computes a^-1 mod m via Fermat's little theorem: a^(m-2).
//
// This only yields the correct inverse when m is prime; every call site
// in this module uses either the curve prime p or the curve order n,
// both of which are prime by construction of the SM2 domain parameters.
// Callers must not pass a composite modulus.
func ModInverse(a, m Int256) Int256 {
	two := NewInt256FromUint64(2)
	mMinus2, _ := Sub256(m, two)
	return ModExp(a, mMinus2, m)
}

// Clear overwrites a's limbs with zeros. Go gives no
// guarantee that this survives dead-store elimination across an
// optimizing compiler pass, but it matches the teacher's own
// best-effort `memclear` used throughout field.go/scalar.go/hash.go, and
// this suite's own non-goals explicitly exclude secure erase beyond
// best-effort.
func (a *Int256) Clear() {
	for i := range a.Limbs {
		a.Limbs[i] = 0
	}
}
