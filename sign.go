package sm2

import "errors"

// Signature is an SM2 signature pair (r, s), each in [1, n-1].
type Signature struct {
	R, S Int256
}

// ErrNonceReuse is returned by Sign when the caller-supplied nonce
// yields r=0 or r+k=n. The spec requires a fresh k in this case rather
// than a silent retry, so the decision to draw a new k is left to the
// caller.
var ErrNonceReuse = errors.New("sm2: nonce unusable for this (d, message) pair, supply a fresh k")

func hashToInt(cp *CurveParams, digest [32]byte) Int256 {
	e := Int256FromBytes(digest[:])
	if Cmp256(e, cp.N) >= 0 {
		e, _ = Sub256(e, cp.N)
	}
	return e
}

// computeE computes e = SM3(ZA || M) as a 256-bit big-endian integer,
// per §4.7 step 1.
func computeE(cp *CurveParams, za [32]byte, msg []byte) Int256 {
	h := NewSM3()
	h.Write(za[:])
	h.Write(msg)
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return hashToInt(cp, digest)
}

// Sign produces an SM2 signature over msg under identity id and private
// key kp, using the caller-supplied nonce k.
//
// Computation order for s follows the spec precisely: invert (1+d)
// first, reduce r*d, then subtract from k (adding n on underflow) before
// the final multiply-and-reduce — not an algebraically equivalent
// reordering, to stay faithful to the reference computation.
func Sign(cp *CurveParams, kp KeyPair, id, msg []byte, k Int256) (Signature, error) {
	za, err := ComputeZA(cp, id, kp.Public)
	if err != nil {
		return Signature{}, err
	}
	e := computeE(cp, za, msg)

	if k.IsZero() || Cmp256(k, cp.N) >= 0 {
		return Signature{}, ErrNonceReuse
	}

	r1 := cp.ScalarMul(k, cp.G)
	aff := cp.ToAffine(r1)

	r := ModAdd(e, aff.X, cp.N)
	if r.IsZero() {
		return Signature{}, ErrNonceReuse
	}
	rPlusK, carry := Add256(r, k)
	if carry == 0 && rPlusK.Equal(cp.N) {
		return Signature{}, ErrNonceReuse
	}

	one := NewInt256FromUint64(1)
	nMinus1, _ := Sub256(cp.N, one)
	if Cmp256(kp.D, nMinus1) >= 0 {
		return Signature{}, ErrInvalidPrivateKey
	}
	onePlusD := ModAdd(one, kp.D, cp.N)
	inv := ModInverse(onePlusD, cp.N)

	rd := ModMul(r, kp.D, cp.N)
	kMinusRD := ModSub(k, rd, cp.N)
	s := ModMul(inv, kMinusRD, cp.N)

	return Signature{R: r, S: s}, nil
}

// Verify checks sig against msg under identity id and public key pub. It
// returns a plain accept/reject boolean — never the original C
// reference's inverted 0-success/1-failure integer.
func Verify(cp *CurveParams, pub AffinePoint, id, msg []byte, sig Signature) bool {
	one := NewInt256FromUint64(1)
	nMinus1, _ := Sub256(cp.N, one)
	if sig.R.IsZero() || Cmp256(sig.R, nMinus1) > 0 {
		return false
	}
	if sig.S.IsZero() || Cmp256(sig.S, nMinus1) > 0 {
		return false
	}

	za, err := ComputeZA(cp, id, pub)
	if err != nil {
		return false
	}
	e := computeE(cp, za, msg)

	t := ModAdd(sig.R, sig.S, cp.N)
	if t.IsZero() {
		return false
	}

	sG := cp.ScalarMul(sig.S, cp.G)
	tP := cp.ScalarMul(t, FromAffine(pub))
	point := cp.Add(sG, tP)
	if point.IsInfinity() {
		return false
	}
	aff := cp.ToAffine(point)

	r1 := ModAdd(e, aff.X, cp.N)
	return r1.Equal(sig.R)
}
