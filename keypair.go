package sm2

import (
	"crypto/rand"
	"errors"
	"io"
)

// ErrInvalidPrivateKey is returned when a private scalar is outside
// [1, n-2], including the d=n-1 edge case that the original reference
// silently let through into a degenerate (1+d) mod n = 0 during signing.
var ErrInvalidPrivateKey = errors.New("sm2: private key out of range [1, n-2]")

// KeyPair holds an SM2 private scalar and its corresponding public
// point, following the teacher's own "value type, explicit constructor"
// shape (eckey.go's ECKeyPairGenerate).
type KeyPair struct {
	D      Int256
	Public AffinePoint
}

// NewKeyPair derives the public point P = [d]G for a given private
// scalar d, rejecting any d outside [1, n-2].
func NewKeyPair(cp *CurveParams, d Int256) (KeyPair, error) {
	if d.IsZero() {
		return KeyPair{}, ErrInvalidPrivateKey
	}
	nMinus1, _ := Sub256(cp.N, NewInt256FromUint64(1))
	if Cmp256(d, nMinus1) >= 0 {
		return KeyPair{}, ErrInvalidPrivateKey
	}
	p := cp.ScalarMul(d, cp.G)
	return KeyPair{D: d, Public: cp.ToAffine(p)}, nil
}

// GenerateKeyPair draws a private scalar from r (crypto/rand.Reader in
// production) and retries until it lands in the valid range, following
// the teacher's own retry-loop idiom in eckey.go's ECSeckeyGenerate.
func GenerateKeyPair(cp *CurveParams, r io.Reader) (KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	for {
		var buf [32]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return KeyPair{}, err
		}
		d := Int256FromBytes(buf[:])
		kp, err := NewKeyPair(cp, d)
		if errors.Is(err, ErrInvalidPrivateKey) {
			continue
		}
		if err != nil {
			return KeyPair{}, err
		}
		return kp, nil
	}
}

// GenerateNonce draws a nonce k in [1, n-1] from r, for callers (the
// CLI, primarily) that need production randomness. The core protocol
// functions never call this themselves — they take k explicitly so test
// vectors reproduce, per this module's external-interfaces contract.
func GenerateNonce(cp *CurveParams, r io.Reader) (Int256, error) {
	if r == nil {
		r = rand.Reader
	}
	nMinus1, _ := Sub256(cp.N, NewInt256FromUint64(1))
	for {
		var buf [32]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Int256{}, err
		}
		k := Int256FromBytes(buf[:])
		if k.IsZero() || Cmp256(k, nMinus1) > 0 {
			continue
		}
		return k, nil
	}
}
