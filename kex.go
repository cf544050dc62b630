package sm2

import "errors"

// ErrKeyAgreementFailed is returned when the shared point U computed
// during key agreement is the point at infinity.
var ErrKeyAgreementFailed = errors.New("sm2: key agreement produced point at infinity")

// Party bundles one side's static and ephemeral key-agreement material:
// static key pair, identity, and the ephemeral point/scalar pair
// (r-bar, R-bar) generated for this exchange.
type Party struct {
	Static   KeyPair
	ID       []byte
	Ephemeral Int256      // r-bar
	R         AffinePoint // R-bar = [r-bar]G in affine form
}

// NewParty builds a Party from a static key pair, identity, and
// caller-supplied ephemeral nonce r-bar (test vectors reproduce; the CLI
// draws this from crypto/rand for production use).
func NewParty(cp *CurveParams, static KeyPair, id []byte, ephemeral Int256) Party {
	r := cp.ScalarMul(ephemeral, cp.G)
	return Party{Static: static, ID: id, Ephemeral: ephemeral, R: cp.ToAffine(r)}
}

// Exchange computes the one-sided shared key material for self against
// other, producing klen bytes plus the two optional key-confirmation
// hashes (the 0x02 and 0x03 digests of §4.8). The same call with self and
// other swapped computes the same key and the same two confirmation
// hashes on the other party's side, because both parties' Z digests and
// ephemeral points enter the KDF input and the confirmation transcript in
// one shared order rather than self-first.
func Exchange(cp *CurveParams, self, other Party, klen int) (key []byte, confirm1, confirm2 [32]byte, err error) {
	za, err := ComputeZA(cp, self.ID, self.Static.Public)
	if err != nil {
		return nil, confirm1, confirm2, err
	}
	zb, err := ComputeZA(cp, other.ID, other.Static.Public)
	if err != nil {
		return nil, confirm1, confirm2, err
	}

	xBar1 := xBarOf(self.R.X)
	xBar2 := xBarOf(other.R.X)

	t := ModAdd(self.Static.D, ModMul(xBar1, self.Ephemeral, cp.N), cp.N)

	x2R := cp.ScalarMul(xBar2, FromAffine(other.R))
	sum := cp.Add(FromAffine(other.Static.Public), x2R)
	u := cp.ScalarMul(t, sum) // h=1 for SM2, so [h*t] degenerates to [t]
	if u.IsInfinity() {
		return nil, confirm1, confirm2, ErrKeyAgreementFailed
	}
	uAff := cp.ToAffine(u)

	uxBytes := uAff.X.Bytes()
	uyBytes := uAff.Y.Bytes()

	// Party carries no initiator/responder role, so both sides put the two
	// parties' material in one shared order: the party whose Z digest
	// compares lower (ties broken by R's x-coordinate) goes first.
	selfAff, otherAff := self.R, other.R
	if c := Cmp256(Int256FromBytes(za[:]), Int256FromBytes(zb[:])); c > 0 || (c == 0 && Cmp256(self.R.X, other.R.X) > 0) {
		za, zb = zb, za
		selfAff, otherAff = otherAff, selfAff
	}

	kdfInput := make([]byte, 0, 128)
	kdfInput = append(kdfInput, uxBytes[:]...)
	kdfInput = append(kdfInput, uyBytes[:]...)
	kdfInput = append(kdfInput, za[:]...)
	kdfInput = append(kdfInput, zb[:]...)

	key = make([]byte, klen)
	if !KDF(key, kdfInput) {
		return nil, confirm1, confirm2, ErrProtocolAbort
	}

	inner := NewSM3()
	inner.Write(uxBytes[:])
	inner.Write(za[:])
	inner.Write(zb[:])
	x1b := selfAff.X.Bytes()
	y1b := selfAff.Y.Bytes()
	x2b := otherAff.X.Bytes()
	y2b := otherAff.Y.Bytes()
	inner.Write(x1b[:])
	inner.Write(y1b[:])
	inner.Write(x2b[:])
	inner.Write(y2b[:])
	innerDigest := inner.Sum(nil)

	h1 := NewSM3()
	h1.Write([]byte{0x02})
	h1.Write(uyBytes[:])
	h1.Write(innerDigest)
	copy(confirm1[:], h1.Sum(nil))

	h2 := NewSM3()
	h2.Write([]byte{0x03})
	h2.Write(uyBytes[:])
	h2.Write(innerDigest)
	copy(confirm2[:], h2.Sum(nil))

	return key, confirm1, confirm2, nil
}

// xBarOf computes x-bar(x) = 2^127 + (x mod 2^127).
func xBarOf(x Int256) Int256 {
	var r Int256
	r.Limbs[0] = x.Limbs[0]
	r.Limbs[1] = x.Limbs[1]
	r.Limbs[2] = x.Limbs[2]
	r.Limbs[3] = x.Limbs[3] & 0x7FFFFFFF // keep bits 96..126, drop bit 127
	r.Limbs[3] |= 0x80000000             // force bit 127 (2^127) on
	return r
}
