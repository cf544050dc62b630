package sm2

import "sync"

// AffinePoint is a curve point in affine coordinates (x, y), each in
// [0, p). It is the serialization and equality form; arithmetic is done
// in Jacobian coordinates instead (see JacobianPoint).
type AffinePoint struct {
	X, Y Int256
}

// JacobianPoint is a curve point in Jacobian projective coordinates
// (X, Y, Z). When Infinity is false it represents the affine point
// (X*Z^-2 mod p, Y*Z^-3 mod p). Distinct Jacobian triples can represent
// the same affine point, so equality must go through ToAffine first.
type JacobianPoint struct {
	X, Y, Z   Int256
	Infinity  bool
}

// CurveParams is the fixed SM2 domain-parameter sextuple (p, a, b, n, G,
// h). It is created once and is thereafter immutable, safe to share
// across goroutines read-only — the same contract the teacher's package-
// level Generator/GeneratorX/GeneratorY enjoy once init() has run.
type CurveParams struct {
	P Int256 // field prime
	A Int256 // curve coefficient a
	B Int256 // curve coefficient b
	N Int256 // group order
	G JacobianPoint
	H uint64 // cofactor, always 1 for SM2
}

func hexTo256(s string) Int256 {
	b := mustDecodeHex32(s)
	return Int256FromBytes(b[:])
}

var (
	defaultCurve     CurveParams
	defaultCurveOnce sync.Once
)

// DefaultCurve returns the standard SM2 recommended domain parameters,
// initialized lazily and exactly once — the same idiom the teacher uses
// for its package-level tagged-hash prefix cache in hash.go, applied here
// instead of the original reference's process-wide
// `static sm2_curve_group group; static int group_inited;` pair.
func DefaultCurve() *CurveParams {
	defaultCurveOnce.Do(func() {
		defaultCurve = CurveParams{
			P: hexTo256("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFF"),
			A: hexTo256("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF00000000FFFFFFFFFFFFFFFC"),
			B: hexTo256("28E9FA9E9D9F5E344D5A9E4BCF6509A7F39789F515AB8F92DDBCBD414D940E93"),
			N: hexTo256("FFFFFFFEFFFFFFFFFFFFFFFFFFFFFFFF7203DF6B21C6052B53BBF40939D54123"),
			H: 1,
		}
		defaultCurve.G = JacobianPoint{
			X: hexTo256("32C4AE2C1F1981195F9904466A39C9948FE30BBFF2660BE1715A4589334C74C7"),
			Y: hexTo256("BC3736A2F4F6779C59BDCEE36B692153D0A9877CC62A474002DF32E52139F0A0"),
			Z: NewInt256FromUint64(1),
		}
	})
	return &defaultCurve
}

// IsInfinity reports whether p represents the point at infinity.
func (p JacobianPoint) IsInfinity() bool { return p.Infinity }

// Double computes 2*p on the curve defined by cp, using SM2's own
// domain parameter a = p-3, the special-a formula ec.c's ec_double uses:
//
//	M  = 3*(X-Z^2)*(X+Z^2)
//	S  = 4*X*Y^2
//	X' = M^2 - 2*S
//	Y' = M*(S-X') - 8*Y^4
//	Z' = 2*Y*Z
func (cp *CurveParams) Double(p JacobianPoint) JacobianPoint {
	if p.Infinity {
		return p
	}
	P := cp.P
	z2 := ModSqr(p.Z, P)
	xMz2 := ModSub(p.X, z2, P)
	xPz2 := ModAdd(p.X, z2, P)
	m := ModMul(xMz2, xPz2, P)
	m = ModAdd(m, ModAdd(m, m, P), P) // 3*(X-Z^2)*(X+Z^2)

	y2 := ModSqr(p.Y, P)
	xy2 := ModMul(p.X, y2, P)
	s := ModMul(NewInt256FromUint64(4), xy2, P)

	m2 := ModSqr(m, P)
	twoS := ModAdd(s, s, P)
	x3 := ModSub(m2, twoS, P)

	y4 := ModSqr(y2, P)
	eightY4 := ModMul(NewInt256FromUint64(8), y4, P)
	sMx3 := ModSub(s, x3, P)
	y3 := ModSub(ModMul(m, sMx3, P), eightY4, P)

	z3 := ModMul(NewInt256FromUint64(2), ModMul(p.Y, p.Z, P), P)

	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

// Add computes p+q on the curve defined by cp.
func (cp *CurveParams) Add(p, q JacobianPoint) JacobianPoint {
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}
	P := cp.P

	z1z1 := ModSqr(p.Z, P)
	z2z2 := ModSqr(q.Z, P)
	u1 := ModMul(p.X, z2z2, P)
	u2 := ModMul(q.X, z1z1, P)
	s1 := ModMul(p.Y, ModMul(q.Z, z2z2, P), P)
	s2 := ModMul(q.Y, ModMul(p.Z, z1z1, P), P)

	h := ModSub(u2, u1, P)
	r := ModSub(s2, s1, P)

	if h.IsZero() {
		if r.IsZero() {
			return cp.Double(p)
		}
		return JacobianPoint{Infinity: true}
	}

	h2 := ModSqr(h, P)
	h3 := ModMul(h2, h, P)
	u1h2 := ModMul(u1, h2, P)

	r2 := ModSqr(r, P)
	x3 := ModSub(ModSub(r2, h3, P), ModAdd(u1h2, u1h2, P), P)
	y3 := ModSub(ModMul(r, ModSub(u1h2, x3, P), P), ModMul(s1, h3, P), P)
	z3 := ModMul(ModMul(p.Z, q.Z, P), h, P)

	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

// ScalarMul computes [k]p via binary double-and-add, scanning k's bits
// from least significant to most significant across all 256 bits. This
// spec does not require a constant-time ladder; none is implemented.
func (cp *CurveParams) ScalarMul(k Int256, p JacobianPoint) JacobianPoint {
	q := JacobianPoint{Infinity: true}
	t := p
	for i := 0; i < 256; i++ {
		word := i / 32
		bit := uint(i % 32)
		if (k.Limbs[word]>>bit)&1 != 0 {
			q = cp.Add(q, t)
		}
		t = cp.Double(t)
	}
	return q
}

// ToAffine converts a non-infinity Jacobian point to affine form.
// Infinity maps to the sentinel (0, 0), which is never a point on the
// curve and must not be treated as a valid affine point by callers.
func (cp *CurveParams) ToAffine(p JacobianPoint) AffinePoint {
	if p.Infinity {
		return AffinePoint{}
	}
	P := cp.P
	zInv := ModInverse(p.Z, P)
	zInv2 := ModSqr(zInv, P)
	zInv3 := ModMul(zInv2, zInv, P)
	return AffinePoint{
		X: ModMul(p.X, zInv2, P),
		Y: ModMul(p.Y, zInv3, P),
	}
}

// FromAffine lifts an affine point into Jacobian coordinates with Z=1.
func FromAffine(p AffinePoint) JacobianPoint {
	return JacobianPoint{X: p.X, Y: p.Y, Z: NewInt256FromUint64(1)}
}

// IsOnCurve reports whether the affine point satisfies y^2 = x^3 + ax +
// b (mod p). Used by Decrypt to validate an incoming C1, a check the
// original reference implementation omits.
func (cp *CurveParams) IsOnCurve(p AffinePoint) bool {
	P := cp.P
	lhs := ModSqr(p.Y, P)
	x3 := ModMul(ModSqr(p.X, P), p.X, P)
	ax := ModMul(cp.A, p.X, P)
	rhs := ModAdd(ModAdd(x3, ax, P), cp.B, P)
	return lhs.Equal(rhs)
}
