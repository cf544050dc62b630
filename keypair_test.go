package sm2

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestNewKeyPairRejectsZero(t *testing.T) {
	cp := DefaultCurve()
	if _, err := NewKeyPair(cp, Int256{}); err != ErrInvalidPrivateKey {
		t.Errorf("expected ErrInvalidPrivateKey for d=0, got %v", err)
	}
}

func TestNewKeyPairRejectsNMinusOne(t *testing.T) {
	cp := DefaultCurve()
	nMinus1, _ := Sub256(cp.N, NewInt256FromUint64(1))
	if _, err := NewKeyPair(cp, nMinus1); err != ErrInvalidPrivateKey {
		t.Errorf("expected ErrInvalidPrivateKey for d=n-1, got %v", err)
	}
}

func TestNewKeyPairAcceptsNMinusTwo(t *testing.T) {
	cp := DefaultCurve()
	nMinus2, _ := Sub256(cp.N, NewInt256FromUint64(2))
	if _, err := NewKeyPair(cp, nMinus2); err != nil {
		t.Errorf("d=n-2 should be accepted, got %v", err)
	}
}

func TestGenerateKeyPairProducesValidPoint(t *testing.T) {
	cp := DefaultCurve()
	kp, err := GenerateKeyPair(cp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if kp.D.IsZero() {
		t.Error("generated private key must not be zero")
	}
	if !cp.IsOnCurve(kp.Public) {
		t.Error("generated public key must lie on the curve")
	}
}

func TestGenerateNonceInRange(t *testing.T) {
	cp := DefaultCurve()
	for i := 0; i < 10; i++ {
		k, err := GenerateNonce(cp, rand.Reader)
		if err != nil {
			t.Fatalf("GenerateNonce: %v", err)
		}
		if k.IsZero() {
			t.Error("nonce must not be zero")
		}
		nMinus1, _ := Sub256(cp.N, NewInt256FromUint64(1))
		if Cmp256(k, nMinus1) > 0 {
			t.Error("nonce must not exceed n-1")
		}
	}
}

func TestGenerateKeyPairIsNotConstant(t *testing.T) {
	cp := DefaultCurve()
	kp1, err := GenerateKeyPair(cp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	kp2, err := GenerateKeyPair(cp, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	d1, d2 := kp1.D.Bytes(), kp2.D.Bytes()
	if bytes.Equal(d1[:], d2[:]) {
		t.Error("two independently generated key pairs should not collide")
	}
}
