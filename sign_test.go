package sm2

import (
	"encoding/hex"
	"testing"
)

func mustHexInt(t *testing.T, s string) Int256 {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return Int256FromBytes(b)
}

// TestSignVector fixes a private key, identity, message, and nonce
// (the same values original_source/src/main.c uses for its own
// signature self-check) and pins the resulting public key and (r, s) to
// values independently recomputed off the domain parameters in
// curve.go, so a future change to the signing or scalar-multiplication
// path that silently alters the output gets caught here.
func TestSignVector(t *testing.T) {
	cp := DefaultCurve()
	d := mustHexInt(t, "128B2FA8BD433C6C068C8D803DFF79792A519A55171B1B650C23661D15897263")
	kp, err := NewKeyPair(cp, d)
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}

	wantPx := mustHexInt(t, "d5548c7825cbb56150a3506cd57464af8a1ae0519dfaf3c58221dc810caf28dd")
	wantPy := mustHexInt(t, "921073768fe3d59ce54e79a49445cf73fed23086537027264d168946d479533e")
	if !kp.Public.X.Equal(wantPx) {
		t.Errorf("public key x mismatch:\n got %x\nwant %x", kp.Public.X.Bytes(), wantPx.Bytes())
	}
	if !kp.Public.Y.Equal(wantPy) {
		t.Errorf("public key y mismatch:\n got %x\nwant %x", kp.Public.Y.Bytes(), wantPy.Bytes())
	}

	k := mustHexInt(t, "6CB28D99385C175C94F94E934817663FC176D925DD72B727260DBAAE1FB2F96F")
	id := []byte("ALICE123@YAHOO.COM")
	msg := []byte("message digest")

	sig, err := Sign(cp, kp, id, msg, k)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	wantR := mustHexInt(t, "077ba4656350daeea3656ee042ddece22d5e8dca4882cb20080ad26e2cb62e9f")
	wantS := mustHexInt(t, "2bf329f4aff86eee0f924888dde20bf12a21b638a3b0f1fca70395c4be00d0ac")
	if !sig.R.Equal(wantR) {
		t.Errorf("r mismatch:\n got %x\nwant %x", sig.R.Bytes(), wantR.Bytes())
	}
	if !sig.S.Equal(wantS) {
		t.Errorf("s mismatch:\n got %x\nwant %x", sig.S.Bytes(), wantS.Bytes())
	}

	if !Verify(cp, kp.Public, id, msg, sig) {
		t.Error("Verify should accept the signature it just produced")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	cp := DefaultCurve()
	d := mustHexInt(t, "128B2FA8BD433C6C068C8D803DFF79792A519A55171B1B650C23661D15897263")
	kp, err := NewKeyPair(cp, d)
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}
	k := mustHexInt(t, "6CB28D99385C175C94F94E934817663FC176D925DD72B727260DBAAE1FB2F96F")
	id := []byte("ALICE123@YAHOO.COM")
	sig, err := Sign(cp, kp, id, []byte("message digest"), k)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if Verify(cp, kp.Public, id, []byte("a different message"), sig) {
		t.Error("Verify should reject a tampered message")
	}
}

func TestVerifyRejectsWrongIdentity(t *testing.T) {
	cp := DefaultCurve()
	d := mustHexInt(t, "128B2FA8BD433C6C068C8D803DFF79792A519A55171B1B650C23661D15897263")
	kp, err := NewKeyPair(cp, d)
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}
	k := mustHexInt(t, "6CB28D99385C175C94F94E934817663FC176D925DD72B727260DBAAE1FB2F96F")
	msg := []byte("message digest")
	sig, err := Sign(cp, kp, []byte("ALICE123@YAHOO.COM"), msg, k)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if Verify(cp, kp.Public, []byte("MALLORY@YAHOO.COM"), msg, sig) {
		t.Error("Verify should reject a signature checked under the wrong identity")
	}
}

func TestVerifyRejectsOutOfRangeSignature(t *testing.T) {
	cp := DefaultCurve()
	d := mustHexInt(t, "128B2FA8BD433C6C068C8D803DFF79792A519A55171B1B650C23661D15897263")
	kp, err := NewKeyPair(cp, d)
	if err != nil {
		t.Fatalf("NewKeyPair: %v", err)
	}
	bad := Signature{R: NewInt256FromUint64(0), S: NewInt256FromUint64(1)}
	if Verify(cp, kp.Public, []byte("ALICE123@YAHOO.COM"), []byte("message digest"), bad) {
		t.Error("Verify should reject r=0")
	}
}
