package sm2

import (
	"encoding/asn1"
	"math/big"
	"testing"
)

func TestSignatureMarshalRoundTrip(t *testing.T) {
	sig := Signature{
		R: mustHexInt(t, "40F1EC59F793D9F49E09DCEF49130D4194F79FB1EED2CAA55BACDB49C4E755D1"),
		S: mustHexInt(t, "6FC6DAC32C5D5CF10C77DFB20F7C2EB667A457872FB09EC56327A67EC7DEEBE7"),
	}
	der, err := sig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseSignature(der)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if !got.R.Equal(sig.R) || !got.S.Equal(sig.S) {
		t.Error("round trip through DER should preserve r and s")
	}
}

// TestSignatureMarshalHighBit exercises r/s values whose top byte has its
// high bit set, which ASN.1 INTEGER encoding must pad with a leading
// 0x00 to keep the value non-negative.
func TestSignatureMarshalHighBit(t *testing.T) {
	var r, s [32]byte
	r[0] = 0xFF
	s[0] = 0x80
	sig := Signature{R: Int256FromBytes(r[:]), S: Int256FromBytes(s[:])}
	der, err := sig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseSignature(der)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if !got.R.Equal(sig.R) || !got.S.Equal(sig.S) {
		t.Error("high-bit r/s values should round-trip through DER")
	}
}

// TestParseSignatureRejectsOversizedInteger feeds ParseSignature a DER
// SEQUENCE whose r exceeds 256 bits, the case math/big.Int.FillBytes
// would otherwise panic on.
func TestParseSignatureRejectsOversizedInteger(t *testing.T) {
	oversized := new(big.Int).Lsh(big.NewInt(1), 257)
	der, err := asn1.Marshal(derSignature{R: oversized, S: big.NewInt(1)})
	if err != nil {
		t.Fatalf("asn1.Marshal: %v", err)
	}
	if _, err := ParseSignature(der); err != ErrSignatureIntegerTooLarge {
		t.Errorf("expected ErrSignatureIntegerTooLarge, got %v", err)
	}
}

func TestSignatureMarshalSmallValues(t *testing.T) {
	sig := Signature{R: NewInt256FromUint64(1), S: NewInt256FromUint64(2)}
	der, err := sig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ParseSignature(der)
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if !got.R.Equal(sig.R) || !got.S.Equal(sig.S) {
		t.Error("small r/s values should round-trip through DER")
	}
}
