package sm2

import "testing"

func TestKDFDeterministic(t *testing.T) {
	z := []byte("shared secret material")
	k1 := make([]byte, 48)
	k2 := make([]byte, 48)
	if !KDF(k1, z) || !KDF(k2, z) {
		t.Fatal("KDF should not report all-zero output for this input")
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			t.Fatal("KDF should be deterministic for the same input and length")
		}
	}
}

func TestKDFDifferentLengthsAreConsistentPrefixes(t *testing.T) {
	z := []byte("another shared secret")
	short := make([]byte, 16)
	long := make([]byte, 32)
	if !KDF(short, z) {
		t.Fatal("unexpected all-zero output")
	}
	if !KDF(long, z) {
		t.Fatal("unexpected all-zero output")
	}
	for i := range short {
		if short[i] != long[i] {
			t.Error("KDF(16) should be a prefix of KDF(32) since the counter sequence is shared")
		}
	}
}

func TestKDFDifferentInputsDifferentOutputs(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	KDF(a, []byte("input-a"))
	KDF(b, []byte("input-b"))
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different KDF inputs should not produce identical output")
	}
}

func TestXorBytes(t *testing.T) {
	a := []byte{0xFF, 0x00, 0xAA}
	b := []byte{0x0F, 0xF0, 0x55}
	dst := make([]byte, 3)
	xorBytes(dst, a, b)
	want := []byte{0xF0, 0xF0, 0xFF}
	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("xorBytes[%d] = %#x, want %#x", i, dst[i], want[i])
		}
	}
}
