package sm2

import (
	"encoding/hex"
	"testing"
)

func TestSM3Abc(t *testing.T) {
	want := "66C7F0F462EEEDD9D1F2D46BDC10E4E24167C4875CF2F7A2297DA02B8F4BA8E0"
	got := Sum256([]byte("abc"))
	gotHex := hex.EncodeToString(got[:])
	if !equalFoldHex(gotHex, want) {
		t.Errorf("SM3(\"abc\") = %s, want %s", gotHex, want)
	}
}

func equalFoldHex(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'a' && ca <= 'z' {
			ca -= 'a' - 'A'
		}
		if cb >= 'a' && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func TestSM3EmptyMessage(t *testing.T) {
	h := NewSM3()
	sum := h.Sum(nil)
	if len(sum) != 32 {
		t.Fatalf("expected 32-byte digest, got %d bytes", len(sum))
	}
	// Calling Sum twice on the same unmodified context must return the
	// same digest: Sum is non-destructive.
	sum2 := h.Sum(nil)
	if hex.EncodeToString(sum) != hex.EncodeToString(sum2) {
		t.Error("Sum must be idempotent on an unmodified context")
	}
}

func TestSM3StreamingMatchesOneShot(t *testing.T) {
	msg := make([]byte, 200)
	for i := range msg {
		msg[i] = byte(i)
	}
	oneShot := Sum256(msg)

	h := NewSM3()
	h.Write(msg[:10])
	h.Write(msg[10:64])
	h.Write(msg[64:65])
	h.Write(msg[65:])
	var streamed [32]byte
	copy(streamed[:], h.Sum(nil))

	if streamed != oneShot {
		t.Error("streaming writes should produce the same digest as a single Write")
	}
}

func TestSM3BlockBoundary(t *testing.T) {
	// A message exactly one block long (64 bytes) exercises the bufLen==64
	// compress-then-reset path inside Write.
	msg := make([]byte, 64)
	for i := range msg {
		msg[i] = byte(i * 7)
	}
	h := NewSM3()
	h.Write(msg)
	digest1 := h.Sum(nil)

	h2 := NewSM3()
	for _, b := range msg {
		h2.Write([]byte{b})
	}
	digest2 := h2.Sum(nil)

	if hex.EncodeToString(digest1) != hex.EncodeToString(digest2) {
		t.Error("byte-at-a-time writes should match a single bulk write")
	}
}

func TestSM3Reset(t *testing.T) {
	h := NewSM3()
	h.Write([]byte("abc"))
	h.Reset()
	h.Write([]byte("abc"))
	got := h.Sum(nil)
	want := Sum256([]byte("abc"))
	if hex.EncodeToString(got) != hex.EncodeToString(want[:]) {
		t.Error("Reset should return the context to its fresh state")
	}
}

func TestSM3SizeAndBlockSize(t *testing.T) {
	h := NewSM3()
	if h.Size() != 32 {
		t.Errorf("Size() = %d, want 32", h.Size())
	}
	if h.BlockSize() != 64 {
		t.Errorf("BlockSize() = %d, want 64", h.BlockSize())
	}
}
