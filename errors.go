package sm2

import "errors"

// Sentinel errors shared across the protocol layer. The arithmetic
// layer (bigint.go, curve.go) never returns an error: carry/borrow are
// numeric outputs, not failures, per this module's error-handling
// design. The sentinels below are the ones shared across files; errors
// tied to a single operation (ErrInvalidPrivateKey, ErrNonceReuse,
// ErrIdentityTooLong, ErrKeyAgreementFailed, ErrCertificateSubjectEmpty)
// are declared beside it, in the same errors.New("...")-per-condition
// style as the teacher's eckey.go.
var (
	// ErrProtocolAbort covers the KDF-produced-all-zero-output case
	// shared by key agreement and encryption/decryption, and, in
	// Encrypt/Decrypt, a shared point at infinity.
	ErrProtocolAbort = errors.New("sm2: protocol aborted, shared point at infinity or derived key material all-zero")

	// ErrPointNotOnCurve is returned when a parsed point fails the
	// curve-membership check. Decrypt performs this check on C1; the
	// original C reference omits it.
	ErrPointNotOnCurve = errors.New("sm2: point is not on the curve")

	// ErrIntegrityFailure is returned by Decrypt when the recomputed C3
	// digest does not match the ciphertext's C3 field.
	ErrIntegrityFailure = errors.New("sm2: ciphertext integrity check failed")

	// ErrCiphertextTooShort is returned when a ciphertext is too short
	// to contain the mandatory C1 (64 bytes) and C3 (32 bytes) fields.
	ErrCiphertextTooShort = errors.New("sm2: ciphertext shorter than C1||C3 minimum")

	// ErrSignatureIntegerTooLarge is returned by ParseSignature when a
	// DER-decoded r or s does not fit in 256 bits.
	ErrSignatureIntegerTooLarge = errors.New("sm2: signature integer exceeds 256 bits")
)
