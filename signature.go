package sm2

import (
	"encoding/asn1"
	"math/big"
)

// derSignature is the ASN.1 wire shape of a Signature: a SEQUENCE of two
// INTEGERs, the conventional framing for SM2/ECDSA-family signatures and
// the one both same-domain reference SM2 ports in this retrieval pack
// use (`asn1.Marshal(sm2Signature{R, S})` over big.Int fields).
type derSignature struct {
	R, S *big.Int
}

// Marshal encodes sig as a DER SEQUENCE { INTEGER r, INTEGER s }.
// math/big is used only at this boundary to drive encoding/asn1; the
// core protocol layer above never imports it.
func (sig Signature) Marshal() ([]byte, error) {
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	der := derSignature{
		R: new(big.Int).SetBytes(rBytes[:]),
		S: new(big.Int).SetBytes(sBytes[:]),
	}
	return asn1.Marshal(der)
}

// ParseSignature decodes a DER SEQUENCE { INTEGER r, INTEGER s } into a
// Signature.
func ParseSignature(data []byte) (Signature, error) {
	var der derSignature
	if _, err := asn1.Unmarshal(data, &der); err != nil {
		return Signature{}, err
	}
	if der.R.BitLen() > 256 || der.S.BitLen() > 256 {
		return Signature{}, ErrSignatureIntegerTooLarge
	}
	var r, s [32]byte
	der.R.FillBytes(r[:])
	der.S.FillBytes(s[:])
	return Signature{
		R: Int256FromBytes(r[:]),
		S: Int256FromBytes(s[:]),
	}, nil
}
