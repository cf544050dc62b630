package sm2

import (
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"math/big"
	"time"
)

// OID constants used by the certificate's SignatureAlgorithm and
// SubjectPublicKeyInfo fields, taken from the original reference's
// sm2_cert.c (GM/T 0006-2012's OID arcs under 1.2.156.10197).
var (
	oidSM2WithSM3   = asn1.ObjectIdentifier{1, 2, 156, 10197, 1, 501}
	oidECPublicKey  = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSM2Curve     = asn1.ObjectIdentifier{1, 2, 156, 10197, 1, 301}
)

type tbsCertificate struct {
	Version            int `asn1:"explicit,tag:0"`
	SerialNumber       *big.Int
	SignatureAlgorithm pkix
	Issuer             name
	Validity           validity
	Subject            name
	PublicKeyInfo      publicKeyInfo
}

type pkix struct {
	Algorithm asn1.ObjectIdentifier
}

// name is a minimal name: a SEQUENCE holding only the common name as a
// UTF8String, with no attribute OID. It is enough for the self-signed
// demo/test trust anchor this feature targets; it is not an X.509
// RDNSequence.
type name struct {
	CommonName string `asn1:"utf8"`
}

type validity struct {
	NotBefore time.Time
	NotAfter  time.Time
}

type publicKeyInfo struct {
	Algorithm publicKeyAlgorithm
	PublicKey asn1.BitString
}

type publicKeyAlgorithm struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

type certificate struct {
	TBSCertificate     tbsCertificate
	SignatureAlgorithm pkix
	SignatureValue     asn1.BitString
}

// ErrCertificateSubjectEmpty is returned when CreateSelfSignedCertificate
// is asked to certify an empty subject name.
var ErrCertificateSubjectEmpty = errors.New("sm2: certificate subject must not be empty")

// uncompressedPoint serializes an affine point as 0x04 || x || y, the
// conventional X.509 SubjectPublicKeyInfo encoding for an EC point. This
// is the one place in this module that *does* include the leading 0x04
// prefix: it is a certificate field governed by RFC 5480, not the SM2
// ciphertext layout that §8 documents as intentionally prefix-less.
func uncompressedPoint(p AffinePoint) []byte {
	x := p.X.Bytes()
	y := p.Y.Bytes()
	out := make([]byte, 0, 65)
	out = append(out, 0x04)
	out = append(out, x[:]...)
	out = append(out, y[:]...)
	return out
}

// CreateSelfSignedCertificate builds a minimal self-signed certificate
// binding subject to pair.Public, signed by pair itself with nonce k,
// and returns the PEM encoding.
//
// This is a supplemented feature: the distilled spec names X.509/DER/PEM
// as out-of-scope external collaborators, but the original reference
// tool this suite was distilled from ships exactly this operation
// (sm2_create_cert_pem). Unlike that reference, which hand-rolls its own
// DER and Base64 encoders with a known imprecise-length bug, this uses
// stdlib encoding/asn1 and encoding/pem throughout.
func CreateSelfSignedCertificate(cp *CurveParams, subject string, pair KeyPair, notBefore, notAfter time.Time, k Int256) ([]byte, error) {
	if subject == "" {
		return nil, ErrCertificateSubjectEmpty
	}

	tbs := tbsCertificate{
		Version:      2, // v3
		SerialNumber: big.NewInt(1),
		SignatureAlgorithm: pkix{
			Algorithm: oidSM2WithSM3,
		},
		Issuer: name{CommonName: subject},
		Validity: validity{
			NotBefore: notBefore,
			NotAfter:  notAfter,
		},
		Subject: name{CommonName: subject},
		PublicKeyInfo: publicKeyInfo{
			Algorithm: publicKeyAlgorithm{
				Algorithm:  oidECPublicKey,
				Parameters: oidSM2Curve,
			},
			PublicKey: asn1.BitString{
				Bytes:     uncompressedPoint(pair.Public),
				BitLength: 65 * 8,
			},
		},
	}

	tbsDER, err := asn1.Marshal(tbs)
	if err != nil {
		return nil, err
	}

	sig, err := Sign(cp, pair, []byte(subject), tbsDER, k)
	if err != nil {
		return nil, err
	}
	sigDER, err := sig.Marshal()
	if err != nil {
		return nil, err
	}

	cert := certificate{
		TBSCertificate:     tbs,
		SignatureAlgorithm: pkix{Algorithm: oidSM2WithSM3},
		SignatureValue: asn1.BitString{
			Bytes:     sigDER,
			BitLength: len(sigDER) * 8,
		},
	}

	certDER, err := asn1.Marshal(cert)
	if err != nil {
		return nil, err
	}

	block := &pem.Block{Type: "CERTIFICATE", Bytes: certDER}
	return pem.EncodeToMemory(block), nil
}
