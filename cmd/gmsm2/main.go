// Command gmsm2 drives the SM2/SM3 suite from the shell: key generation,
// signing, verification, encryption, key agreement, and self-signed
// certificate issuance.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	sm2 "gmsm2.dev"
)

var debug bool

func main() {
	app := &cli.App{
		Name:  "gmsm2",
		Usage: "SM2/SM3 signing, encryption, and key agreement",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "dump parsed keys/points/signatures to stderr",
				Destination: &debug,
			},
		},
		Commands: []*cli.Command{
			keygenCommand,
			signCommand,
			verifyCommand,
			encryptCommand,
			decryptCommand,
			certCommand,
			exchangeCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dump(label string, v interface{}) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "%s:\n", label)
	spew.Fdump(os.Stderr, v)
}

var keygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "generate a new SM2 key pair",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "out", Usage: "write the private key hex to this file instead of stdout"},
	},
	Action: func(c *cli.Context) error {
		cp := sm2.DefaultCurve()
		kp, err := sm2.GenerateKeyPair(cp, nil)
		if err != nil {
			return err
		}
		dump("generated key pair", kp)

		d := kp.D.Bytes()
		x := kp.Public.X.Bytes()
		y := kp.Public.Y.Bytes()
		privHex := hex.EncodeToString(d[:])
		pubHex := "04" + hex.EncodeToString(x[:]) + hex.EncodeToString(y[:])

		if out := c.String("out"); out != "" {
			return os.WriteFile(out, []byte(privHex+"\n"), 0o600)
		}
		fmt.Printf("private: %s\n", privHex)
		fmt.Printf("public:  %s\n", pubHex)
		return nil
	},
}

func readKeyPair(path string) (sm2.KeyPair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return sm2.KeyPair{}, err
	}
	dBytes, err := decodeHexLine(raw)
	if err != nil {
		return sm2.KeyPair{}, err
	}
	if len(dBytes) != 32 {
		return sm2.KeyPair{}, errors.New("gmsm2: private key file must contain 32 bytes of hex")
	}
	d := sm2.Int256FromBytes(dBytes)
	return sm2.NewKeyPair(sm2.DefaultCurve(), d)
}

func readPublicKey(path string) (sm2.AffinePoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return sm2.AffinePoint{}, err
	}
	b, err := decodeHexLine(raw)
	if err != nil {
		return sm2.AffinePoint{}, err
	}
	if len(b) == 65 && b[0] == 0x04 {
		b = b[1:]
	}
	if len(b) != 64 {
		return sm2.AffinePoint{}, errors.New("gmsm2: public key file must contain an uncompressed point")
	}
	return sm2.AffinePoint{
		X: sm2.Int256FromBytes(b[:32]),
		Y: sm2.Int256FromBytes(b[32:]),
	}, nil
}

func decodeHexLine(raw []byte) ([]byte, error) {
	trimmed := trimSpace(raw)
	return hex.DecodeString(string(trimmed))
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

var signCommand = &cli.Command{
	Name:      "sign",
	Usage:     "sign a message with an SM2 private key",
	ArgsUsage: "MESSAGE",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "key", Required: true, Usage: "path to a hex-encoded private key"},
		&cli.StringFlag{Name: "id", Value: "ALICE123@YAHOO.COM", Usage: "signer identity string"},
	},
	Action: func(c *cli.Context) error {
		kp, err := readKeyPair(c.String("key"))
		if err != nil {
			return err
		}
		dump("loaded key pair", kp)

		cp := sm2.DefaultCurve()
		k, err := sm2.GenerateNonce(cp, nil)
		if err != nil {
			return err
		}
		msg := []byte(c.Args().First())
		sig, err := sm2.Sign(cp, kp, []byte(c.String("id")), msg, k)
		if err != nil {
			return err
		}
		der, err := sig.Marshal()
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(der))
		return nil
	},
}

var verifyCommand = &cli.Command{
	Name:      "verify",
	Usage:     "verify an SM2 signature",
	ArgsUsage: "MESSAGE",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "pub", Required: true, Usage: "path to a hex-encoded uncompressed public key"},
		&cli.StringFlag{Name: "id", Value: "ALICE123@YAHOO.COM", Usage: "signer identity string"},
		&cli.StringFlag{Name: "sig", Required: true, Usage: "DER signature, hex-encoded"},
	},
	Action: func(c *cli.Context) error {
		pub, err := readPublicKey(c.String("pub"))
		if err != nil {
			return err
		}
		sigBytes, err := hex.DecodeString(c.String("sig"))
		if err != nil {
			return err
		}
		sig, err := sm2.ParseSignature(sigBytes)
		if err != nil {
			return err
		}
		dump("parsed signature", sig)

		msg := []byte(c.Args().First())
		ok := sm2.Verify(sm2.DefaultCurve(), pub, []byte(c.String("id")), msg, sig)
		if !ok {
			fmt.Println("reject")
			os.Exit(1)
		}
		fmt.Println("accept")
		return nil
	},
}

var encryptCommand = &cli.Command{
	Name:      "encrypt",
	Usage:     "encrypt a message under an SM2 public key",
	ArgsUsage: "MESSAGE",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "pub", Required: true},
	},
	Action: func(c *cli.Context) error {
		pub, err := readPublicKey(c.String("pub"))
		if err != nil {
			return err
		}
		cp := sm2.DefaultCurve()
		k, err := sm2.GenerateNonce(cp, nil)
		if err != nil {
			return err
		}
		ct, err := sm2.Encrypt(cp, pub, []byte(c.Args().First()), k)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(ct))
		return nil
	},
}

var decryptCommand = &cli.Command{
	Name:      "decrypt",
	Usage:     "decrypt an SM2 ciphertext",
	ArgsUsage: "CIPHERTEXT_HEX",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "key", Required: true},
	},
	Action: func(c *cli.Context) error {
		kp, err := readKeyPair(c.String("key"))
		if err != nil {
			return err
		}
		ct, err := hex.DecodeString(c.Args().First())
		if err != nil {
			return err
		}
		msg, err := sm2.Decrypt(sm2.DefaultCurve(), kp, ct)
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
		return nil
	},
}

var exchangeCommand = &cli.Command{
	Name:  "exchange",
	Usage: "drive one side of SM2 key agreement against peer material supplied on the command line",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "self-key", Required: true, Usage: "path to this side's hex-encoded static private key"},
		&cli.StringFlag{Name: "self-id", Value: "ALICE123@YAHOO.COM", Usage: "this side's identity string"},
		&cli.StringFlag{Name: "peer-pub", Required: true, Usage: "path to the peer's hex-encoded static public key"},
		&cli.StringFlag{Name: "peer-id", Value: "BILL456@YAHOO.COM", Usage: "peer's identity string"},
		&cli.StringFlag{Name: "peer-ephemeral", Required: true, Usage: "path to the peer's hex-encoded ephemeral public point (R-bar)"},
		&cli.IntFlag{Name: "klen", Value: 16, Usage: "number of shared-key bytes to derive"},
	},
	Action: func(c *cli.Context) error {
		selfKP, err := readKeyPair(c.String("self-key"))
		if err != nil {
			return err
		}
		peerPub, err := readPublicKey(c.String("peer-pub"))
		if err != nil {
			return err
		}
		peerR, err := readPublicKey(c.String("peer-ephemeral"))
		if err != nil {
			return err
		}

		cp := sm2.DefaultCurve()
		selfEphemeral, err := sm2.GenerateNonce(cp, nil)
		if err != nil {
			return err
		}
		self := sm2.NewParty(cp, selfKP, []byte(c.String("self-id")), selfEphemeral)
		dump("self party", self)

		peer := sm2.Party{
			Static: sm2.KeyPair{Public: peerPub},
			ID:     []byte(c.String("peer-id")),
			R:      peerR,
		}

		key, confirm1, confirm2, err := sm2.Exchange(cp, self, peer, c.Int("klen"))
		if err != nil {
			return err
		}

		selfRx := self.R.X.Bytes()
		selfRy := self.R.Y.Bytes()
		fmt.Printf("self-ephemeral-pub: 04%s%s\n", hex.EncodeToString(selfRx[:]), hex.EncodeToString(selfRy[:]))
		fmt.Printf("key:      %s\n", hex.EncodeToString(key))
		fmt.Printf("confirm1: %s\n", hex.EncodeToString(confirm1[:]))
		fmt.Printf("confirm2: %s\n", hex.EncodeToString(confirm2[:]))
		return nil
	},
}

var certCommand = &cli.Command{
	Name:  "cert",
	Usage: "issue a self-signed certificate for an SM2 key pair",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "key", Required: true},
		&cli.StringFlag{Name: "subject", Required: true},
		&cli.IntFlag{Name: "days", Value: 365},
	},
	Action: func(c *cli.Context) error {
		kp, err := readKeyPair(c.String("key"))
		if err != nil {
			return err
		}
		cp := sm2.DefaultCurve()
		k, err := sm2.GenerateNonce(cp, nil)
		if err != nil {
			return err
		}
		notBefore := time.Now()
		notAfter := notBefore.AddDate(0, 0, c.Int("days"))
		pemBytes, err := sm2.CreateSelfSignedCertificate(cp, c.String("subject"), kp, notBefore, notAfter, k)
		if err != nil {
			return err
		}
		os.Stdout.Write(pemBytes)
		return nil
	},
}
