package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Identity is an opaque caller reference, typically a public-key-derived
// address. The engine never authenticates identities; it only compares them
// byte-for-byte against stored values as an authorization check.
type Identity string

// String returns the string representation of the identity.
func (i Identity) String() string {
	return string(i)
}

// IsNil returns true if the identity is empty.
func (i Identity) IsNil() bool {
	return i == ""
}

// ProductID identifies a certification offer. Product ids are allocated by a
// strictly increasing counter starting at 1; 0 is the reserved sentinel.
type ProductID uint64

// ParseProductID validates and returns a ProductID from its decimal form.
func ParseProductID(s string) (ProductID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid product id: %q", s)
	}
	return ProductID(n), nil
}

func (id ProductID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsNil returns true for the reserved zero sentinel.
func (id ProductID) IsNil() bool {
	return id == 0
}

// CertificateID identifies an escrow ledger record. Certificate ids are
// counted independently from product ids; callers must not assume any
// relationship between the two.
type CertificateID uint64

// ParseCertificateID validates and returns a CertificateID from its decimal form.
func ParseCertificateID(s string) (CertificateID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid certificate id: %q", s)
	}
	return CertificateID(n), nil
}

func (id CertificateID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsNil returns true for the reserved zero sentinel.
func (id CertificateID) IsNil() bool {
	return id == 0
}

// AssetRef names the fungible payment asset a product is priced in. It is
// opaque to the engine and resolved only by the asset ledger.
type AssetRef string

func (a AssetRef) String() string {
	return string(a)
}

// IsNil returns true if the asset reference is empty.
func (a AssetRef) IsNil() bool {
	return a == ""
}

// SerialFingerprint is a one-way hash of a device serial number. The raw
// serial never enters the engine; buyers submit the fingerprint instead.
type SerialFingerprint [32]byte

// FingerprintSerial hashes a raw serial number into a SerialFingerprint.
// Offered as a convenience for clients; the engine accepts any 32-byte value.
func FingerprintSerial(serial string) SerialFingerprint {
	return sha256.Sum256([]byte(serial))
}

// ParseSerialFingerprint decodes the hex wire form. A 0x prefix is accepted
// so fingerprints copied from hash tooling round-trip unchanged.
func ParseSerialFingerprint(s string) (SerialFingerprint, error) {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return SerialFingerprint{}, fmt.Errorf("serial fingerprint must be 32 hex-encoded bytes")
	}
	var fp SerialFingerprint
	copy(fp[:], raw)
	return fp, nil
}

func (fp SerialFingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// IsNil returns true for the all-zero fingerprint.
func (fp SerialFingerprint) IsNil() bool {
	return fp == SerialFingerprint{}
}
