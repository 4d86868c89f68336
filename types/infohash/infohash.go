package infohash

import (
	"crypto/sha1"
	"encoding"
	"encoding/hex"
	"fmt"

	"github.com/multiformats/go-multihash"
)

const Size = sha1.Size

// 20-byte SHA1 hash of a canonically encoded info dict. This is the v1 infohash, and the content
// identifier for the torrent.
type T [Size]byte

var _ fmt.Formatter = (*T)(nil)

// Every verb renders hex.
func (t T) Format(f fmt.State, c rune) {
	f.Write([]byte(t.HexString()))
}

func (t T) Bytes() []byte {
	return t[:]
}

func (t T) AsString() string {
	return string(t[:])
}

func (t T) String() string {
	return t.HexString()
}

// 40 lowercase hex characters.
func (t T) HexString() string {
	return hex.EncodeToString(t[:])
}

func (t T) IsZero() bool {
	return t == T{}
}

func (t *T) FromHexString(s string) (err error) {
	if len(s) != 2*Size {
		err = fmt.Errorf("hash hex string has bad length: %d", len(s))
		return
	}
	n, err := hex.Decode(t[:], []byte(s))
	if err != nil {
		return
	}
	if n != Size {
		panic(n)
	}
	return
}

var (
	_ encoding.TextUnmarshaler = (*T)(nil)
	_ encoding.TextMarshaler   = T{}
)

func (t *T) UnmarshalText(b []byte) error {
	return t.FromHexString(string(b))
}

func (t T) MarshalText() (text []byte, err error) {
	return []byte(t.HexString()), nil
}

func FromHexString(s string) (h T) {
	err := h.FromHexString(s)
	if err != nil {
		panic(err)
	}
	return
}

func HashBytes(b []byte) (ret T) {
	return sha1.Sum(b)
}

// The hash framed as a multihash (code sha1, length 20), for systems that address content that way.
func ToMultihash(t T) (multihash.Multihash, error) {
	return multihash.Encode(t[:], multihash.SHA1)
}
