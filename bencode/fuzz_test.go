package bencode

import (
	"testing"

	qt "github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

func Fuzz(f *testing.F) {
	for _, ret := range random_encode_tests {
		f.Add([]byte(ret.expected))
	}
	for _, ret := range random_decode_tests {
		f.Add([]byte(ret.data))
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		d, err := Unmarshal(b)
		if err != nil {
			t.Skip()
		}
		b0, err := Marshal(d)
		qt.Assert(t, qt.IsNil(err))
		d0, err := Unmarshal(b0)
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.CmpEquals(d0, d, cmp.Comparer(Equal)))
	})
}

// Canonical input survives a round trip byte for byte.
func FuzzCanonicalRoundTrip(f *testing.F) {
	for _, ret := range random_encode_tests {
		f.Add([]byte(ret.expected))
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		d, err := Unmarshal(b)
		if err != nil {
			t.Skip(err)
		}
		b0, err := Marshal(d)
		qt.Assert(t, qt.IsNil(err))
		d0, err := Unmarshal(b0)
		qt.Assert(t, qt.IsNil(err))
		b1, err := Marshal(d0)
		qt.Assert(t, qt.IsNil(err))
		qt.Check(t, qt.DeepEquals(b1, b0))
	})
}
