package metainfo

import (
	"errors"
	"fmt"

	"github.com/anacrolix/torrent-identify/bencode"
)

// Ways a well-formed bencode value can fail to be a metainfo. Test with errors.Is.
var (
	ErrNotADict       = errors.New("metainfo is not a dict")
	ErrMissingInfo    = errors.New("missing info dict")
	ErrInfoNotADict   = errors.New("info is not a dict")
	ErrMissingName    = errors.New("info dict has no name")
	ErrNameNotAString = errors.New("info name is not a string")
)

// Returned when a decoded value isn't shaped like a metainfo. Malformed bencode is reported as a
// *bencode.SyntaxError instead, so callers can tell the two apart with errors.As.
type Error struct {
	Kind error
	// What was found in place of the expected value. bencode.InvalidKind if it was absent.
	Got bencode.Kind
}

func (e *Error) Error() string {
	if e.Got == bencode.InvalidKind {
		return "metainfo: " + e.Kind.Error()
	}
	return fmt.Sprintf("metainfo: %v (got %v)", e.Kind, e.Got)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, got bencode.Value) *Error {
	return &Error{
		Kind: kind,
		Got:  bencode.KindOf(got),
	}
}
