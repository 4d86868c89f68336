package bencode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

//----------------------------------------------------------------------------
// Errors
//----------------------------------------------------------------------------

// Categories of malformed input. Every error returned by the decoding functions is a *SyntaxError
// that wraps one of these, or ErrUnusedTrailingBytes. Test with errors.Is.
var (
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrInvalidInteger = errors.New("invalid integer")
	ErrInvalidLength  = errors.New("invalid string length")
	ErrUnexpectedByte = errors.New("unexpected byte")
	ErrNonStringKey   = errors.New("dict key is not a string")
	ErrDuplicateKey   = errors.New("duplicate dict key")
	ErrMaxDepth       = errors.New("maximum nesting depth exceeded")
)

type SyntaxError struct {
	Offset int64 // location of the error
	What   string
	Err    error
}

func (e *SyntaxError) Error() string {
	s := "bencode: syntax error (offset: " +
		strconv.FormatInt(e.Offset, 10) +
		"): " + e.Err.Error()
	if e.What != "" {
		s += ": " + e.What
	}
	return s
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type ErrUnusedTrailingBytes struct {
	NumUnusedBytes int
}

func (me ErrUnusedTrailingBytes) Error() string {
	return fmt.Sprintf("%d unused trailing bytes", me.NumUnusedBytes)
}

// The encoder was given something that isn't one of the Value variants, such as a nil Value.
type MarshalTypeError struct {
	Value Value
}

func (this *MarshalTypeError) Error() string {
	return fmt.Sprintf("bencode: unsupported value: %T", this.Value)
}

//----------------------------------------------------------------------------
// Stateless interface
//----------------------------------------------------------------------------

// Returns the canonical encoding of v: minimal integers, dict keys in ascending order.
func Marshal(v Value) ([]byte, error) {
	return appendValue(nil, v)
}

func MustMarshal(v Value) []byte {
	b, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// Decodes exactly one value from data. Trailing bytes are an error. Strings in the result share
// memory with data, which must not be modified while the result is in use.
func Unmarshal(data []byte) (Value, error) {
	v, n, err := DecodeAt(data, 0)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, &SyntaxError{
			Offset: int64(n),
			Err:    ErrUnusedTrailingBytes{len(data) - n},
		}
	}
	return v, nil
}

// Decodes the value starting at offset, returning the number of bytes it occupies.
func DecodeAt(data []byte, offset int) (v Value, n int, err error) {
	if offset < 0 || offset > len(data) {
		err = &SyntaxError{
			Offset: int64(offset),
			What:   "offset out of range",
			Err:    ErrUnexpectedEOF,
		}
		return
	}
	d := decoder{data: data, pos: offset, maxDepth: DefaultMaxDepth}
	v, err = d.value(0)
	if err != nil {
		v = nil
		return
	}
	n = d.pos - offset
	return
}

//----------------------------------------------------------------------------
// Stateful interface
//----------------------------------------------------------------------------

// Decodes consecutive values from a buffer.
type Decoder struct {
	data []byte
	// Offset of the next value in the buffer.
	Offset int64
	// Containers nested deeper than this fail with ErrMaxDepth. DefaultMaxDepth if zero.
	MaxDepth int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Returns io.EOF when there is no more input.
func (me *Decoder) Decode() (Value, error) {
	if me.Offset < 0 {
		return nil, &SyntaxError{
			Offset: me.Offset,
			What:   "offset out of range",
			Err:    ErrUnexpectedEOF,
		}
	}
	if me.Offset >= int64(len(me.data)) {
		return nil, io.EOF
	}
	d := decoder{
		data:     me.data,
		pos:      int(me.Offset),
		maxDepth: me.MaxDepth,
	}
	if d.maxDepth <= 0 {
		d.maxDepth = DefaultMaxDepth
	}
	v, err := d.value(0)
	if err != nil {
		return nil, err
	}
	me.Offset = int64(d.pos)
	return v, nil
}

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w}
}

// Writes the canonical encoding of v. Nothing is written if v can't be encoded.
func (e *Encoder) Encode(v Value) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}
