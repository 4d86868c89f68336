package bencode

import (
	"fmt"
	"strconv"
)

// Nesting limit for lists and dicts. Recursion is otherwise bounded only by the input size.
const DefaultMaxDepth = 256

type decoder struct {
	data     []byte
	pos      int
	maxDepth int
}

func (d *decoder) syntaxError(offset int, err error, what string) *SyntaxError {
	return &SyntaxError{
		Offset: int64(offset),
		What:   what,
		Err:    err,
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// depth is the number of containers enclosing the value at d.pos.
func (d *decoder) value(depth int) (Value, error) {
	if d.pos >= len(d.data) {
		return nil, d.syntaxError(d.pos, ErrUnexpectedEOF, "expected value")
	}
	c := d.data[d.pos]
	switch {
	case c == 'i':
		return d.int()
	case isDigit(c):
		return d.string()
	case c == 'l':
		return d.list(depth)
	case c == 'd':
		return d.dict(depth)
	default:
		return nil, d.syntaxError(d.pos, ErrUnexpectedByte, fmt.Sprintf("%q is not a value type", c))
	}
}

// Reads digits (with an optional leading '-' if signed) from d.pos, and returns them without
// advancing. Leading zeros are rejected here, since they have no canonical form.
func (d *decoder) digits(signed bool) (start, end int, err error) {
	start = d.pos
	end = start
	if signed && end < len(d.data) && d.data[end] == '-' {
		end++
	}
	first := end
	for end < len(d.data) && isDigit(d.data[end]) {
		end++
	}
	if end == len(d.data) {
		err = ErrUnexpectedEOF
		return
	}
	switch {
	case end == first:
		err = fmt.Errorf("no digits")
	case d.data[first] == '0' && end-first > 1:
		err = fmt.Errorf("leading zero")
	case d.data[first] == '0' && first != start:
		err = fmt.Errorf("negative zero")
	}
	return
}

func (d *decoder) int() (Value, error) {
	offset := d.pos
	d.pos++ // 'i'
	start, end, err := d.digits(true)
	if err == ErrUnexpectedEOF {
		return nil, d.syntaxError(offset, ErrUnexpectedEOF, "unterminated integer")
	}
	if err != nil {
		return nil, d.syntaxError(offset, ErrInvalidInteger, err.Error())
	}
	if d.data[end] != 'e' {
		return nil, d.syntaxError(end, ErrInvalidInteger, fmt.Sprintf("unexpected %q in integer", d.data[end]))
	}
	i, err := strconv.ParseInt(bytesAsString(d.data[start:end]), 10, 64)
	if err != nil {
		return nil, d.syntaxError(offset, ErrInvalidInteger, err.Error())
	}
	d.pos = end + 1
	return Int(i), nil
}

func (d *decoder) string() (String, error) {
	offset := d.pos
	start, end, err := d.digits(false)
	if err == ErrUnexpectedEOF {
		return "", d.syntaxError(offset, ErrUnexpectedEOF, "unterminated string length")
	}
	if err != nil {
		return "", d.syntaxError(offset, ErrInvalidLength, err.Error())
	}
	if d.data[end] != ':' {
		return "", d.syntaxError(end, ErrInvalidLength, fmt.Sprintf("unexpected %q in string length", d.data[end]))
	}
	length, err := strconv.ParseInt(bytesAsString(d.data[start:end]), 10, 64)
	if err != nil {
		return "", d.syntaxError(offset, ErrInvalidLength, err.Error())
	}
	start = end + 1
	if remaining := int64(len(d.data) - start); length > remaining {
		return "", d.syntaxError(
			offset,
			ErrUnexpectedEOF,
			fmt.Sprintf("string length %d exceeds remaining %d bytes", length, remaining))
	}
	end = start + int(length)
	d.pos = end
	return String(bytesAsString(d.data[start:end])), nil
}

func (d *decoder) enter(depth int) error {
	if depth >= d.maxDepth {
		return d.syntaxError(d.pos, ErrMaxDepth, fmt.Sprintf("limit is %d", d.maxDepth))
	}
	return nil
}

func (d *decoder) list(depth int) (Value, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	offset := d.pos
	d.pos++ // 'l'
	l := List{}
	for {
		if d.pos >= len(d.data) {
			return nil, d.syntaxError(offset, ErrUnexpectedEOF, "unterminated list")
		}
		if d.data[d.pos] == 'e' {
			d.pos++
			return l, nil
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}
}

// Keys may arrive in any order, the Dict keeps them sorted. Duplicates are rejected since there's
// no way to choose between them.
func (d *decoder) dict(depth int) (Value, error) {
	if err := d.enter(depth); err != nil {
		return nil, err
	}
	offset := d.pos
	d.pos++ // 'd'
	dict := NewDict()
	for {
		if d.pos >= len(d.data) {
			return nil, d.syntaxError(offset, ErrUnexpectedEOF, "unterminated dict")
		}
		c := d.data[d.pos]
		if c == 'e' {
			d.pos++
			return dict, nil
		}
		if !isDigit(c) {
			return nil, d.syntaxError(d.pos, ErrNonStringKey, fmt.Sprintf("key starts with %q", c))
		}
		keyOffset := d.pos
		key, err := d.string()
		if err != nil {
			return nil, err
		}
		v, err := d.value(depth + 1)
		if err != nil {
			return nil, err
		}
		if dict.Set(string(key), v) {
			return nil, d.syntaxError(keyOffset, ErrDuplicateKey, strconv.Quote(string(key)))
		}
	}
}
