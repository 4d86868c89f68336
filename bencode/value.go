package bencode

import (
	"github.com/tidwall/btree"
)

// Value is a decoded bencode value. It is one of Int, String, List or *Dict.
type Value interface {
	isValue()
}

type (
	Int    int64
	String string
	List   []Value
)

func (Int) isValue()    {}
func (String) isValue() {}
func (List) isValue()   {}
func (*Dict) isValue()  {}

// A bencode dictionary. Keys are unique and always iterated in ascending byte order, which is the
// order the canonical encoding requires, regardless of the order they were decoded in.
type Dict struct {
	m btree.Map[string, Value]
}

func NewDict() *Dict {
	return &Dict{}
}

func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return d.m.Len()
}

func (d *Dict) Get(key string) (v Value, ok bool) {
	if d == nil {
		return
	}
	return d.m.Get(key)
}

// Sets key to v, replacing any existing value. Returns true if the key was already present.
func (d *Dict) Set(key string, v Value) (replaced bool) {
	_, replaced = d.m.Set(key, v)
	return
}

func (d *Dict) Delete(key string) (deleted bool) {
	if d == nil {
		return
	}
	_, deleted = d.m.Delete(key)
	return
}

// Calls f for each entry in ascending key order until f returns false.
func (d *Dict) Scan(f func(key string, v Value) bool) {
	if d == nil {
		return
	}
	d.m.Scan(f)
}

func (d *Dict) Keys() (ret []string) {
	d.Scan(func(key string, _ Value) bool {
		ret = append(ret, key)
		return true
	})
	return
}

// Equal reports whether d and other hold equal values under the same keys. go-cmp picks this up.
func (d *Dict) Equal(other *Dict) bool {
	if d.Len() != other.Len() {
		return false
	}
	equal := true
	d.Scan(func(key string, v Value) bool {
		ov, ok := other.Get(key)
		equal = ok && Equal(v, ov)
		return equal
	})
	return equal
}

// Equal reports whether a and b are the same variant with equal contents.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Int:
		b, ok := b.(Int)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case *Dict:
		b, ok := b.(*Dict)
		return ok && a.Equal(b)
	default:
		return a == nil && b == nil
	}
}

type Kind uint8

const (
	InvalidKind Kind = iota
	IntKind
	StringKind
	ListKind
	DictKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "integer"
	case StringKind:
		return "string"
	case ListKind:
		return "list"
	case DictKind:
		return "dict"
	default:
		return "invalid"
	}
}

func KindOf(v Value) Kind {
	switch v.(type) {
	case Int:
		return IntKind
	case String:
		return StringKind
	case List:
		return ListKind
	case *Dict:
		return DictKind
	default:
		return InvalidKind
	}
}

// ToInterface converts v to the plain Go types the reflection based codecs use: int64, string,
// []interface{} and map[string]interface{}. Useful for dumping and JSON.
func ToInterface(v Value) interface{} {
	switch v := v.(type) {
	case Int:
		return int64(v)
	case String:
		return string(v)
	case List:
		ret := make([]interface{}, 0, len(v))
		for _, e := range v {
			ret = append(ret, ToInterface(e))
		}
		return ret
	case *Dict:
		ret := make(map[string]interface{}, v.Len())
		v.Scan(func(key string, e Value) bool {
			ret[key] = ToInterface(e)
			return true
		})
		return ret
	default:
		return nil
	}
}
