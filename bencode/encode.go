package bencode

import (
	"strconv"
)

func appendString(b []byte, s string) []byte {
	b = strconv.AppendInt(b, int64(len(s)), 10)
	b = append(b, ':')
	return append(b, s...)
}

func appendValue(b []byte, v Value) ([]byte, error) {
	switch v := v.(type) {
	case Int:
		b = append(b, 'i')
		b = strconv.AppendInt(b, int64(v), 10)
		return append(b, 'e'), nil
	case String:
		return appendString(b, string(v)), nil
	case List:
		b = append(b, 'l')
		for _, e := range v {
			var err error
			b, err = appendValue(b, e)
			if err != nil {
				return nil, err
			}
		}
		return append(b, 'e'), nil
	case *Dict:
		var err error
		b = append(b, 'd')
		v.Scan(func(key string, e Value) bool {
			b = appendString(b, key)
			b, err = appendValue(b, e)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return append(b, 'e'), nil
	default:
		return nil, &MarshalTypeError{v}
	}
}
