package metainfo

import (
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/anacrolix/torrent-identify/bencode"
)

// Converts a byte string for display. Invalid UTF-8 is replaced with U+FFFD rather than failing:
// names are advisory, and only the hash needs the exact bytes. The result never shares memory with
// the decoded input.
func displayText(s bencode.String) string {
	text, err := unicode.UTF8.NewDecoder().String(string(s))
	if err != nil {
		return strings.ToValidUTF8(string(s), "\uFFFD")
	}
	return strings.Clone(text)
}

func getString(d *bencode.Dict, key string) (s bencode.String, ok bool) {
	v, _ := d.Get(key)
	s, ok = v.(bencode.String)
	return
}

func getInt(d *bencode.Dict, key string) (i int64, ok bool) {
	v, _ := d.Get(key)
	bi, ok := v.(bencode.Int)
	return int64(bi), ok
}

// A list of strings, skipping elements of other types.
func getStrings(d *bencode.Dict, key string) (ret []string, ok bool) {
	v, _ := d.Get(key)
	l, ok := v.(bencode.List)
	for _, e := range l {
		if s, isString := e.(bencode.String); isString {
			ret = append(ret, displayText(s))
		}
	}
	return
}
