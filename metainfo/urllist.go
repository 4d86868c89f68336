package metainfo

import (
	"github.com/anacrolix/torrent-identify/bencode"
)

// BEP 19 web seeds. The url-list key may hold a single string or a list of them.
type UrlList []string

func urlListFromValue(v bencode.Value) UrlList {
	switch v := v.(type) {
	case bencode.String:
		return UrlList{string(v)}
	case bencode.List:
		var ret UrlList
		for _, e := range v {
			if s, ok := e.(bencode.String); ok {
				ret = append(ret, string(s))
			}
		}
		return ret
	default:
		return nil
	}
}
