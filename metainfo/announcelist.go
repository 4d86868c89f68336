package metainfo

import (
	"slices"

	"github.com/anacrolix/torrent-identify/bencode"
)

// BEP 12 tiers of tracker URLs.
type AnnounceList [][]string

func announceListFromValue(v bencode.Value) (al AnnounceList) {
	tiers, _ := v.(bencode.List)
	for _, tier := range tiers {
		urls, ok := tier.(bencode.List)
		if !ok {
			continue
		}
		var t []string
		for _, u := range urls {
			if s, ok := u.(bencode.String); ok {
				t = append(t, string(s))
			}
		}
		al = append(al, t)
	}
	return
}

func (al AnnounceList) Clone() AnnounceList {
	return slices.Clone(al)
}

// Whether the AnnounceList should be preferred over a single URL announce.
func (al AnnounceList) OverridesAnnounce(announce string) bool {
	for _, tier := range al {
		for _, url := range tier {
			if url != "" || announce == "" {
				return true
			}
		}
	}
	return false
}

func (al AnnounceList) DistinctValues() (ret []string) {
	seen := make(map[string]struct{})
	for _, tier := range al {
		for _, v := range tier {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				ret = append(ret, v)
			}
		}
	}
	return
}
