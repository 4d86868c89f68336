package metainfo

import (
	"net/url"
)

// A v1 magnet link for an identified torrent.
type Magnet struct {
	InfoHash    Hash
	Trackers    []string // "tr" values
	DisplayName string   // "dn" value, if not empty
}

const btihPrefix = "urn:btih:"

func (m Magnet) String() string {
	vs := make(url.Values, 2)
	for _, tr := range m.Trackers {
		vs.Add("tr", tr)
	}
	if m.DisplayName != "" {
		vs.Add("dn", m.DisplayName)
	}
	// Some clients want an unescaped "urn:btih:" at the start of the link.
	u := url.URL{
		Scheme:   "magnet",
		RawQuery: "xt=" + btihPrefix + m.InfoHash.HexString(),
	}
	if len(vs) != 0 {
		u.RawQuery += "&" + vs.Encode()
	}
	return u.String()
}
