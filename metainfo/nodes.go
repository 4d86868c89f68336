package metainfo

import (
	"net"
	"strconv"

	"github.com/anacrolix/torrent-identify/bencode"
)

// DHT bootstrap nodes. Entries are either "host:port" strings, or [host, port] pairs per BEP 5,
// which are rendered as "host:port". Anything else is skipped.
func nodesFromValue(v bencode.Value) (ret []string) {
	l, _ := v.(bencode.List)
	for _, e := range l {
		switch e := e.(type) {
		case bencode.String:
			ret = append(ret, displayText(e))
		case bencode.List:
			if len(e) != 2 {
				continue
			}
			host, ok := e[0].(bencode.String)
			if !ok {
				continue
			}
			port, ok := e[1].(bencode.Int)
			if !ok {
				continue
			}
			ret = append(ret, net.JoinHostPort(displayText(host), strconv.FormatInt(int64(port), 10)))
		}
	}
	return
}
