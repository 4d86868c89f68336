package metainfo

import (
	"github.com/anacrolix/torrent-identify/bencode"
	"github.com/anacrolix/torrent-identify/types/infohash"
)

const HashSize = infohash.Size

// The v1 infohash. Lives in types/infohash so it can be used without the rest of this package.
type Hash = infohash.T

var NewHashFromHex = infohash.FromHexString

// Canonically encodes the info dict and hashes it. The hash depends only on the dict's contents,
// not on how they were laid out in the original file.
func HashInfo(info *bencode.Dict) (h Hash, canonical []byte, err error) {
	canonical, err = bencode.Marshal(info)
	if err != nil {
		return
	}
	h = infohash.HashBytes(canonical)
	return
}
