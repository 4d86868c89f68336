package metainfo

import (
	"strings"

	"github.com/anacrolix/torrent-identify/bencode"
)

// Information specific to a single file inside the MetaInfo structure.
type FileInfo struct {
	Length   int64    // BEP3
	Path     []string // BEP3
	PathUtf8 []string
}

func fileInfoFromDict(d *bencode.Dict) (fi FileInfo) {
	fi.Length, _ = getInt(d, "length")
	fi.Path, _ = getStrings(d, "path")
	fi.PathUtf8, _ = getStrings(d, "path.utf-8")
	return
}

func (fi *FileInfo) DisplayPath(info *Info) string {
	if info.IsDir() {
		return strings.Join(fi.BestPath(), "/")
	} else {
		return info.BestName()
	}
}

func (fi FileInfo) BestPath() []string {
	if len(fi.PathUtf8) != 0 {
		return fi.PathUtf8
	}
	return fi.Path
}
