package metainfo

import (
	"fmt"
	"io"
	"os"

	"github.com/anacrolix/torrent-identify/bencode"
)

// A view of a decoded metainfo (.torrent) file. The top-level fields are read best-effort. The info
// dict is kept as decoded, so that its hash covers every key in it, including ones this package
// doesn't know about.
type MetaInfo struct {
	Announce     string
	AnnounceList AnnounceList
	Nodes        []string
	CreationDate int64
	Comment      string
	CreatedBy    string
	Encoding     string
	UrlList      UrlList // BEP 19 WebSeeds

	name     string
	infoDict *bencode.Dict
}

// Checks that v is a dict holding an info dict with a string name. Strings in v may share memory
// with the buffer it was decoded from, and so may the returned MetaInfo.
func FromValue(v bencode.Value) (*MetaInfo, error) {
	d, ok := v.(*bencode.Dict)
	if !ok {
		return nil, newError(ErrNotADict, v)
	}
	iv, ok := d.Get("info")
	if !ok {
		return nil, newError(ErrMissingInfo, nil)
	}
	info, ok := iv.(*bencode.Dict)
	if !ok {
		return nil, newError(ErrInfoNotADict, iv)
	}
	name, err := infoName(info)
	if err != nil {
		return nil, err
	}
	mi := &MetaInfo{
		name:     name,
		infoDict: info,
	}
	if s, ok := getString(d, "announce"); ok {
		mi.Announce = string(s)
	}
	al, _ := d.Get("announce-list")
	mi.AnnounceList = announceListFromValue(al)
	nodes, _ := d.Get("nodes")
	mi.Nodes = nodesFromValue(nodes)
	mi.CreationDate, _ = getInt(d, "creation date")
	if s, ok := getString(d, "comment"); ok {
		mi.Comment = displayText(s)
	}
	if s, ok := getString(d, "created by"); ok {
		mi.CreatedBy = displayText(s)
	}
	if s, ok := getString(d, "encoding"); ok {
		mi.Encoding = string(s)
	}
	ul, _ := d.Get("url-list")
	mi.UrlList = urlListFromValue(ul)
	return mi, nil
}

// Load a MetaInfo from an io.Reader. Returns a non-nil error in case of failure.
func Load(r io.Reader) (*MetaInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, err := bencode.Unmarshal(b)
	if err != nil {
		return nil, err
	}
	return FromValue(v)
}

// Convenience function for loading a MetaInfo from a file.
func LoadFromFile(filename string) (*MetaInfo, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mi, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", filename, err)
	}
	return mi, nil
}

// The display name from the info dict.
func (mi *MetaInfo) Name() string {
	return mi.name
}

func (mi *MetaInfo) InfoDict() *bencode.Dict {
	return mi.infoDict
}

// The canonical encoding of the info dict. This is what the infohash is computed over.
func (mi *MetaInfo) InfoBytes() ([]byte, error) {
	return bencode.Marshal(mi.infoDict)
}

func (mi *MetaInfo) HashInfoBytes() (Hash, error) {
	h, _, err := HashInfo(mi.infoDict)
	return h, err
}

func (mi *MetaInfo) UnmarshalInfo() (Info, error) {
	return infoFromDict(mi.infoDict)
}

// Returns the announce-list converted from the old single announce field if necessary.
func (mi *MetaInfo) UpvertedAnnounceList() AnnounceList {
	if mi.AnnounceList.OverridesAnnounce(mi.Announce) {
		return mi.AnnounceList
	}
	if mi.Announce != "" {
		return [][]string{{mi.Announce}}
	}
	return nil
}

// Creates a Magnet from the MetaInfo. The infohash is computed when infoHash is nil, and the
// display name is taken from info, or the info dict if info is nil.
func (mi *MetaInfo) Magnet(infoHash *Hash, info *Info) (m Magnet, err error) {
	m.Trackers = mi.UpvertedAnnounceList().DistinctValues()
	if info != nil {
		m.DisplayName = info.BestName()
	} else {
		m.DisplayName = mi.name
	}
	if infoHash != nil {
		m.InfoHash = *infoHash
	} else {
		m.InfoHash, err = mi.HashInfoBytes()
	}
	return
}
