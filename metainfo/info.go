package metainfo

import (
	g "github.com/anacrolix/generics"

	"github.com/anacrolix/torrent-identify/bencode"
)

// A view of the info dictionary. See BEP 3. Only Name is required. The other fields are filled
// when present with the expected type, and ignored otherwise, since none of them contribute to
// identifying the torrent beyond the hash over the whole dict.
type Info struct {
	PieceLength g.Option[int64] // BEP3
	Pieces      []byte          // BEP3
	Name        string          // BEP3, invalid UTF-8 replaced
	NameUtf8    string
	Length      g.Option[int64] // BEP3, mutually exclusive with Files
	Private     g.Option[bool]  // BEP27
	Source      string
	Files       []FileInfo // BEP3, mutually exclusive with Length
}

// The info dict's name, checked the way the identity requires.
func infoName(d *bencode.Dict) (string, error) {
	v, ok := d.Get("name")
	if !ok {
		return "", newError(ErrMissingName, nil)
	}
	s, ok := v.(bencode.String)
	if !ok {
		return "", newError(ErrNameNotAString, v)
	}
	return displayText(s), nil
}

func infoFromDict(d *bencode.Dict) (info Info, err error) {
	info.Name, err = infoName(d)
	if err != nil {
		return
	}
	if s, ok := getString(d, "name.utf-8"); ok {
		info.NameUtf8 = displayText(s)
	}
	if i, ok := getInt(d, "piece length"); ok {
		info.PieceLength = g.Some(i)
	}
	if s, ok := getString(d, "pieces"); ok {
		info.Pieces = []byte(s)
	}
	if i, ok := getInt(d, "length"); ok {
		info.Length = g.Some(i)
	}
	if i, ok := getInt(d, "private"); ok {
		info.Private = g.Some(i != 0)
	}
	if s, ok := getString(d, "source"); ok {
		info.Source = displayText(s)
	}
	v, _ := d.Get("files")
	files, _ := v.(bencode.List)
	for _, f := range files {
		fd, ok := f.(*bencode.Dict)
		if !ok {
			continue
		}
		info.Files = append(info.Files, fileInfoFromDict(fd))
	}
	return
}

func (info *Info) TotalLength() (ret int64) {
	for _, fi := range info.UpvertedFiles() {
		ret += fi.Length
	}
	return
}

func (info *Info) NumPieces() int {
	return len(info.Pieces) / HashSize
}

// Whether the torrent describes a directory of files, named by Info.Name.
func (info *Info) IsDir() bool {
	return len(info.Files) != 0
}

// The files field, converted up from the old single-file in the parent info dict if necessary. This
// is a helper to avoid having to conditionally handle single and multi-file torrent infos.
func (info *Info) UpvertedFiles() []FileInfo {
	if len(info.Files) == 0 {
		return []FileInfo{{
			Length: info.Length.Value,
			// Callers should determine that Info.Name is the basename, and
			// thus a regular file.
			Path: nil,
		}}
	}
	return info.Files
}

func (info *Info) BestName() string {
	if info.NameUtf8 != "" {
		return info.NameUtf8
	}
	return info.Name
}
