package metainfo

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/anacrolix/torrent-identify/bencode"
)

// What an uploaded metainfo is reduced to: a name to show, and the infohash that identifies the
// content.
type Identity struct {
	Name     string
	InfoHash Hash
}

func (id Identity) Magnet() Magnet {
	return Magnet{
		InfoHash:    id.InfoHash,
		DisplayName: id.Name,
	}
}

func (mi *MetaInfo) Identity() (id Identity, err error) {
	id.InfoHash, err = mi.HashInfoBytes()
	if err != nil {
		return
	}
	id.Name = mi.name
	return
}

// Extracts the name and infohash from a decoded metainfo. Errors are always *Error. The result
// doesn't share memory with v.
func ExtractIdentity(v bencode.Value) (Identity, error) {
	mi, err := FromValue(v)
	if err != nil {
		return Identity{}, err
	}
	return mi.Identity()
}

// Decodes and identifies a complete metainfo file. Malformed bencode fails with a
// *bencode.SyntaxError, anything else with *Error.
func Identify(data []byte) (Identity, error) {
	v, err := bencode.Unmarshal(data)
	if err != nil {
		return Identity{}, err
	}
	return ExtractIdentity(v)
}

// Identifies the metainfo file at filename, reading it through a memory map so the payload is
// never copied.
func IdentifyFile(filename string) (id Identity, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return
	}
	if fi.Size() == 0 {
		// Empty files can't be mapped.
		return Identify(nil)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		err = fmt.Errorf("mapping %q: %w", filename, err)
		return
	}
	defer func() {
		unmapErr := m.Unmap()
		if err == nil {
			err = unmapErr
		}
	}()
	return Identify(m)
}
