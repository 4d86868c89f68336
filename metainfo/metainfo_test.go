package metainfo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/go-quicktest/qt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anacrolix/torrent-identify/bencode"
)

var (
	testPieces = strings.Repeat("x", 20)
	// Keys deliberately out of order at both levels.
	multiFileTorrent = "d" +
		"4:infod" +
		"4:name3:dir" +
		"5:filesld6:lengthi3e4:pathl1:a1:beed6:lengthi4e4:pathl1:cee" +
		"12:piece lengthi16384e" +
		"6:pieces20:" + testPieces +
		"e" +
		"8:announce13:http://a/anno" +
		"13:announce-listll13:http://a/anno12:http://b/annee" +
		"7:comment2:hi" +
		"10:created by4:test" +
		"13:creation datei1700000000e" +
		"8:url-list8:http://w" +
		"e"
)

func TestLoadMultiFile(t *testing.T) {
	mi, err := Load(strings.NewReader(multiFileTorrent))
	require.NoError(t, err)
	assert.Equal(t, "dir", mi.Name())
	assert.Equal(t, "http://a/anno", mi.Announce)
	assert.EqualValues(t, AnnounceList{{"http://a/anno", "http://b/ann"}}, mi.AnnounceList)
	assert.Equal(t, "hi", mi.Comment)
	assert.Equal(t, "test", mi.CreatedBy)
	assert.EqualValues(t, 1700000000, mi.CreationDate)
	assert.EqualValues(t, UrlList{"http://w"}, mi.UrlList)
	assert.Empty(t, mi.Nodes)

	b, err := mi.InfoBytes()
	require.NoError(t, err)
	// Canonical order, regardless of the input's.
	assert.True(t, bytes.HasPrefix(b, []byte("d5:files")), "%q", b)

	h, err := mi.HashInfoBytes()
	require.NoError(t, err)
	h2, canonical, err := HashInfo(mi.InfoDict())
	require.NoError(t, err)
	assert.Equal(t, h, h2)
	assert.Equal(t, b, canonical)
}

func TestOptionalFieldsWrongTypesIgnored(t *testing.T) {
	mi, err := Load(strings.NewReader(
		"d7:commenti1e8:announceli1ee13:announce-list3:foo4:infod4:name1:xee"))
	require.NoError(t, err)
	assert.Equal(t, "x", mi.Name())
	assert.Empty(t, mi.Comment)
	assert.Empty(t, mi.Announce)
	assert.Empty(t, mi.AnnounceList)
	assert.Nil(t, mi.UpvertedAnnounceList())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("d4:info"))
	var se *bencode.SyntaxError
	assert.ErrorAs(t, err, &se)
	_, err = Load(strings.NewReader("d4:infodee"))
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.torrent")
	require.NoError(t, os.WriteFile(path, []byte(multiFileTorrent), 0o644))
	mi, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dir", mi.Name())

	bad := filepath.Join(dir, "bad.torrent")
	require.NoError(t, os.WriteFile(bad, []byte("le"), 0o644))
	_, err = LoadFromFile(bad)
	qt.Assert(t, qt.ErrorIs(err, ErrNotADict))
	qt.Check(t, qt.StringContains(err.Error(), "bad.torrent"))
}

func TestUpvertedAnnounceList(t *testing.T) {
	mi := MetaInfo{Announce: "http://single"}
	assert.EqualValues(t, AnnounceList{{"http://single"}}, mi.UpvertedAnnounceList())
	mi.AnnounceList = AnnounceList{{"http://a", "http://b"}, {"http://a"}}
	assert.EqualValues(t, mi.AnnounceList, mi.UpvertedAnnounceList())
	assert.Equal(t, []string{"http://a", "http://b"}, mi.AnnounceList.DistinctValues())
	// A list of empty tiers doesn't override a real announce.
	mi.AnnounceList = AnnounceList{{""}}
	assert.EqualValues(t, AnnounceList{{"http://single"}}, mi.UpvertedAnnounceList())
}

func TestAnnounceListClone(t *testing.T) {
	al := AnnounceList{{"a"}, {"b"}}
	c := al.Clone()
	c[1] = []string{"c"}
	assert.Equal(t, "b", al[1][0])
}

func TestUrlListSingleString(t *testing.T) {
	assert.EqualValues(t, UrlList{"http://x"}, urlListFromValue(bencode.String("http://x")))
	assert.EqualValues(t, UrlList{"http://x"}, urlListFromValue(bencode.List{bencode.String("http://x"), bencode.Int(1)}))
	assert.Nil(t, urlListFromValue(bencode.Int(1)))
	assert.Nil(t, urlListFromValue(nil))
}

func TestMetaInfoMagnet(t *testing.T) {
	mi, err := Load(strings.NewReader(multiFileTorrent))
	require.NoError(t, err)
	m, err := mi.Magnet(nil, nil)
	require.NoError(t, err)
	id, err := mi.Identity()
	require.NoError(t, err)
	assert.Equal(t, id.InfoHash, m.InfoHash)
	assert.Equal(t, "dir", m.DisplayName)
	assert.Equal(t, []string{"http://a/anno", "http://b/ann"}, m.Trackers)

	info := Info{Name: "plain", NameUtf8: "fancy"}
	var ih Hash
	m, err = mi.Magnet(&ih, &info)
	require.NoError(t, err)
	assert.Equal(t, "fancy", m.DisplayName)
	assert.True(t, m.InfoHash.IsZero())
}
