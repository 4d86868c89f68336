package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/go-quicktest/qt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anacrolix/torrent-identify/bencode"
	"github.com/anacrolix/torrent-identify/metainfo"
)

func writeTemp(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPrintInfohashes(t *testing.T) {
	a := writeTemp(t, "a.torrent", "d4:infod4:name3:abc6:lengthi12345eee")
	b := writeTemp(t, "b.torrent", "d4:infod4:name3:abcee")
	var buf bytes.Buffer
	require.NoError(t, printInfohashes(&buf, []string{a, b}, false))
	assert.Equal(t,
		"cdbef1cfd8a1833f01087042b389a7f3fbd8d9c1: abc\n"+
			"0c3b1833b425f70628722acc387340ffe0214cf5: abc\n",
		buf.String())
}

func TestPrintInfohashesMultihash(t *testing.T) {
	a := writeTemp(t, "a.torrent", "d4:infod4:name3:abc6:lengthi12345eee")
	var buf bytes.Buffer
	require.NoError(t, printInfohashes(&buf, []string{a}, true))
	assert.Equal(t,
		"cdbef1cfd8a1833f01087042b389a7f3fbd8d9c1 1114cdbef1cfd8a1833f01087042b389a7f3fbd8d9c1: abc\n",
		buf.String())
}

func TestPrintInfohashesError(t *testing.T) {
	bad := writeTemp(t, "bad.torrent", "le")
	err := printInfohashes(&bytes.Buffer{}, []string{bad}, false)
	qt.Assert(t, qt.ErrorIs(err, metainfo.ErrNotADict))
	qt.Check(t, qt.StringContains(err.Error(), "bad.torrent"))
}

func TestWriteCanonical(t *testing.T) {
	path := writeTemp(t, "x.torrent", "d4:infod4:name3:abc6:lengthi12345ee8:announce1:ue")
	var buf bytes.Buffer
	require.NoError(t, writeCanonical(&buf, path))
	assert.Equal(t, "d6:lengthi12345e4:name3:abce", buf.String())
}

func TestWriteCanonicalSyntaxError(t *testing.T) {
	path := writeTemp(t, "x.torrent", "d4:info")
	err := writeCanonical(&bytes.Buffer{}, path)
	var se *bencode.SyntaxError
	assert.ErrorAs(t, err, &se)
}

func TestSpewBencoding(t *testing.T) {
	path := writeTemp(t, "x.bencode", "d1:ai1e1:q4:pingei7e")
	var buf bytes.Buffer
	require.NoError(t, spewBencoding(&buf, path))
	out := buf.String()
	assert.Contains(t, out, `"ping"`)
	assert.Contains(t, out, "(int64) 7")

	bad := writeTemp(t, "bad.bencode", "i1ei")
	err := spewBencoding(&bytes.Buffer{}, bad)
	qt.Check(t, qt.ErrorMatches(err, `decoding value index 1: .*`))
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()
	return addr
}

func TestServeShutsDown(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, &ServeCmd{Addr: addr, HistorySize: 10})
	}()
	url := fmt.Sprintf("http://%v/metrics", addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve didn't return")
	}
}

func TestHandlerConfigDefaults(t *testing.T) {
	cfg := handlerConfig(&ServeCmd{})
	assert.EqualValues(t, 10<<20, cfg.MaxUploadSize)
	assert.NotNil(t, cfg.Registry)
	cfg = handlerConfig(&ServeCmd{MaxUploadSize: 1 << 10, RateLimit: 2, RateBurst: 3})
	assert.EqualValues(t, 1<<10, cfg.MaxUploadSize)
	assert.EqualValues(t, 2, cfg.RateLimit)
	assert.Equal(t, 3, cfg.Burst)
}
