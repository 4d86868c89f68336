package main

import (
	"fmt"
	"io"
	"os"

	"github.com/anacrolix/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/anacrolix/torrent-identify/bencode"
	"github.com/anacrolix/torrent-identify/metainfo"
	"github.com/anacrolix/torrent-identify/types/infohash"
)

// With multihashes, the multihash framing is printed after the plain infohash.
func printInfohashes(w io.Writer, files []string, multihashes bool) error {
	for _, path := range files {
		id, err := metainfo.IdentifyFile(path)
		if err != nil {
			return errors.Wrapf(err, "identifying %q", path)
		}
		if !multihashes {
			fmt.Fprintf(w, "%v: %s\n", id.InfoHash, id.Name)
			continue
		}
		mh, err := infohash.ToMultihash(id.InfoHash)
		if err != nil {
			return errors.Wrapf(err, "framing infohash of %q", path)
		}
		fmt.Fprintf(w, "%v %v: %s\n", id.InfoHash, mh.HexString(), id.Name)
	}
	return nil
}

// Reads the named file, or stdin if path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dumps every value in the input, which may hold several concatenated.
func spewBencoding(w io.Writer, path string) error {
	b, err := readInput(path)
	if err != nil {
		return err
	}
	d := bencode.NewDecoder(b)
	for i := 0; ; i++ {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "decoding value index %d", i)
		}
		spewConfig.Fdump(w, bencode.ToInterface(v))
	}
	return nil
}

func writeCanonical(w io.Writer, path string) error {
	b, err := readInput(path)
	if err != nil {
		return err
	}
	v, err := bencode.Unmarshal(b)
	if err != nil {
		return errors.Wrap(err, "decoding metainfo")
	}
	mi, err := metainfo.FromValue(v)
	if err != nil {
		return err
	}
	canonical, err := mi.InfoBytes()
	if err != nil {
		return err
	}
	log.Levelf(log.Debug, "info dict is %v canonically, %v in the input", humanize.Bytes(uint64(len(canonical))), humanize.Bytes(uint64(len(b))))
	_, err = w.Write(canonical)
	return err
}
