// Identifies torrents by the infohash of their info dict, from the command-line or as a small web
// service.
//
// Example run:
// $ go run ./cmd/torrent-identify infohash ubuntu-20.04.2-live-server-amd64.iso.torrent
// 9fc20b9e98ea98b4a35e6223041a5ef94ea27809: ubuntu-20.04.2-live-server-amd64.iso
// $ go run ./cmd/torrent-identify serve --addr localhost:8080
package main

import (
	"context"
	"fmt"
	stdLog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/anacrolix/envpprof"
	"github.com/anacrolix/log"
	"github.com/anacrolix/tagflag"

	"github.com/anacrolix/torrent-identify/version"
)

var flags struct {
	*ServeCmd     `arg:"subcommand:serve" help:"serve the upload form and API"`
	*InfohashCmd  `arg:"subcommand:infohash" help:"print the infohash and name of metainfo files"`
	*SpewCmd      `arg:"subcommand:spew" help:"dump decoded bencode values"`
	*CanonicalCmd `arg:"subcommand:canonical" help:"write the canonical encoding of the info dict"`
	*VersionCmd   `arg:"subcommand:version"`
}

type VersionCmd struct{}

type ServeCmd struct {
	Addr          string        `arg:"env:TORRENT_IDENTIFY_ADDR" default:"localhost:8080" help:"network listen addr"`
	MaxUploadSize tagflag.Bytes `arg:"--max-upload-size,env:TORRENT_IDENTIFY_MAX_UPLOAD_SIZE" help:"largest metainfo accepted"`
	HistorySize   int           `arg:"--history-size,env:TORRENT_IDENTIFY_HISTORY_SIZE" default:"100" help:"number of recent identities kept"`
	RateLimit     float64       `arg:"--rate-limit,env:TORRENT_IDENTIFY_RATE_LIMIT" help:"uploads accepted per second, 0 for unlimited"`
	RateBurst     int           `arg:"--rate-burst,env:TORRENT_IDENTIFY_RATE_BURST" default:"10"`
}

type InfohashCmd struct {
	Multihash bool     `help:"also print the infohash as a hex multihash"`
	Files     []string `arg:"positional,required" help:"metainfo file paths"`
}

type SpewCmd struct {
	File string `arg:"positional" help:"file to decode, stdin if omitted or -"`
}

type CanonicalCmd struct {
	File string `arg:"positional" help:"metainfo file, stdin if omitted or -"`
}

func main() {
	defer envpprof.Stop()
	if err := mainErr(); err != nil {
		log.Printf("error in main: %v", err)
		os.Exit(1)
	}
}

func mainErr() error {
	stdLog.SetFlags(stdLog.Flags() | stdLog.Lshortfile)
	p := arg.MustParse(&flags)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	switch {
	case flags.ServeCmd != nil:
		return serve(ctx, flags.ServeCmd)
	case flags.InfohashCmd != nil:
		return printInfohashes(os.Stdout, flags.InfohashCmd.Files, flags.InfohashCmd.Multihash)
	case flags.SpewCmd != nil:
		return spewBencoding(os.Stdout, flags.SpewCmd.File)
	case flags.CanonicalCmd != nil:
		return writeCanonical(os.Stdout, flags.CanonicalCmd.File)
	case flags.VersionCmd != nil:
		fmt.Println(version.String())
		fmt.Printf("Server header: %q\n", version.DefaultServerHeader)
		return nil
	default:
		p.Fail(fmt.Sprintf("unexpected subcommand: %v", p.Subcommand()))
		panic("unreachable")
	}
}
