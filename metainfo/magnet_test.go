package metainfo

import (
	"testing"

	qt "github.com/go-quicktest/qt"
	"github.com/stretchr/testify/assert"
)

func TestMagnetString(t *testing.T) {
	m := Magnet{
		InfoHash:    NewHashFromHex("51340689c960f0778a4387aef9b4b52fd08390cd"),
		DisplayName: "Shit Movie (1985) 1337p - Eru",
		Trackers: []string{
			"http://http.was.great!",
			"udp://anti.piracy.honeypot:6969",
		},
	}
	assert.Equal(t,
		`magnet:?xt=urn:btih:51340689c960f0778a4387aef9b4b52fd08390cd&dn=Shit+Movie+%281985%29+1337p+-+Eru&tr=http%3A%2F%2Fhttp.was.great%21&tr=udp%3A%2F%2Fanti.piracy.honeypot%3A6969`,
		m.String())
}

func TestMagnetStringBare(t *testing.T) {
	var m Magnet
	qt.Check(t, qt.Equals(m.String(), "magnet:?xt=urn:btih:0000000000000000000000000000000000000000"))
}
