// Command olc encodes, decodes, shortens and recovers Plus Codes from the
// command line, either locally or through a responder reachable over NATS.
package main

import (
	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI defines the command-line interface for olc.
type CLI struct {
	Globals

	Encode  EncodeCmd  `cmd:"" help:"Encode a latitude and longitude."`
	Decode  DecodeCmd  `cmd:"" help:"Decode a full code into its area."`
	Shorten ShortenCmd `cmd:"" help:"Shorten a full code relative to a reference point."`
	Recover RecoverCmd `cmd:"" help:"Recover the nearest full code from a short code."`
	Check   CheckCmd   `cmd:"" help:"Check whether a code is valid, short or full. Exits non-zero unless it is full or short."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("olc"),
		kong.Description("Open Location Code (Plus Code) tool. Put -- before negative coordinates."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
