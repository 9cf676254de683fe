package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samirrijal/pluscodes/internal/core/domain"
)

// EncodeCmd encodes a coordinate.
type EncodeCmd struct {
	Lat    float64 `arg:"" help:"Latitude in degrees."`
	Lng    float64 `arg:"" help:"Longitude in degrees."`
	Length int     `short:"l" default:"10" help:"Number of significant digits (2-8 even, or 10-15)."`
}

func (c *EncodeCmd) Run(g *Globals) error {
	return g.runWith(func(ctx context.Context, cd codec) error {
		res, err := cd.Encode(ctx, domain.EncodeRequest{Lat: c.Lat, Lng: c.Lng, Length: c.Length})
		if err != nil {
			return err
		}
		return g.print(res, func(w io.Writer) {
			fmt.Fprintln(w, res.Code)
		})
	})
}

// DecodeCmd decodes a full code.
type DecodeCmd struct {
	Code string `arg:"" help:"Full Plus Code, e.g. 8FVC9G8F+6X."`
}

func (c *DecodeCmd) Run(g *Globals) error {
	return g.runWith(func(ctx context.Context, cd codec) error {
		area, err := cd.Decode(ctx, c.Code)
		if err != nil {
			return err
		}
		return g.print(area, func(w io.Writer) {
			fmt.Fprintf(w, "code:    %s\n", area.Code)
			fmt.Fprintf(w, "length:  %d\n", area.Length)
			fmt.Fprintf(w, "south:   %.14g\n", area.Area.MinLat)
			fmt.Fprintf(w, "west:    %.14g\n", area.Area.MinLon)
			fmt.Fprintf(w, "north:   %.14g\n", area.Area.MaxLat)
			fmt.Fprintf(w, "east:    %.14g\n", area.Area.MaxLon)
			fmt.Fprintf(w, "center:  %.14g,%.14g\n", area.Center.Lat, area.Center.Lon)
			fmt.Fprintf(w, "size:    %.1f m x %.1f m\n", area.SizeM.Width, area.SizeM.Height)
			if area.Geohash != "" {
				fmt.Fprintf(w, "geohash: %s\n", area.Geohash)
			}
		})
	})
}

// ShortenCmd shortens a full code.
type ShortenCmd struct {
	Code string  `arg:"" help:"Full Plus Code."`
	Lat  float64 `arg:"" help:"Reference latitude."`
	Lng  float64 `arg:"" help:"Reference longitude."`
}

func (c *ShortenCmd) Run(g *Globals) error {
	return g.runWith(func(ctx context.Context, cd codec) error {
		res, err := cd.Shorten(ctx, c.Code, c.Lat, c.Lng)
		if err != nil {
			return err
		}
		return g.print(res, func(w io.Writer) {
			fmt.Fprintln(w, res.ShortCode)
		})
	})
}

// RecoverCmd recovers the nearest full code.
type RecoverCmd struct {
	Code string  `arg:"" help:"Short Plus Code, e.g. 9G8F+6X."`
	Lat  float64 `arg:"" help:"Reference latitude."`
	Lng  float64 `arg:"" help:"Reference longitude."`
}

func (c *RecoverCmd) Run(g *Globals) error {
	return g.runWith(func(ctx context.Context, cd codec) error {
		res, err := cd.Recover(ctx, c.Code, c.Lat, c.Lng)
		if err != nil {
			return err
		}
		return g.print(res, func(w io.Writer) {
			fmt.Fprintln(w, res.Code)
		})
	})
}

// errInvalid makes check exit non-zero for codes that are neither full nor short.
var errInvalid = errors.New("invalid code")

// CheckCmd classifies a code.
type CheckCmd struct {
	Code string `arg:"" help:"Candidate code."`
}

func (c *CheckCmd) Run(g *Globals) error {
	return g.runWith(func(ctx context.Context, cd codec) error {
		v, err := cd.Validate(ctx, c.Code)
		if err != nil {
			return err
		}
		if perr := g.print(v, func(w io.Writer) {
			switch {
			case v.Full:
				fmt.Fprintf(w, "%s: valid full code\n", v.Code)
			case v.Short:
				fmt.Fprintf(w, "%s: valid short code\n", v.Code)
			case v.Valid:
				fmt.Fprintf(w, "%s: valid syntax but neither full nor short\n", v.Code)
			default:
				fmt.Fprintf(w, "%s: invalid\n", v.Code)
			}
		}); perr != nil {
			return perr
		}
		if !v.Full && !v.Short {
			return errInvalid
		}
		return nil
	})
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "olc version %s\n", version)
	return nil
}
