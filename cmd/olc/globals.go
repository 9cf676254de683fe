package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	natsadapter "github.com/samirrijal/pluscodes/internal/adapters/nats"
	"github.com/samirrijal/pluscodes/internal/core/domain"
	"github.com/samirrijal/pluscodes/internal/core/usecases"
	"github.com/samirrijal/pluscodes/olc"
)

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// Globals are flags shared by every command.
type Globals struct {
	JSON    bool          `help:"Print results as JSON."`
	NATS    string        `name:"nats" env:"PLUSCODES_NATS_URL" help:"Ask a responder at this NATS URL instead of computing locally."`
	Timeout time.Duration `default:"5s" help:"Timeout for remote requests."`
}

// codec is what the commands need, served locally or remotely.
type codec interface {
	Encode(ctx context.Context, req domain.EncodeRequest) (*domain.EncodeResult, error)
	Decode(ctx context.Context, code string) (*domain.CodeArea, error)
	Shorten(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error)
	Recover(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error)
	Validate(ctx context.Context, code string) (domain.Validity, error)
}

// open returns the codec selected by the flags and a func releasing it.
func (g *Globals) open() (codec, func(), error) {
	if g.NATS == "" {
		return localCodec{usecases.NewCodeService(nil, olc.DefaultCodeLength, 0, 0)}, func() {}, nil
	}
	conn, err := natsadapter.Connect(g.NATS, "olc-cli")
	if err != nil {
		return nil, nil, err
	}
	client := natsadapter.NewClient(conn)
	return remoteCodec{client}, client.Close, nil
}

func (g *Globals) requestContext() (context.Context, context.CancelFunc) {
	if g.NATS == "" {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), g.Timeout)
}

// print writes v as indented JSON when --json is set, otherwise as text.
func (g *Globals) print(v any, text func(w io.Writer)) error {
	if g.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(stdout)
	return nil
}

type localCodec struct {
	svc *usecases.CodeService
}

func (l localCodec) Encode(ctx context.Context, req domain.EncodeRequest) (*domain.EncodeResult, error) {
	return l.svc.Encode(ctx, req)
}

func (l localCodec) Decode(ctx context.Context, code string) (*domain.CodeArea, error) {
	return l.svc.Decode(ctx, code)
}

func (l localCodec) Shorten(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error) {
	return l.svc.Shorten(ctx, code, lat, lng)
}

func (l localCodec) Recover(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error) {
	return l.svc.Recover(ctx, code, lat, lng)
}

func (l localCodec) Validate(ctx context.Context, code string) (domain.Validity, error) {
	return l.svc.Validate(ctx, code), nil
}

type remoteCodec struct {
	client *natsadapter.Client
}

func (r remoteCodec) Encode(ctx context.Context, req domain.EncodeRequest) (*domain.EncodeResult, error) {
	var res domain.EncodeResult
	if err := r.client.Call(ctx, natsadapter.SubjectEncode, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r remoteCodec) Decode(ctx context.Context, code string) (*domain.CodeArea, error) {
	var res domain.CodeArea
	if err := r.client.Call(ctx, natsadapter.SubjectDecode, natsadapter.CodeRequest{Code: code}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r remoteCodec) Shorten(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error) {
	return r.point(ctx, natsadapter.SubjectShorten, code, lat, lng)
}

func (r remoteCodec) Recover(ctx context.Context, code string, lat, lng float64) (*domain.ShortCode, error) {
	return r.point(ctx, natsadapter.SubjectRecover, code, lat, lng)
}

func (r remoteCodec) point(ctx context.Context, subject, code string, lat, lng float64) (*domain.ShortCode, error) {
	var res domain.ShortCode
	req := natsadapter.CodeRequest{Code: code, Lat: lat, Lng: lng}
	if err := r.client.Call(ctx, subject, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r remoteCodec) Validate(ctx context.Context, code string) (domain.Validity, error) {
	var res domain.Validity
	err := r.client.Call(ctx, natsadapter.SubjectValidate, natsadapter.CodeRequest{Code: code}, &res)
	return res, err
}

// runWith opens the codec, runs fn with a request context and releases both.
func (g *Globals) runWith(fn func(ctx context.Context, c codec) error) error {
	c, release, err := g.open()
	if err != nil {
		return fmt.Errorf("open codec: %w", err)
	}
	defer release()

	ctx, cancel := g.requestContext()
	defer cancel()
	return fn(ctx, c)
}
