package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/pluscodes/internal/core/domain"
	"github.com/samirrijal/pluscodes/internal/core/ports"
	"github.com/samirrijal/pluscodes/internal/pkg/geospatial"
	"github.com/samirrijal/pluscodes/internal/pkg/logging"
	"github.com/samirrijal/pluscodes/internal/pkg/metrics"
	"github.com/samirrijal/pluscodes/internal/pkg/telemetry"
	"github.com/samirrijal/pluscodes/olc"
)

var (
	// ErrBatchTooLarge is returned when a batch exceeds the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrEmptyBatch is returned for a batch with no points.
	ErrEmptyBatch = errors.New("batch is empty")
)

// CodeService exposes the olc codec with caching, metrics and tracing.
type CodeService struct {
	cache         ports.CacheService
	defaultLength int
	cacheTTL      int
	maxBatch      int
}

// NewCodeService creates a new CodeService. cache may be nil.
func NewCodeService(cache ports.CacheService, defaultLength, cacheTTL, maxBatch int) *CodeService {
	if defaultLength == 0 {
		defaultLength = olc.DefaultCodeLength
	}
	if maxBatch <= 0 {
		maxBatch = 500
	}
	return &CodeService{
		cache:         cache,
		defaultLength: defaultLength,
		cacheTTL:      cacheTTL,
		maxBatch:      maxBatch,
	}
}

// MaxBatch returns the largest batch EncodeBatch accepts.
func (s *CodeService) MaxBatch() int { return s.maxBatch }

// Encode returns the code for a point. A zero length uses the default.
func (s *CodeService) Encode(ctx context.Context, req domain.EncodeRequest) (_ *domain.EncodeResult, err error) {
	ctx, span := s.start(ctx, "encode",
		attribute.Float64(telemetry.AttrLatitude, req.Lat),
		attribute.Float64(telemetry.AttrLongitude, req.Lng),
		attribute.Int(telemetry.AttrLength, req.Length))
	defer s.finish(ctx, span, "encode", time.Now(), &err)

	return s.encode(req)
}

func (s *CodeService) encode(req domain.EncodeRequest) (*domain.EncodeResult, error) {
	length := req.Length
	if length == 0 {
		length = s.defaultLength
	}
	code, err := olc.Encode(req.Lat, req.Lng, length)
	if err != nil {
		return nil, err
	}
	if length > olc.MaxCodeLength {
		length = olc.MaxCodeLength
	}
	return &domain.EncodeResult{
		Code:   code,
		Length: length,
		Point:  domain.GeoPoint{Lat: req.Lat, Lon: req.Lng},
	}, nil
}

// EncodeBatch encodes every point independently. Per-point failures are
// reported in the matching item; only an unacceptable batch fails as a whole.
func (s *CodeService) EncodeBatch(ctx context.Context, reqs []domain.EncodeRequest) (_ []domain.BatchItem, err error) {
	ctx, span := s.start(ctx, "encode_batch", attribute.Int(telemetry.AttrBatchSize, len(reqs)))
	defer s.finish(ctx, span, "encode_batch", time.Now(), &err)

	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(reqs) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d points, max %d", ErrBatchTooLarge, len(reqs), s.maxBatch)
	}
	metrics.BatchSize.Observe(float64(len(reqs)))

	items := make([]domain.BatchItem, len(reqs))
	for i, req := range reqs {
		res, err := s.encode(req)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		items[i].Code = res.Code
	}
	return items, nil
}

// Decode returns the area of a full code, cross-referenced with its geohash
// and ground size.
func (s *CodeService) Decode(ctx context.Context, code string) (_ *domain.CodeArea, err error) {
	ctx, span := s.start(ctx, "decode", attribute.String(telemetry.AttrCode, code))
	defer s.finish(ctx, span, "decode", time.Now(), &err)

	key := "olc:decode:" + strings.ToUpper(code)
	var cached domain.CodeArea
	if s.cacheGet(ctx, span, "decode", key, &cached) {
		return &cached, nil
	}

	area, err := olc.Decode(code)
	if err != nil {
		return nil, err
	}

	lat, lng := area.Center()
	bounds := domain.Bounds{MinLat: area.LatLo, MinLon: area.LngLo, MaxLat: area.LatHi, MaxLon: area.LngHi}
	res := &domain.CodeArea{
		Code:    strings.ToUpper(code),
		Area:    bounds,
		Center:  domain.GeoPoint{Lat: lat, Lon: lng},
		Length:  area.CodeLength,
		Geohash: geospatial.Geohash(lat, lng, geospatial.GeohashPrecisionFor(area.CodeLength)),
		SizeM:   geospatial.AreaSize(bounds),
	}

	s.cacheSet(ctx, key, res)
	return res, nil
}

// Shorten trims a full code relative to a reference point.
func (s *CodeService) Shorten(ctx context.Context, code string, lat, lng float64) (_ *domain.ShortCode, err error) {
	ctx, span := s.start(ctx, "shorten",
		attribute.String(telemetry.AttrCode, code),
		attribute.Float64(telemetry.AttrLatitude, lat),
		attribute.Float64(telemetry.AttrLongitude, lng))
	defer s.finish(ctx, span, "shorten", time.Now(), &err)

	short, err := olc.Shorten(code, lat, lng)
	if err != nil {
		return nil, err
	}
	full := strings.ToUpper(code)
	return &domain.ShortCode{
		Code:      full,
		ShortCode: short,
		Reference: domain.GeoPoint{Lat: lat, Lon: lng},
		DistanceM: distanceToCode(full, lat, lng),
	}, nil
}

// Recover expands a short code to the nearest full code around a reference
// point. Full codes pass through upper-cased.
func (s *CodeService) Recover(ctx context.Context, code string, lat, lng float64) (_ *domain.ShortCode, err error) {
	ctx, span := s.start(ctx, "recover",
		attribute.String(telemetry.AttrCode, code),
		attribute.Float64(telemetry.AttrLatitude, lat),
		attribute.Float64(telemetry.AttrLongitude, lng))
	defer s.finish(ctx, span, "recover", time.Now(), &err)

	// The nearest match can flip anywhere along a half-cell boundary, so the
	// key keeps the reference exact.
	key := "olc:recover:" + strings.ToUpper(code) + ":" +
		strconv.FormatFloat(lat, 'g', -1, 64) + ":" + strconv.FormatFloat(lng, 'g', -1, 64)
	var cached domain.ShortCode
	if s.cacheGet(ctx, span, "recover", key, &cached) {
		return &cached, nil
	}

	full, err := olc.RecoverNearest(code, lat, lng)
	if err != nil {
		return nil, err
	}
	res := &domain.ShortCode{
		Code:      full,
		ShortCode: strings.ToUpper(code),
		Reference: domain.GeoPoint{Lat: lat, Lon: lng},
		DistanceM: distanceToCode(full, lat, lng),
	}

	s.cacheSet(ctx, key, res)
	return res, nil
}

// Validate classifies a candidate code. It never fails.
func (s *CodeService) Validate(ctx context.Context, code string) domain.Validity {
	_, span := s.start(ctx, "validate", attribute.String(telemetry.AttrCode, code))
	defer span.End()

	v := domain.Validity{
		Code:  code,
		Valid: olc.IsValid(code),
		Short: olc.IsShort(code),
		Full:  olc.IsFull(code),
	}
	metrics.CodecOperations.WithLabelValues("validate", "ok").Inc()
	return v
}

// distanceToCode returns the ground distance from a point to the center of a
// valid full code.
func distanceToCode(code string, lat, lng float64) float64 {
	area, err := olc.Decode(code)
	if err != nil {
		return 0
	}
	cLat, cLng := area.Center()
	return geospatial.Haversine(lat, lng, cLat, cLng)
}

func (s *CodeService) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, "CodeService."+op, trace.WithAttributes(attrs...))
}

func (s *CodeService) finish(ctx context.Context, span trace.Span, op string, start time.Time, errp *error) {
	err := *errp
	metrics.ObserveCodec(op, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logging.FromContext(ctx).Debug("codec operation failed", "op", op, "error", err)
	}
	span.End()
}

func (s *CodeService) cacheGet(ctx context.Context, span trace.Span, op, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err == nil && msgpack.Unmarshal(data, dst) == nil {
		metrics.CacheHits.WithLabelValues(op).Inc()
		span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
		return true
	}
	if err != nil && !errors.Is(err, ports.ErrCacheMiss) {
		logging.FromContext(ctx).Warn("cache get failed", "key", key, "error", err)
	}
	metrics.CacheMisses.WithLabelValues(op).Inc()
	span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, false))
	return false
}

func (s *CodeService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		logging.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
	}
}
