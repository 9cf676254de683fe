package telemetry

// Span and attribute names shared by the code service and its transports.
const (
	TracerName = "github.com/samirrijal/pluscodes"

	AttrCode      = "olc.code"
	AttrLength    = "olc.length"
	AttrLatitude  = "olc.lat"
	AttrLongitude = "olc.lng"
	AttrCacheHit  = "cache.hit"
	AttrBatchSize = "olc.batch_size"
)
