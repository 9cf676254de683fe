package domain

// EncodeRequest asks for the Plus Code of a coordinate.
type EncodeRequest struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Length int     `json:"length,omitempty"` // 0 means the default length
}

// EncodeResult is the code produced for an EncodeRequest.
type EncodeResult struct {
	Code   string   `json:"code"`
	Length int      `json:"length"`
	Point  GeoPoint `json:"point"`
}

// CodeArea is a decoded Plus Code with derived cross-references.
type CodeArea struct {
	Code    string   `json:"code"`
	Area    Bounds   `json:"area"`
	Center  GeoPoint `json:"center"`
	Length  int      `json:"length"`
	Geohash string   `json:"geohash,omitempty"`
	SizeM   Size     `json:"size_m"`
}

// ShortCode pairs a full code with its form relative to a reference point.
type ShortCode struct {
	Code      string   `json:"code"`
	ShortCode string   `json:"short_code"`
	Reference GeoPoint `json:"reference"`
	DistanceM float64  `json:"distance_m"` // reference to the center of Code
}

// Validity classifies a candidate code.
type Validity struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
	Short bool   `json:"short"`
	Full  bool   `json:"full"`
}

// BatchItem is one entry of a batch encode response.
type BatchItem struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
