package natsadapter

import "encoding/json"

// Subjects served by the responder.
const (
	SubjectPrefix   = "olc."
	SubjectEncode   = SubjectPrefix + "encode"
	SubjectDecode   = SubjectPrefix + "decode"
	SubjectShorten  = SubjectPrefix + "shorten"
	SubjectRecover  = SubjectPrefix + "recover"
	SubjectValidate = SubjectPrefix + "validate"
)

// CodeRequest carries a code and, for shorten and recover, a reference point.
type CodeRequest struct {
	Code string  `json:"code"`
	Lat  float64 `json:"lat,omitempty"`
	Lng  float64 `json:"lng,omitempty"`
}

// Reply is the envelope of every responder answer. Exactly one of Data and
// Error is set.
type Reply struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ReplyError     `json:"error,omitempty"`
}

// ReplyError mirrors the REST error codes.
type ReplyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ReplyError) Error() string { return e.Code + ": " + e.Message }
