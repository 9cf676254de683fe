// Package api embeds the OpenAPI description of the HTTP service.
package api

import _ "embed"

// OpenAPI is the raw openapi.yaml document.
//
//go:embed openapi.yaml
var OpenAPI []byte
