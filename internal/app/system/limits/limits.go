// internal/app/system/limits/limits.go
package limits

import "time"

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size of any JSON request body,
	// including the bulk /coleccion endpoints.
	MaxJSONBodySize = 1 << 20 // 1 MB
)

// Bulk endpoint throttling defaults, per client IP.
const (
	BulkRequestsPerWindow = 30
	BulkWindow            = time.Minute
)
