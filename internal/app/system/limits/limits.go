// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxMutationBodySize is the maximum size of a dashboard update body.
	// Every update is a single small JSON object.
	MaxMutationBodySize = 64 << 10 // 64 KB
)
