package content

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// EmptyVersion is served when no content rows exist at all.
const EmptyVersion = "empty"

const versionLength = 12

// Fingerprint derives the content-version string from the newest updated_at
// across all content tables. The exact algorithm is not a compatibility
// contract; the only guarantee is that the value changes when and only when
// content changes.
func Fingerprint(latest *time.Time) string {
	if latest == nil {
		return EmptyVersion
	}

	sum := sha256.Sum256([]byte(latest.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:versionLength]
}
