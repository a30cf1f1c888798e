package content

import (
	"time"

	"gorm.io/gorm"
)

// Visible reports whether a record may leave the API boundary: it must carry a
// publish timestamp and no soft-delete timestamp.
func Visible(publishedAt, deletedAt *time.Time) bool {
	return publishedAt != nil && deletedAt == nil
}

// Published is a gorm scope restricting a query to externally visible records.
func Published(tx *gorm.DB) *gorm.DB {
	return tx.Where("published_at IS NOT NULL AND deleted_at IS NULL")
}
