package models

import "database/sql"

// Listing is the database row backing a listing envelope. The type-specific
// fields are stored as a JSONB payload column.
type Listing struct {
	ListingID       string         `db:"listing_id"`
	PublisherID     string         `db:"publisher_id"`
	ListingType     string         `db:"listing_type"`
	Status          string         `db:"status"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	IsActive        bool           `db:"is_active"`
	Payload         []byte         `db:"payload"` // JSONB
	AuditFields
}
