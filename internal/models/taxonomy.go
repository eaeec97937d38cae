package models

// TaxonomyEntry is the database row backing a registry entry. All five
// registries share one table keyed by kind.
type TaxonomyEntry struct {
	EntryID     string `db:"entry_id"`
	Kind        string `db:"kind"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
