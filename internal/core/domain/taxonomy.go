package domain

// RegistryKind identifies one of the admin-managed enumerations referenced
// by listings and registration forms.
type RegistryKind string

const (
	RegistryPublisherTypes      RegistryKind = "publisher-types"
	RegistryChallengeCategories RegistryKind = "challenge-categories"
	RegistryOrganizerTypes      RegistryKind = "organizer-types"
	RegistryStartupStages       RegistryKind = "startup-stages"
	RegistryEventCategories     RegistryKind = "event-categories"
)

// RegistryKinds lists every taxonomy registry the admin can manage.
var RegistryKinds = []RegistryKind{
	RegistryPublisherTypes,
	RegistryChallengeCategories,
	RegistryOrganizerTypes,
	RegistryStartupStages,
	RegistryEventCategories,
}

// IsValid reports whether the kind names a known registry.
func (k RegistryKind) IsValid() bool {
	for _, known := range RegistryKinds {
		if k == known {
			return true
		}
	}
	return false
}

// TaxonomyEntry is a single enumeration value in a registry. Deactivating an
// entry hides it from new selection only; rows already referencing it keep
// their reference.
type TaxonomyEntry struct {
	EntryID     string       `json:"entryID"`
	Kind        RegistryKind `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IsActive    bool         `json:"isActive"`
	AuditFields
}
