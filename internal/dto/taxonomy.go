package dto

// TaxonomyEntryRequest creates or updates a registry entry.
type TaxonomyEntryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListTaxonomyParams are the query parameters of the registry list endpoints.
// Status filters by "active" or "inactive"; empty means all.
type ListTaxonomyParams struct {
	Status string `form:"status"`
	Query  string `form:"q"`
}
