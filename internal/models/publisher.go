package models

import "database/sql"

// Publisher is the database row backing a publisher profile.
// subscription_status is a derived cache column, rewritten on every update
// from the expiry and suspension fields; reads must not trust it.
type Publisher struct {
	PublisherID        string         `db:"publisher_id"`
	UserID             string         `db:"user_id"`
	CompanyName        string         `db:"company_name"`
	OrganizationType   string         `db:"organization_type"`
	PublisherTypeID    sql.NullString `db:"publisher_type_id"`
	SubscriptionExpiry sql.NullTime   `db:"subscription_expiry"`
	SubscriptionStatus string         `db:"subscription_status"`
	Suspended          bool           `db:"suspended"`
	ServicePlanActive  bool           `db:"service_plan_active"`
	Blocked            bool           `db:"blocked"`
	AuditFields
}
