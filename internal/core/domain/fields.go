package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/unlockhq/unlock-backend/internal/apperrors"
)

// FieldKind is the data type of a single listing payload field. It drives
// both the generic form rendering on the client and the server-side
// validation in ValidatePayload.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldDate     FieldKind = "date"
	FieldSelect   FieldKind = "select"
	FieldNumber   FieldKind = "number"
	FieldURL      FieldKind = "url"
	FieldEmail    FieldKind = "email"
)

// FieldDescriptor describes one payload field of a listing type: its payload
// key, display label, data type, allowed options for selects, and whether
// submission requires it.
type FieldDescriptor struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"` // select kinds only
}

// listingFields maps each listing type to its field descriptors. This is
// static configuration, not logic: editor forms render from it and
// ValidatePayload checks against it, so the two can never disagree.
var listingFields = map[ListingType][]FieldDescriptor{
	ListingTypeEvent: {
		{Name: "title", Label: "Event Name", Kind: FieldText, Required: true},
		{Name: "description", Label: "Event Description", Kind: FieldTextarea, Required: true},
		{Name: "eventCategory", Label: "Event Category", Kind: FieldSelect, Required: true},
		{Name: "startDate", Label: "Start Date", Kind: FieldDate, Required: true},
		{Name: "endDate", Label: "End Date", Kind: FieldDate, Required: true},
		{Name: "location", Label: "Venue / Location", Kind: FieldText, Required: true},
		{Name: "eventFormat", Label: "Format", Kind: FieldSelect, Required: true, Options: []string{"in-person", "online", "hybrid"}},
		{Name: "registrationType", Label: "Registration Type", Kind: FieldSelect, Options: []string{"Free", "Paid", "Invite Only"}},
		{Name: "registrationDeadline", Label: "Registration Deadline", Kind: FieldDate},
		{Name: "registrationUrl", Label: "Registration URL", Kind: FieldURL},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
		{Name: "phoneNumber", Label: "Phone Number", Kind: FieldText},
		{Name: "banner", Label: "Banner Image", Kind: FieldText},
	},
	ListingTypeJob: {
		{Name: "title", Label: "Job Title", Kind: FieldText, Required: true},
		{Name: "description", Label: "Job Description", Kind: FieldTextarea, Required: true},
		{Name: "location", Label: "Location", Kind: FieldText, Required: true},
		{Name: "employmentType", Label: "Employment Type", Kind: FieldSelect, Required: true, Options: []string{"full-time", "part-time", "contract", "internship"}},
		{Name: "salaryRange", Label: "Salary Range", Kind: FieldText},
		{Name: "applicationDeadline", Label: "Application Deadline", Kind: FieldDate},
		{Name: "applyUrl", Label: "Application URL", Kind: FieldURL, Required: true},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
		{Name: "companyLogo", Label: "Company Logo", Kind: FieldText},
	},
	ListingTypeFunding: {
		{Name: "title", Label: "Funding Call Title", Kind: FieldText, Required: true},
		{Name: "description", Label: "Description", Kind: FieldTextarea, Required: true},
		{Name: "fundingAmount", Label: "Funding Amount", Kind: FieldNumber, Required: true},
		{Name: "eligibility", Label: "Eligibility Criteria", Kind: FieldTextarea},
		{Name: "organizerType", Label: "Organizer Type", Kind: FieldSelect},
		{Name: "applicationDeadline", Label: "Application Deadline", Kind: FieldDate, Required: true},
		{Name: "applyUrl", Label: "Application URL", Kind: FieldURL},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
	},
	ListingTypeInvestorProgram: {
		{Name: "title", Label: "Program Name", Kind: FieldText, Required: true},
		{Name: "description", Label: "Program Description", Kind: FieldTextarea, Required: true},
		{Name: "stageFocus", Label: "Startup Stage Focus", Kind: FieldSelect},
		{Name: "ticketSize", Label: "Ticket Size", Kind: FieldText},
		{Name: "applicationDeadline", Label: "Application Deadline", Kind: FieldDate},
		{Name: "applyUrl", Label: "Application URL", Kind: FieldURL},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
	},
	ListingTypeCompetition: {
		{Name: "title", Label: "Competition Name", Kind: FieldText, Required: true},
		{Name: "description", Label: "Competition Description", Kind: FieldTextarea, Required: true},
		{Name: "challengeCategory", Label: "Challenge Category", Kind: FieldSelect, Required: true},
		{Name: "prizePool", Label: "Prize Pool", Kind: FieldText},
		{Name: "startDate", Label: "Start Date", Kind: FieldDate, Required: true},
		{Name: "endDate", Label: "End Date", Kind: FieldDate, Required: true},
		{Name: "registrationDeadline", Label: "Registration Deadline", Kind: FieldDate},
		{Name: "registrationUrl", Label: "Registration URL", Kind: FieldURL},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
		{Name: "banner", Label: "Banner Image", Kind: FieldText},
	},
	ListingTypeWorkshop: {
		{Name: "title", Label: "Workshop Name", Kind: FieldText, Required: true},
		{Name: "description", Label: "Workshop Description", Kind: FieldTextarea, Required: true},
		{Name: "startDate", Label: "Start Date", Kind: FieldDate, Required: true},
		{Name: "endDate", Label: "End Date", Kind: FieldDate, Required: true},
		{Name: "location", Label: "Venue / Location", Kind: FieldText, Required: true},
		{Name: "facilitator", Label: "Facilitator", Kind: FieldText},
		{Name: "registrationType", Label: "Registration Type", Kind: FieldSelect, Options: []string{"Free", "Paid", "Invite Only"}},
		{Name: "registrationUrl", Label: "Registration URL", Kind: FieldURL},
		{Name: "workEmail", Label: "Work Email", Kind: FieldEmail, Required: true},
	},
}

// FieldsFor returns the field descriptors for a listing type. The returned
// slice must not be mutated.
func FieldsFor(t ListingType) []FieldDescriptor {
	return listingFields[t]
}

// dateFormats accepted for date fields: plain dates and full timestamps.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// ValidatePayload checks a listing payload against the descriptors of the
// given type. It collects every missing or invalid field into a single
// ValidationError instead of stopping at the first, and rejects payload keys
// that no descriptor declares.
func ValidatePayload(t ListingType, payload map[string]any) error {
	descriptors := listingFields[t]
	if descriptors == nil {
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   "typeTag",
			Message: fmt.Sprintf("unknown listing type %q", t),
		})
	}

	var problems []apperrors.FieldError
	known := make(map[string]FieldDescriptor, len(descriptors))
	for _, d := range descriptors {
		known[d.Name] = d

		raw, present := payload[d.Name]
		str, isStr := raw.(string)
		empty := !present || raw == nil || (isStr && strings.TrimSpace(str) == "")
		if empty {
			if d.Required {
				problems = append(problems, apperrors.FieldError{Field: d.Name, Message: "required"})
			}
			continue
		}
		if msg := validateFieldValue(d, raw); msg != "" {
			problems = append(problems, apperrors.FieldError{Field: d.Name, Message: msg})
		}
	}

	for key := range payload {
		if _, ok := known[key]; !ok {
			problems = append(problems, apperrors.FieldError{Field: key, Message: "not a valid field for this listing type"})
		}
	}

	if len(problems) > 0 {
		return apperrors.NewValidationError(problems...)
	}
	return nil
}

func validateFieldValue(d FieldDescriptor, raw any) string {
	switch d.Kind {
	case FieldText, FieldTextarea:
		if _, ok := raw.(string); !ok {
			return "must be a string"
		}
	case FieldDate:
		str, ok := raw.(string)
		if !ok {
			return "must be a date string"
		}
		for _, format := range dateFormats {
			if _, err := time.Parse(format, str); err == nil {
				return ""
			}
		}
		return "must be a date (YYYY-MM-DD or RFC3339)"
	case FieldSelect:
		str, ok := raw.(string)
		if !ok {
			return "must be a string"
		}
		if len(d.Options) == 0 {
			return "" // options sourced from a taxonomy registry, checked upstream
		}
		for _, opt := range d.Options {
			if str == opt {
				return ""
			}
		}
		return fmt.Sprintf("must be one of: %s", strings.Join(d.Options, ", "))
	case FieldNumber:
		switch v := raw.(type) {
		case float64, int, int64:
			return ""
		case string:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return "must be a number"
			}
		default:
			return "must be a number"
		}
	case FieldURL:
		str, ok := raw.(string)
		if !ok {
			return "must be a URL"
		}
		parsed, err := url.Parse(str)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return "must be a valid http(s) URL"
		}
	case FieldEmail:
		str, ok := raw.(string)
		if !ok {
			return "must be an email address"
		}
		if _, err := mail.ParseAddress(str); err != nil {
			return "must be a valid email address"
		}
	}
	return ""
}
