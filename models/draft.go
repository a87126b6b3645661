package models

import (
	"strings"
	"unicode/utf8"
)

// LocalImage is a device-side image reference that has not been uploaded yet.
// ID is the local identifier the picker assigned; URI points at the file.
type LocalImage struct {
	ID  int
	URI string
}

// ReportDraft is an unsaved report-in-progress held by the client.
type ReportDraft struct {
	Title       string
	Description string
	Location    Location
	WasteType   string
	Severity    string
	Priority    int
	Tags        []string
	Images      []LocalImage
}

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
	MaxReportImages   = 5
)

// Normalize trims the free-text fields and suppresses duplicate tags while
// preserving their order. Called before validation and before submission.
func (d *ReportDraft) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Location.Address = strings.TrimSpace(d.Location.Address)
	if len(d.Tags) > 0 {
		seen := make(map[string]bool, len(d.Tags))
		deduped := make([]string, 0, len(d.Tags))
		for _, tag := range d.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			deduped = append(deduped, tag)
		}
		d.Tags = deduped
	}
}

// ValidateDraft checks a normalized draft and returns human-readable error
// messages, empty when the draft is valid. Checks run in a fixed order
// (title, description, address, waste type, images) so the first error a
// caller sees is stable for a given draft.
func ValidateDraft(d ReportDraft) []string {
	var errs []string

	title := strings.TrimSpace(d.Title)
	if title == "" {
		errs = append(errs, "Please enter a title")
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		errs = append(errs, "Title must be at most 100 characters")
	}

	description := strings.TrimSpace(d.Description)
	if description == "" {
		errs = append(errs, "Please enter a description")
	} else if utf8.RuneCountInString(description) > DescriptionMaxLen {
		errs = append(errs, "Description must be at most 500 characters")
	}

	if strings.TrimSpace(d.Location.Address) == "" {
		errs = append(errs, "Please enter an address")
	}

	if d.WasteType == "" {
		errs = append(errs, "Please select a waste type")
	} else if !WasteType(d.WasteType).Valid() {
		errs = append(errs, "Unknown waste type")
	}

	if len(d.Images) == 0 {
		errs = append(errs, "Please add at least 1 photo")
	} else if len(d.Images) > MaxReportImages {
		errs = append(errs, "You can attach at most 5 photos")
	}

	return errs
}

// PriorityTier buckets the 1-10 priority scale for display purposes.
type PriorityTier string

const (
	TierCritical PriorityTier = "critical"
	TierWarning  PriorityTier = "warning"
	TierOK       PriorityTier = "ok"
)

// PriorityColor maps a report priority to its visual tier. The thresholds are
// a business rule: 7+ is critical, 4-6 warns, anything lower is fine.
func PriorityColor(priority int) PriorityTier {
	if priority >= 7 {
		return TierCritical
	}
	if priority >= 4 {
		return TierWarning
	}
	return TierOK
}
