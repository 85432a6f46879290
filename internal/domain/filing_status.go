package domain

import (
	"fmt"
	"strings"
)

// FilingStatus is the federal filing status used to select brackets,
// standard deduction and surtax thresholds
type FilingStatus string

const (
	FilingStatusSingle               FilingStatus = "single"
	FilingStatusMarriedFilingJointly FilingStatus = "marriedFilingJointly"
	FilingStatusHeadOfHousehold      FilingStatus = "headOfHousehold"
)

// FilingStatuses lists the supported statuses in display order
var FilingStatuses = []FilingStatus{
	FilingStatusSingle,
	FilingStatusMarriedFilingJointly,
	FilingStatusHeadOfHousehold,
}

// ParseFilingStatus accepts the canonical names plus the short and
// snake_case aliases used in config files.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "s":
		return FilingStatusSingle, nil
	case "marriedfilingjointly", "married_filing_jointly", "mfj", "married":
		return FilingStatusMarriedFilingJointly, nil
	case "headofhousehold", "head_of_household", "hoh":
		return FilingStatusHeadOfHousehold, nil
	default:
		return "", fmt.Errorf("unknown filing status %q", s)
	}
}

// Valid reports whether fs is one of the supported statuses
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingStatusSingle, FilingStatusMarriedFilingJointly, FilingStatusHeadOfHousehold:
		return true
	}
	return false
}

// OrSingle returns fs, or single when fs is not a supported status
func (fs FilingStatus) OrSingle() FilingStatus {
	if fs.Valid() {
		return fs
	}
	return FilingStatusSingle
}

// IsMarried reports whether the status is a joint return
func (fs FilingStatus) IsMarried() bool {
	return fs == FilingStatusMarriedFilingJointly
}

// Label returns a human-readable name
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingStatusMarriedFilingJointly:
		return "Married Filing Jointly"
	case FilingStatusHeadOfHousehold:
		return "Head of Household"
	default:
		return "Single"
	}
}

// UnmarshalText lets YAML and JSON inputs use any accepted alias
func (fs *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}
