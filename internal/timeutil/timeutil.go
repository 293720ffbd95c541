package timeutil

import "time"

// ResolveLocation returns the location for an IANA timezone name,
// falling back to def when the name is empty or unknown.
func ResolveLocation(timezone string, def *time.Location) *time.Location {
	if timezone == "" {
		return def
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return def
	}
	return loc
}

// IsValidTimezone reports whether the name loads as an IANA timezone.
func IsValidTimezone(timezone string) bool {
	if timezone == "" {
		return false
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
