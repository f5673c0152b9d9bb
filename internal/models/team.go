package models

import "strings"

// Teams is the fixed team enumeration offered by both selectors.
type Teams []string

// Contains reports whether name is one of the teams, ignoring case.
func (t Teams) Contains(name string) bool {
	for _, n := range t {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Canonical returns the configured spelling of name, or "" if unknown.
func (t Teams) Canonical(name string) string {
	for _, n := range t {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n
		}
	}
	return ""
}
