// Package constants provides shared constants for the day scheduler
package constants

// Canonical three-letter weekday tokens
const (
	Mon = "Mon"
	Tue = "Tue"
	Wed = "Wed"
	Thu = "Thu"
	Fri = "Fri"
	Sat = "Sat"
	Sun = "Sun"
)

// CanonicalDays returns every canonical token, Sunday included, in weekly order.
// Used by the token scanners; see the days package for the ranked subset.
func CanonicalDays() []string {
	return []string{Mon, Tue, Wed, Thu, Fri, Sat, Sun}
}
