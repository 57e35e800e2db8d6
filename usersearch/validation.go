// usersearch/validation.go
package usersearch

import "strings"

// InvalidSearchQueryMessage is shown next to the search field when the query contains a space.
const InvalidSearchQueryMessage = "Invalid value for 'Search for' field"

// ValidateSearchQuery returns the inline validation message for q, or "" when q is acceptable.
// The result is advisory only; searches run regardless.
func ValidateSearchQuery(q string) string {
	if q == "" || !strings.Contains(q, " ") {
		return ""
	}
	return InvalidSearchQueryMessage
}
