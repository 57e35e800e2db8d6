// odata/odata.go
// Package odata builds the query options sent with user searches.
package odata

import (
	"fmt"
	"net/url"
	"strings"
)

// UserSelectFields is the projection requested for every user search.
var UserSelectFields = []string{"displayName", "mail", "userPrincipalName"}

// userSearchProperties are compared for equality against the search text.
var userSearchProperties = []string{"givenName", "surname", "displayName"}

// EscapeLiteral makes s safe to place between single quotes in an OData expression by
// doubling every single quote. It does no URL encoding; that happens once, when the
// expression is written into a query string.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// UserSearchFilter returns the $filter expression matching users whose given name, surname
// or display name equals text exactly.
func UserSearchFilter(text string) string {
	literal := EscapeLiteral(text)
	clauses := make([]string, 0, len(userSearchProperties))
	for _, property := range userSearchProperties {
		clauses = append(clauses, fmt.Sprintf("%s eq '%s'", property, literal))
	}
	return strings.Join(clauses, " or ")
}

// SelectClause joins fields the way $select expects them.
func SelectClause(fields []string) string {
	return strings.Join(fields, ",")
}

// EncodeQueryValue percent-encodes a query option value. Spaces become %20 rather than '+'.
func EncodeQueryValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// UsersQuery returns the encoded query string for a user search. Each value is encoded
// exactly once.
func UsersQuery(text string) string {
	return "$select=" + EncodeQueryValue(SelectClause(UserSelectFields)) +
		"&$filter=" + EncodeQueryValue(UserSearchFilter(text))
}
