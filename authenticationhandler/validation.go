// authenticationhandler/validation.go

package authenticationhandler

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var tenantDomainRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*(\.[a-zA-Z0-9-]+)+$`)

// IsValidClientID checks if the provided client ID is a valid UUID.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidClientID(clientID string) (bool, string) {
	if _, err := uuid.Parse(clientID); err != nil || len(clientID) != 36 {
		return false, "Client ID is not a valid UUID format."
	}
	return true, ""
}

// IsValidTenantID accepts a tenant GUID or a verified domain such as contoso.onmicrosoft.com.
func IsValidTenantID(tenantID string) (bool, string) {
	if _, err := uuid.Parse(tenantID); err == nil && len(tenantID) == 36 {
		return true, ""
	}
	if tenantDomainRegex.MatchString(tenantID) {
		return true, ""
	}
	return false, "Tenant ID must be a GUID or a domain name."
}

// ValidateClientCredentials checks the fields required by the app-only credential types.
func ValidateClientCredentials(creds ClientCredentials, certificate bool) error {
	if ok, msg := IsValidTenantID(creds.TenantID); !ok {
		return fmt.Errorf("invalid tenant id %q: %s", creds.TenantID, msg)
	}
	if ok, msg := IsValidClientID(creds.ClientID); !ok {
		return fmt.Errorf("invalid client id %q: %s", creds.ClientID, msg)
	}
	if certificate {
		if creds.CertificatePath == "" {
			return errors.New("certificate path is required for certificate authentication")
		}
		return nil
	}
	if creds.ClientSecret == "" {
		return errors.New("client secret is required for client secret authentication")
	}
	return nil
}
