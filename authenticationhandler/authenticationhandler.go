// authenticationhandler/authenticationhandler.go

/* The authenticationhandler package turns configured Azure AD credentials into an
azcore.TokenCredential and caches the access tokens issued for each resource. Both Graph
client paths obtain their tokens through it. */
package authenticationhandler

import (
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"go.uber.org/zap"
)

const (
	AuthMethodClientSecret = "clientsecret"
	AuthMethodCertificate  = "certificate"
	AuthMethodAzureCLI     = "azurecli"
	AuthMethodDefault      = "default"
)

// ClientCredentials holds the app registration details used to authenticate.
type ClientCredentials struct {
	TenantID            string
	ClientID            string
	ClientSecret        string
	CertificatePath     string
	CertificatePassword string
}

// NewTokenCredential builds the azidentity credential matching authMethod.
func NewTokenCredential(authMethod string, creds ClientCredentials, log logger.Logger) (azcore.TokenCredential, error) {
	method := strings.ToLower(strings.TrimSpace(authMethod))
	log.Debug("Building Azure AD credential", zap.String("auth_method", method), zap.String("tenant_id", creds.TenantID), zap.String("client_id", creds.ClientID))

	switch method {
	case AuthMethodClientSecret:
		if err := ValidateClientCredentials(creds, false); err != nil {
			return nil, err
		}
		cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("creating client secret credential: %w", err)
		}
		return cred, nil

	case AuthMethodCertificate:
		if err := ValidateClientCredentials(creds, true); err != nil {
			return nil, err
		}
		certData, err := os.ReadFile(creds.CertificatePath)
		if err != nil {
			return nil, fmt.Errorf("reading certificate %s: %w", creds.CertificatePath, err)
		}
		var password []byte
		if creds.CertificatePassword != "" {
			password = []byte(creds.CertificatePassword)
		}
		certs, key, err := azidentity.ParseCertificates(certData, password)
		if err != nil {
			return nil, fmt.Errorf("parsing certificate %s: %w", creds.CertificatePath, err)
		}
		cred, err := azidentity.NewClientCertificateCredential(creds.TenantID, creds.ClientID, certs, key, nil)
		if err != nil {
			return nil, fmt.Errorf("creating client certificate credential: %w", err)
		}
		return cred, nil

	case AuthMethodAzureCLI:
		cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{TenantID: creds.TenantID})
		if err != nil {
			return nil, fmt.Errorf("creating azure cli credential: %w", err)
		}
		return cred, nil

	case AuthMethodDefault:
		cred, err := azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{TenantID: creds.TenantID})
		if err != nil {
			return nil, fmt.Errorf("creating default azure credential: %w", err)
		}
		return cred, nil

	default:
		return nil, log.Error("Authentication method not supported", zap.String("auth_method", authMethod))
	}
}
