// manifest/manifest.go

/* Package manifest describes the API permissions the tool needs granted in a tenant. The list is
declarative: it is printed for an administrator or read from a package-solution.json file and is
never consulted when searching. */
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	MicrosoftGraphResource = "Microsoft Graph"
	// MicrosoftGraphAppID is the well-known application id of Microsoft Graph in every tenant.
	MicrosoftGraphAppID = "00000003-0000-0000-c000-000000000000"

	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

var wellKnownResourceAppIDs = map[string]string{
	strings.ToLower(MicrosoftGraphResource): MicrosoftGraphAppID,
}

// WebAPIPermissionRequest is one {resource, scope} pair an administrator has to approve.
type WebAPIPermissionRequest struct {
	Resource string `json:"resource" yaml:"resource"`
	Scope    string `json:"scope" yaml:"scope"`
}

// ResourceAppID returns the application id for well-known resource names. Resources that are
// already given by id are returned as is.
func (p WebAPIPermissionRequest) ResourceAppID() string {
	if id, ok := wellKnownResourceAppIDs[strings.ToLower(p.Resource)]; ok {
		return id
	}
	return p.Resource
}

// Manifest is the ordered permission list of a package.
type Manifest struct {
	WebAPIPermissionRequests []WebAPIPermissionRequest `json:"webApiPermissionRequests" yaml:"webApiPermissionRequests"`
}

type packageSolution struct {
	Solution Manifest `json:"solution"`
}

// Default returns the permissions both search paths rely on.
func Default() Manifest {
	return Manifest{
		WebAPIPermissionRequests: []WebAPIPermissionRequest{
			{Resource: MicrosoftGraphResource, Scope: "User.ReadBasic.All"},
		},
	}
}

// Load reads the solution.webApiPermissionRequests list from a package-solution.json file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes package-solution.json content and validates the permission list.
func Parse(data []byte) (Manifest, error) {
	var doc packageSolution
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := doc.Solution.Validate(); err != nil {
		return Manifest{}, err
	}
	return doc.Solution, nil
}

// Validate rejects empty fields and duplicate pairs. Resource and scope compare case-insensitively.
func (m Manifest) Validate() error {
	var errs []error
	seen := make(map[string]int, len(m.WebAPIPermissionRequests))
	for i, request := range m.WebAPIPermissionRequests {
		resource := strings.TrimSpace(request.Resource)
		scope := strings.TrimSpace(request.Scope)
		if resource == "" {
			errs = append(errs, fmt.Errorf("permission %d: resource is empty", i))
		}
		if scope == "" {
			errs = append(errs, fmt.Errorf("permission %d: scope is empty", i))
		}
		if resource == "" || scope == "" {
			continue
		}
		key := strings.ToLower(resource) + "\x00" + strings.ToLower(scope)
		if first, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("permission %d duplicates permission %d (%s / %s)", i, first, resource, scope))
			continue
		}
		seen[key] = i
	}
	return errors.Join(errs...)
}

// Scopes returns the distinct scopes requested for resource, sorted.
func (m Manifest) Scopes(resource string) []string {
	set := map[string]struct{}{}
	for _, request := range m.WebAPIPermissionRequests {
		if strings.EqualFold(request.Resource, resource) {
			set[request.Scope] = struct{}{}
		}
	}
	scopes := make([]string, 0, len(set))
	for scope := range set {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	return scopes
}

// Render writes the manifest to w as json, yaml or an aligned table.
func (m Manifest) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(packageSolution{Solution: m})
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(m); err != nil {
			return err
		}
		return encoder.Close()
	case FormatTable, "":
		return m.renderTable(w)
	default:
		return fmt.Errorf("unsupported manifest format %q: expected json, yaml or table", format)
	}
}

func (m Manifest) renderTable(w io.Writer) error {
	resourceWidth := len("RESOURCE")
	for _, request := range m.WebAPIPermissionRequests {
		if len(request.Resource) > resourceWidth {
			resourceWidth = len(request.Resource)
		}
	}
	if _, err := fmt.Fprintf(w, "%-*s  %s\n", resourceWidth, "RESOURCE", "SCOPE"); err != nil {
		return err
	}
	for _, request := range m.WebAPIPermissionRequests {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", resourceWidth, request.Resource, request.Scope); err != nil {
			return err
		}
	}
	return nil
}
