// usersearch/records.go
package usersearch

import (
	"sync"

	"github.com/microsoftgraph/msgraph-sdk-go/models"
)

// UserRecord is one row of search results, copied verbatim from Graph.
type UserRecord struct {
	DisplayName       string `json:"displayName" yaml:"displayName"`
	Mail              string `json:"mail" yaml:"mail"`
	UserPrincipalName string `json:"userPrincipalName" yaml:"userPrincipalName"`
}

// userCollectionResponse is the body returned by GET /users on the generic path.
type userCollectionResponse struct {
	Value []UserRecord `json:"value"`
}

// ResultSet holds the records of the most recent successful search. It is only ever replaced
// as a whole.
type ResultSet struct {
	mu      sync.RWMutex
	records []UserRecord
}

// Records returns a copy of the current records in server order.
func (r *ResultSet) Records() []UserRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UserRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records.
func (r *ResultSet) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// replace swaps in a new sequence, never merging with the previous one.
func (r *ResultSet) replace(records []UserRecord) {
	if records == nil {
		records = []UserRecord{}
	}
	r.mu.Lock()
	r.records = records
	r.mu.Unlock()
}

func recordsFromModels(users []models.Userable) []UserRecord {
	records := make([]UserRecord, 0, len(users))
	for _, user := range users {
		if user == nil {
			continue
		}
		records = append(records, UserRecord{
			DisplayName:       deref(user.GetDisplayName()),
			Mail:              deref(user.GetMail()),
			UserPrincipalName: deref(user.GetUserPrincipalName()),
		})
	}
	return records
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
