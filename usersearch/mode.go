// usersearch/mode.go
package usersearch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ClientMode selects which client path a search takes.
type ClientMode int

const (
	// ClientModeAAD uses the generic authenticated HTTP client against a hand-built URL.
	ClientModeAAD ClientMode = iota
	// ClientModeGraph uses the typed Graph client and its fluent query builder.
	ClientModeGraph
)

var clientModeNames = map[ClientMode]string{
	ClientModeAAD:   "aad",
	ClientModeGraph: "graph",
}

// String returns the persisted name of the mode.
func (m ClientMode) String() string {
	if name, ok := clientModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ClientMode(%d)", int(m))
}

// Valid reports whether m is one of the two defined modes.
func (m ClientMode) Valid() bool {
	_, ok := clientModeNames[m]
	return ok
}

// ParseClientMode accepts the persisted names plus the descriptive aliases shown in the settings panel.
func ParseClientMode(s string) (ClientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aad", "aadhttpclient", "usegenericclient", "generic":
		return ClientModeAAD, nil
	case "graph", "msgraphclient", "usegraphclient", "typed":
		return ClientModeGraph, nil
	default:
		return ClientModeAAD, fmt.Errorf("unknown client mode %q: expected aad or graph", s)
	}
}

// MarshalJSON stores the mode by name.
func (m ClientMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid client mode %d", int(m))
	}
	return json.Marshal(m.String())
}

// UnmarshalJSON reads a mode stored by name.
func (m *ClientMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("client mode must be a string: %w", err)
	}
	parsed, err := ParseClientMode(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
