package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCost is returned when a cost is neither a number nor a numeric string.
	// The text is sent to clients as is.
	ErrInvalidCost = errors.New("Invalid cost")

	// ErrInvalidServiceRef is returned when an appointment's service is not a string or a number.
	ErrInvalidServiceRef = errors.New("Invalid service")
)

// ServiceRef is the service an appointment points at.
//
// Clients send either the numeric id or the name of a service. The value is
// kept exactly as received and written back unchanged; it is never checked
// against the services collection.
type ServiceRef struct {
	raw json.RawMessage
}

// ServiceRefFromID builds a numeric reference.
func ServiceRefFromID(id int) ServiceRef {
	return ServiceRef{raw: json.RawMessage(strconv.Itoa(id))}
}

// ServiceRefFromName builds a string reference.
func ServiceRefFromName(name string) ServiceRef {
	b, _ := json.Marshal(name)
	return ServiceRef{raw: b}
}

// IsZero reports whether the reference is absent, null, an empty string or the number 0.
func (r ServiceRef) IsZero() bool {
	switch {
	case len(r.raw) == 0, string(r.raw) == "null", string(r.raw) == `""`:
		return true
	case r.raw[0] == '"':
		return false
	}
	f, err := strconv.ParseFloat(string(r.raw), 64)
	return err == nil && f == 0
}

// IsName reports whether the reference was sent as a string.
func (r ServiceRef) IsName() bool {
	return len(r.raw) > 0 && r.raw[0] == '"'
}

// String returns the name, or the number in its original notation.
func (r ServiceRef) String() string {
	if len(r.raw) == 0 {
		return ""
	}
	if r.IsName() {
		var s string
		_ = json.Unmarshal(r.raw, &s)
		return s
	}
	return string(r.raw)
}

func (r ServiceRef) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

func (r *ServiceRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		r.raw = nil
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidServiceRef
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return ErrInvalidServiceRef
		}
	}

	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Amount is a cost as received from clients: a JSON number or a numeric string.
// An empty string counts as 0.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidCost
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrInvalidCost
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return ErrInvalidCost
	}
	*a = Amount(f)
	return nil
}

// Float64 returns the amount as a plain number.
func (a Amount) Float64() float64 {
	return float64(a)
}

// Credential is a name or password as received from clients. Any JSON
// value is accepted, but only a JSON string can match a stored value.
// String gives the text form: 5678 -> "5678", true -> "true".
type Credential struct {
	value string
	text  bool
	set   bool
}

// CredentialFromString builds a credential sent as a JSON string.
func CredentialFromString(s string) Credential {
	return Credential{value: s, text: true, set: s != ""}
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Credential{}

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CredentialFromString(s)
	case bytes.Equal(data, []byte("true")):
		*c = Credential{value: "true", set: true}
	case bytes.Equal(data, []byte("false")):
		*c = Credential{value: "false"}
	case data[0] == '{', data[0] == '[':
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		*c = Credential{value: compact.String(), set: true}
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*c = Credential{value: strconv.FormatFloat(f, 'f', -1, 64), set: f != 0}
	}
	return nil
}

// IsZero reports whether the credential is absent, null, "", 0 or false.
func (c Credential) IsZero() bool {
	return !c.set
}

// Matches reports whether the credential is the string stored.
func (c Credential) Matches(stored string) bool {
	return c.text && c.value == stored
}

// String returns the credential as text: "5678" for the number 5678.
func (c Credential) String() string {
	return c.value
}
