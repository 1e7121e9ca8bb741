package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ID is a backend user identifier. The backend sends ids as JSON numbers or
// strings; both decode to the same ID.
type ID string

var numericID = regexp.MustCompile(`^[0-9]+$`)

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// IsNumeric reports whether id is a well-formed numeric identifier.
func (id ID) IsNumeric() bool { return numericID.MatchString(string(id)) }

type Skill struct {
	Name string `json:"name"`
}

// User is a read-only snapshot of a backend profile.
type User struct {
	ID           ID      `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	Bio          string  `json:"bio"`
	Skills       []Skill `json:"skills"`
	Timezone     string  `json:"timezone"`
	Availability string  `json:"availability"`
	ProfileURL   string  `json:"profileUrl"`
}

func (u User) SkillNames() []string {
	out := make([]string, 0, len(u.Skills))
	for _, s := range u.Skills {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ContainsID reports whether any user in users has the given id.
func ContainsID(users []User, id ID) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func IDs(users []User) []ID {
	out := make([]ID, 0, len(users))
	for _, u := range users {
		if u.ID.IsZero() {
			continue
		}
		out = append(out, u.ID)
	}
	return out
}
