package filter

import (
	"net/url"
	"strings"
)

var (
	DefaultRoles = []string{
		"Developer",
		"Designer",
		"Product Manager",
		"Data Scientist",
		"Mentor",
		"Student",
	}
	DefaultTimezones = []string{
		"UTC-8",
		"UTC-5",
		"UTC+0",
		"UTC+1",
		"UTC+3",
		"UTC+5:30",
		"UTC+7",
		"UTC+8",
		"UTC+9",
	}
)

// State is the directory filter. Skills keep selection order and are unique
// case-insensitively. State values are immutable; mutators return a copy.
type State struct {
	Skills   []string `json:"skills"`
	Role     string   `json:"role"`
	Timezone string   `json:"timezone"`
}

func New(skills []string, role, timezone string) State {
	s := State{
		Role:     strings.TrimSpace(role),
		Timezone: strings.TrimSpace(timezone),
		Skills:   []string{},
	}
	for _, sk := range skills {
		sk = strings.TrimSpace(sk)
		if sk == "" || s.HasSkill(sk) {
			continue
		}
		s.Skills = append(s.Skills, sk)
	}
	return s
}

// ParseSkills splits a comma separated skills query value.
func ParseSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Active reports whether any field narrows the directory.
func (s State) Active() bool {
	return len(s.Skills) > 0 || s.Role != "" || s.Timezone != ""
}

func (s State) HasSkill(skill string) bool {
	for _, sk := range s.Skills {
		if strings.EqualFold(sk, skill) {
			return true
		}
	}
	return false
}

func (s State) Toggle(skill string) State {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return s.clone()
	}
	out := s.clone()
	if !s.HasSkill(skill) {
		out.Skills = append(out.Skills, skill)
		return out
	}
	out.Skills = out.Skills[:0]
	for _, sk := range s.Skills {
		if strings.EqualFold(sk, skill) {
			continue
		}
		out.Skills = append(out.Skills, sk)
	}
	return out
}

func (s State) WithRole(role string) State {
	out := s.clone()
	out.Role = strings.TrimSpace(role)
	return out
}

func (s State) WithTimezone(tz string) State {
	out := s.clone()
	out.Timezone = strings.TrimSpace(tz)
	return out
}

// QueryParams holds only the non-empty fields; skills are comma joined.
func (s State) QueryParams() url.Values {
	q := url.Values{}
	if len(s.Skills) > 0 {
		q.Set("skills", strings.Join(s.Skills, ","))
	}
	if s.Role != "" {
		q.Set("role", s.Role)
	}
	if s.Timezone != "" {
		q.Set("timezone", s.Timezone)
	}
	return q
}

func (s State) clone() State {
	out := s
	out.Skills = append(make([]string, 0, len(s.Skills)), s.Skills...)
	return out
}
