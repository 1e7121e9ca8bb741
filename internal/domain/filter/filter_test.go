package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_NormalisesAndDedupes(t *testing.T) {
	s := New([]string{" Go ", "go", "", "React"}, "  Mentor ", " ")
	assert.Equal(t, []string{"Go", "React"}, s.Skills)
	assert.Equal(t, "Mentor", s.Role)
	assert.Equal(t, "", s.Timezone)
}

func TestState_Active(t *testing.T) {
	assert.False(t, New(nil, "", "").Active())
	assert.False(t, New([]string{" "}, " ", " ").Active())
	assert.True(t, New([]string{"Go"}, "", "").Active())
	assert.True(t, New(nil, "Designer", "").Active())
	assert.True(t, New(nil, "", "UTC+1").Active())
}

func TestState_Toggle(t *testing.T) {
	s := New(nil, "", "")

	s1 := s.Toggle("Go")
	s2 := s1.Toggle("Python")
	s3 := s2.Toggle("go")

	assert.Empty(t, s.Skills)
	assert.Equal(t, []string{"Go"}, s1.Skills)
	assert.Equal(t, []string{"Go", "Python"}, s2.Skills)
	assert.Equal(t, []string{"Python"}, s3.Skills)
	assert.Equal(t, []string{"Go", "Python"}, s2.Skills, "toggle must not mutate the receiver")
}

func TestState_QueryParams(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{name: "empty", state: New(nil, "", ""), want: ""},
		{name: "skills only", state: New([]string{"Go", "SQL"}, "", ""), want: "skills=Go%2CSQL"},
		{name: "role only", state: New(nil, "Mentor", ""), want: "role=Mentor"},
		{name: "timezone only", state: New(nil, "", "UTC+1"), want: "timezone=UTC%2B1"},
		{name: "all", state: New([]string{"Go"}, "Mentor", "UTC+1"), want: "role=Mentor&skills=Go&timezone=UTC%2B1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.QueryParams().Encode())
		})
	}
}

func TestParseSkills(t *testing.T) {
	assert.Nil(t, ParseSkills(" "))
	assert.Equal(t, []string{"Go", "Node.js"}, ParseSkills("Go, ,Node.js,"))
}
