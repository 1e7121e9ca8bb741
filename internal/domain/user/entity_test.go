package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DecodesNumericAndStringIDs(t *testing.T) {
	var users []User
	err := json.Unmarshal([]byte(`[
		{"id": 42, "username": "ada", "skills": [{"name": "Go"}, {"name": " "}], "profileUrl": "https://x/ada"},
		{"id": " 7 ", "username": "bob"},
		{"id": null, "username": "ghost"}
	]`), &users)
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, ID("42"), users[0].ID)
	assert.Equal(t, []string{"Go"}, users[0].SkillNames())
	assert.Equal(t, "https://x/ada", users[0].ProfileURL)
	assert.Equal(t, ID("7"), users[1].ID)
	assert.True(t, users[2].ID.IsZero())
	assert.Equal(t, []ID{"42", "7"}, IDs(users))
}

func TestID_IsNumeric(t *testing.T) {
	assert.True(t, ID("12").IsNumeric())
	assert.False(t, ID("abc").IsNumeric())
	assert.False(t, ID("1a").IsNumeric())
	assert.False(t, ID("").IsNumeric())
	assert.False(t, ID("-3").IsNumeric())
}

func TestContainsID(t *testing.T) {
	users := []User{{ID: "1"}, {ID: "2"}}
	assert.True(t, ContainsID(users, "2"))
	assert.False(t, ContainsID(users, "3"))
	assert.False(t, ContainsID(nil, "1"))
}
