package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrantsAdmin(t *testing.T) {
	tests := []struct {
		rules string
		want  bool
	}{
		{"*:*", true},
		{" *:* ", true},
		{"API.Users:*", false},
		{"Apps:Review,*:*", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			assert.Equal(t, tt.want, GrantsAdmin(tt.rules))
		})
	}
}

func TestMatchRules(t *testing.T) {
	tests := []struct {
		name   string
		rules  string
		app    string
		action string
		want   bool
	}{
		{"wildcard everything", "*:*", "Apps", "Review", true},
		{"wildcard action", "API.Users:*", "API.Users", "Delete", true},
		{"other app", "API.Users:*", "Apps", "Review", false},
		{"exact pair in list", "Apps:Edit, Apps:Review", "Apps", "Review", true},
		{"wildcard app", "*:Review", "Reviews", "Review", true},
		{"malformed rule", "Apps", "Apps", "Review", false},
		{"empty", "", "Apps", "Review", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchRules(tt.rules, tt.app, tt.action))
		})
	}
}

func TestActionAllowed(t *testing.T) {
	assert.True(t, ActionAllowed([]string{"Apps:Edit", "Reviews:*"}, "Reviews", "Moderate"))
	assert.False(t, ActionAllowed([]string{"Apps:Edit"}, "Reviews", "Moderate"))
	assert.False(t, ActionAllowed(nil, "Reviews", "Moderate"))
}
