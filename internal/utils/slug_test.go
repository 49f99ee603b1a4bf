package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Acme Inc", want: "acme-inc"},
		{name: "punctuation", input: "  Hello, World!! ", want: "hello-world"},
		{name: "accents", input: "Café Crème", want: "cafe-creme"},
		{name: "digits", input: "Team 42", want: "team-42"},
		{name: "fallback", input: "!!!", want: "organization"},
		{name: "non latin falls back", input: "組織", want: "organization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Slugify(tt.input, "organization"))
		})
	}
}

func TestRandomSuffix(t *testing.T) {
	s, err := RandomSuffix(6)
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^[a-z0-9]{6}$`), s)
}

func TestGenerateInviteLinkToken(t *testing.T) {
	a, err := GenerateInviteLinkToken(32)
	require.NoError(t, err)
	b, err := GenerateInviteLinkToken(32)
	require.NoError(t, err)

	require.Len(t, a, 43)
	require.NotEqual(t, a, b)
	require.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+$`), a)
}
