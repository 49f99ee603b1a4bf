package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{target: "/organizations/acme/settings/general", want: "/organizations/acme/settings/general"},
		{target: "/organizations?x=1", want: "/organizations?x=1"},
		{target: "", want: "/fallback"},
		{target: "https://evil.example.com", want: "/fallback"},
		{target: "//evil.example.com", want: "/fallback"},
		{target: "/\\evil.example.com", want: "/fallback"},
		{target: "organizations", want: "/fallback"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeRedirect(tt.target, "/fallback"), tt.target)
	}
}
