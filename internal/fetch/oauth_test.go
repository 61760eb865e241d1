package fetch

import (
	"context"
	"testing"
)

func TestOAuthToken_EnvWins(t *testing.T) {
	t.Setenv("CLAUDE_OAUTH_TOKEN", "tok-from-env")

	if got := OAuthToken(context.Background()); got != "tok-from-env" {
		t.Fatalf("OAuthToken() = %q, want tok-from-env", got)
	}
}

func TestParseCredential(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare token", "sk-ant-oat01-abc\n", "sk-ant-oat01-abc"},
		{"flat json", `{"accessToken":"tok-flat"}`, "tok-flat"},
		{"keytar json", `{"claudeAiOauth":{"accessToken":"tok-nested"}}`, "tok-nested"},
		{"json without token", `{"refreshToken":"r"}`, ""},
		{"empty", "  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCredential(tt.raw); got != tt.want {
				t.Fatalf("parseCredential(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
