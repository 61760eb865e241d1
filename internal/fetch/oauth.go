package fetch

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	credentialService = "Claude Code-credentials"
	keychainTimeout   = 5 * time.Second
)

// OAuthToken resolves the Claude OAuth credential: the CLAUDE_OAUTH_TOKEN
// environment variable wins, then the platform secret store (macOS Keychain
// via security, GNOME Keyring via secret-tool). Returns "" when nothing is
// available; the limits fetch simply no-ops then.
func OAuthToken(ctx context.Context) string {
	if tok := os.Getenv("CLAUDE_OAUTH_TOKEN"); tok != "" {
		return tok
	}

	ctx, cancel := context.WithTimeout(ctx, keychainTimeout)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "security",
			"find-generic-password", "-s", credentialService, "-w")
	case "linux":
		if _, err := exec.LookPath("secret-tool"); err != nil {
			return ""
		}
		cmd = exec.CommandContext(ctx, "secret-tool",
			"lookup", "service", credentialService)
	default:
		return ""
	}

	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return parseCredential(string(out))
}

// parseCredential extracts the access token from a secret-store payload.
// keytar stores credentials as JSON; a bare token is also accepted.
func parseCredential(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if gjson.Valid(raw) {
		if tok := gjson.Get(raw, "accessToken").String(); tok != "" {
			return tok
		}
		if tok := gjson.Get(raw, "claudeAiOauth.accessToken").String(); tok != "" {
			return tok
		}
		return ""
	}
	return raw
}
