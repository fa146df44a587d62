package codespace

import (
	"encoding/hex"
	"strings"

	"gitlab.com/llmeet.net/internal/domain"
)

const (
	namePrefix       = "llmeet-"
	suffixLen        = 8
	devcontainerPath = ".devcontainer/devcontainer.json"
)

func displayName(problemID string) string {
	return namePrefix + problemID + "-" + domain.ShortID()
}

// problemIDFrom recovers the problem id from a display name built by displayName.
// ok is false for codespaces the platform did not create.
func problemIDFrom(name string) (string, bool) {
	if !strings.HasPrefix(name, namePrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(name, namePrefix)
	i := strings.LastIndexByte(rest, '-')
	if i > 0 && len(rest)-i-1 == suffixLen {
		if _, err := hex.DecodeString(rest[i+1:]); err == nil {
			return rest[:i], true
		}
	}
	return rest, rest != ""
}
