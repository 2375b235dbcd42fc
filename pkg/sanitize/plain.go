package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// sanitizePlain reduces markup to escaped text. Script and style content is
// dropped, line breaks become <br>.
func sanitizePlain(markup string) string {
	normalized := strings.ReplaceAll(markup, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	cleaned := plainSanitizer().Sanitize(normalized)
	return strings.ReplaceAll(cleaned, "\n", "<br>")
}

func plainSanitizer() *bluemonday.Policy {
	plainPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br")
		plainPolicy = policy
	})
	return plainPolicy
}
