package logging

import "regexp"

// Placeholder replaces redacted credential material in log output.
const Placeholder = "[REDACTED]"

var (
	bearerTokenPattern = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9\-\._~+/]+=*)`)
	keyValuePattern    = regexp.MustCompile(
		`(?i)((?:"|')?(?:api[_-]?key|access[_-]?token|token|secret|password|credential)(?:"|')?\s*(?:=|:)\s*)(?:"|')?([^"'\s,;]+)((?:"|')?)`,
	)
	standaloneSecretPattern = regexp.MustCompile(
		`(?i)(sk-[A-Za-z0-9]{16,}|gsk_[A-Za-z0-9]{16,}|AIza[A-Za-z0-9\-_]{16,})`,
	)
)

// Redact masks API keys and bearer tokens in a log line. Provider credentials
// must never reach the log output, even through wrapped error strings.
func Redact(line string) string {
	sanitized := bearerTokenPattern.ReplaceAllString(line, "${1}"+Placeholder)
	sanitized = keyValuePattern.ReplaceAllString(sanitized, "${1}"+Placeholder+"${3}")
	sanitized = standaloneSecretPattern.ReplaceAllString(sanitized, Placeholder)
	return sanitized
}
