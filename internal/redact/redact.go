// Package redact scrubs secrets and personal data out of strings before they
// reach the logs. Error details from the database layer can carry connection
// strings, SQL text and member data (emails, birth dates); none of it may be
// logged verbatim.
package redact

import "regexp"

// Placeholders written in place of redacted fragments.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	DatePlaceholder       = "[REDACTED_DATE]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; earlier rules see the raw input. The DSN rule must run
// before the email rule, since user:pass@host looks like an address.
var rules = []rule{
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://[^\s@/]+@`), "$1://" + CredentialPlaceholder + "@"},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret)(\s*[=:]\s*['"]?)[^'"&\s]+`), "$1$2" + CredentialPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},
	{regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]{8,}=*`), "Bearer " + TokenPlaceholder},
	{regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`), CredentialPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`\b(19|20)\d{2}-\d{2}-\d{2}\b`), DatePlaceholder},
	{regexp.MustCompile(`(?is)\b(SELECT\s.+?\sFROM|INSERT\s+INTO|UPDATE\s+\w+\s+SET|DELETE\s+FROM)\b.*`), SQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){3,}`), PathPlaceholder},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}
	out := input
	for _, r := range rules {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	return out
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
