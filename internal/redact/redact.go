// Package redact scrubs credentials, tokens, personal data and infrastructure
// details from strings before they are logged. Handlers log store and auth
// failures through this package so that connection strings, bcrypt hashes,
// bearer tokens, e-mail addresses and phone numbers never reach log sinks.
package redact

import "regexp"

// Placeholders substituted for each class of sensitive value.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	HashPlaceholder       = "[REDACTED_HASH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PhonePlaceholder      = "[REDACTED_PHONE]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Order matters: whole connection strings and tokens are replaced before the
// narrower e-mail, host and path rules could split them apart.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mongodb(?:\+srv)?|mysql)://\S+`),
		replacement: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		replacement: "Bearer " + TokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: TokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		replacement: HashPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd|senha|secret|jwt_secret|access_key|secret_access_key)(\s*[=:]\s*['"]?)[^'"&\s,}]+`),
		replacement: "${1}${2}" + CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: EmailPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\+?\(?\d{2,3}\)?[\s.-]?\d{4,5}[\s.-]\d{4}\b`),
		replacement: PhonePlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET)\b\s+\w+`,
		),
		replacement: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,}:\d{2,5}\b|\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{2,5})?\b`),
		replacement: HostPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		replacement: PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
