package sanitizer

import "strings"

// NormalizeContact strips the separators people type into phone numbers
// (spaces, dashes, dots, parentheses). Anything else is left untouched so
// validation can report it.
func NormalizeContact(contact string) string {
	contact = strings.TrimSpace(contact)

	var result strings.Builder
	for _, r := range contact {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
