package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// NewUUID returns a fresh random UUID.
func NewUUID() uuid.UUID {
	return uuid.New()
}

// Slugify lowercases s and reduces it to a URL-safe slug of letters,
// digits and single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// randomSuffix returns an 8-character uppercase token for generated codes.
func randomSuffix() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// GenerateInvoiceNo builds an invoice number from the branch prefix and a
// random suffix.
func GenerateInvoiceNo(prefix string) string {
	return prefix + randomSuffix()
}

// GenerateMedicineCode builds a code for medicines created without one.
func GenerateMedicineCode() string {
	return "MED-" + randomSuffix()
}
