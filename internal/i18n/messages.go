// Package i18n holds the locale-keyed message tables for user-facing
// validation and integrity messages. Messages are looked up by code, never
// written inline at the call site.
package i18n

import (
	"fmt"
	"strings"
)

// DefaultLocale is used when a requested locale has no table or a code is
// missing from a locale's table.
const DefaultLocale = "en"

// Message codes shared by the validation engine and the transfer module.
const (
	CodeRequired          = "required"
	CodeInvalidSelection  = "invalidSelection"
	CodeDependencyUnmet   = "dependencyUnmet"
	CodeCustomTextEmpty   = "customTextEmpty"
	CodeCustomTextShort   = "customTextTooShort"
	CodeCustomTextLong    = "customTextTooLong"
	CodeCustomTextInvalid = "customTextInvalid"
	CodeCustomTextNearMax = "customTextNearLimit"
)

var tables = map[string]map[string]string{
	"en": {
		CodeRequired:          "please select %s",
		CodeInvalidSelection:  "selection %q is not available for %s",
		CodeDependencyUnmet:   "%s requires %s to be selected first",
		CodeCustomTextEmpty:   "text for %s must not be empty",
		CodeCustomTextShort:   "text for %s is too short (minimum %d characters)",
		CodeCustomTextLong:    "text for %s is too long (maximum %d characters)",
		CodeCustomTextInvalid: "text for %s contains characters that are not allowed",
		CodeCustomTextNearMax: "text for %s is close to the %d character limit",
	},
	"cs": {
		CodeRequired:          "vyberte prosím %s",
		CodeInvalidSelection:  "volba %q není pro %s dostupná",
		CodeDependencyUnmet:   "%s vyžaduje, aby bylo nejprve vybráno %s",
		CodeCustomTextEmpty:   "text pro %s nesmí být prázdný",
		CodeCustomTextShort:   "text pro %s je příliš krátký (minimálně %d znaky)",
		CodeCustomTextLong:    "text pro %s je příliš dlouhý (maximálně %d znaků)",
		CodeCustomTextInvalid: "text pro %s obsahuje nepovolené znaky",
		CodeCustomTextNearMax: "text pro %s se blíží limitu %d znaků",
	},
}

// Message formats the message for code in the given locale, falling back to
// the default locale and finally to the bare code.
func Message(locale, code string, args ...interface{}) string {
	loc := strings.ToLower(strings.TrimSpace(locale))
	if tbl, ok := tables[loc]; ok {
		if tmpl, ok := tbl[code]; ok {
			return fmt.Sprintf(tmpl, args...)
		}
	}
	if tmpl, ok := tables[DefaultLocale][code]; ok {
		return fmt.Sprintf(tmpl, args...)
	}
	return code
}

// Localized picks the text for locale out of a per-locale map, falling back
// to the default locale and then to any value present.
func Localized(texts map[string]string, locale string) string {
	if len(texts) == 0 {
		return ""
	}
	loc := strings.ToLower(strings.TrimSpace(locale))
	if v, ok := texts[loc]; ok && v != "" {
		return v
	}
	if v, ok := texts[DefaultLocale]; ok && v != "" {
		return v
	}
	for _, v := range texts {
		if v != "" {
			return v
		}
	}
	return ""
}
