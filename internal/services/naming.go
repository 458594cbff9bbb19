package services

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	// maxNameColumns bounds pig names derived from a first name.
	maxNameColumns = 64
	// maxChatNameBytes bounds a chat pig rename.
	maxChatNameBytes = 64
	// maxHandNameColumns bounds a hand pig rename.
	maxHandNameColumns = 20

	defaultPigName = "Hryundel"
)

var (
	nameStrip = strings.NewReplacer(
		"@", "",
		"'", "",
		`"`, "",
		"telegram.me", "",
		"t.me", "",
	)

	whitespaceRE = regexp.MustCompile(`\s+`)
)

// escapeName normalizes user input for display in HTML bot messages: NFC,
// collapsed whitespace, mentions, quotes and Telegram links removed, then
// HTML-escaped.
func escapeName(s string) string {
	s = norm.NFC.String(s)
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	s = nameStrip.Replace(s)
	return html.EscapeString(strings.TrimSpace(s))
}

// runeColumns is the terminal display width of r.
func runeColumns(r rune) int {
	if r == 0 || unicode.IsControl(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	if r >= 0x1F300 && r <= 0x1FAFF {
		return 2
	}
	return 1
}

// truncateColumns cuts s to at most cols display columns without splitting
// a rune.
func truncateColumns(s string, cols int) string {
	used := 0
	for i, r := range s {
		w := runeColumns(r)
		if used+w > cols {
			return s[:i]
		}
		used += w
	}
	return s
}

// pigNameFromFirstName derives the initial pig name from the owner's
// Telegram first name.
func pigNameFromFirstName(firstName string) string {
	name := strings.TrimSpace(truncateColumns(escapeName(firstName), maxNameColumns))
	if name == "" {
		return defaultPigName
	}
	return name
}

// chatPigName validates a chat pig rename.
func chatPigName(raw string) (string, error) {
	name := escapeName(raw)
	switch {
	case name == "":
		return "", ErrEmptyName
	case len(name) > maxChatNameBytes:
		return "", ErrNameTooLong
	}
	return name, nil
}

// handPigName validates a hand pig rename; long names are cut, not rejected.
func handPigName(raw string) (string, error) {
	name := strings.TrimSpace(truncateColumns(escapeName(raw), maxHandNameColumns))
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
