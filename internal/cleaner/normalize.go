package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ansiEscapeRe = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

	// emojiRe covers emoticons, pictographs, transport, alchemical and geometric
	// symbols, arrows, dingbats, enclosed characters and miscellaneous symbols.
	// The enclosed-characters range is deliberately wide and also swallows CJK.
	emojiRe = regexp.MustCompile("[" +
		`\x{1F300}-\x{1F9FF}` +
		`\x{1F600}-\x{1F64F}` +
		`\x{1F680}-\x{1F6FF}` +
		`\x{1F700}-\x{1F77F}` +
		`\x{1F780}-\x{1F7FF}` +
		`\x{1F800}-\x{1F8FF}` +
		`\x{1F900}-\x{1F9FF}` +
		`\x{1FA00}-\x{1FA6F}` +
		`\x{1FA70}-\x{1FAFF}` +
		`\x{2702}-\x{27B0}` +
		`\x{24C2}-\x{1F251}` +
		`\x{2600}-\x{27BF}` +
		"]+")

	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	stripControl = runes.Remove(runes.Predicate(isStrippedControl))
)

// isStrippedControl reports whether r is a control character other than \n and \t.
func isStrippedControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return r < 32 || r == 127
}

// Normalize drops invalid UTF-8, applies Unicode compatibility normalisation
// and removes terminal noise, the replacement character, emoji runs and control characters.
// Emoji runs become a single space so neighbouring words stay apart.
// Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = norm.NFKC.String(s)
	s = lineEndings.Replace(s)
	s = ansiEscapeRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\uFFFD", "")
	s = emojiRe.ReplaceAllString(s, " ")
	s, _, _ = transform.String(stripControl, s)

	// Dropping a control character can leave a combining mark next to a new
	// base character.
	if !norm.NFKC.IsNormalString(s) {
		s = norm.NFKC.String(s)
	}
	return s
}
