package cleaner

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// Placeholder tokens substituted for detected patterns.
const (
	TokenImage     = "IMAGE"
	TokenCodeblock = "CODEBLOCK"
	TokenInline    = "INLINECODE"
	TokenURL       = "URL"
	TokenUser      = "USER"
	TokenIssueRef  = "ISSUE_REF"
	TokenCommit    = "COMMIT"
	TokenFilepath  = "FILEPATH"
	TokenFlag      = "FLAG"
	TokenVersion   = "VERSION"
	TokenProgress  = "[PROGRESS]"
)

// matchTimeout bounds a single backtracking search. A rule that times out
// leaves the text unchanged.
const matchTimeout = 5 * time.Second

// \w, \b, \d and \s are Unicode-aware in these patterns, so accented or
// non-Latin neighbours count as word characters.
var (
	urlRe        = mustCompile(`(?i)\bhttps?://[^\s<>()\]]+|\bwww\.[^\s<>()\]]+`)
	mentionRe    = mustCompile(`(?<!\w)@[A-Za-z0-9-]{1,39}\b`) // GitHub logins are at most 39 chars
	issueRefRe   = mustCompile(`(?:(?<=\s)|^)(?:[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+)?#\d+\b`)
	commitRe     = mustCompile(`(?i)\b[a-f0-9]{7,40}\b`)
	fencedCodeRe = mustCompile("(?s)```.*?```")
	inlineCodeRe = mustCompile("`[^`\n]+`")
	filePathRe   = mustCompile(`\b(?:[A-Za-z]:\\|/)?(?:[\w.\- ]+/)+[\w.\- ]+\b`)
	flagRe       = mustCompile(`(?<!\w)--?[A-Za-z][\w\-]*(?:=[^\s]+)?`)
	versionRe    = mustCompile(`(?i)\bv?\d+(?:\.\d+){1,3}\b`)

	progressBarRe   = mustCompile(`(?s)\b\d{1,3}%\|.*?\|\s*\d+/\d+`) // tqdm-like
	iterationSpamRe = mustCompile(`(?i)(?:^|\n)\s*Iteration:\s*\d+%?\|.*?(?:\n|$)`)
	progressRunRe   = mustCompile(`(?:\n\[PROGRESS\]\n){3,}`)

	mdLinkRe     = mustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	mdImageRe    = mustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	blockquoteRe = mustCompile(`(?m)^\s*>\s?.*$`)
	htmlTagRe    = mustCompile(`<[^>]+>`)

	whitespaceRe   = mustCompile(`[ \t]+`)
	manyNewlinesRe = mustCompile(`\n{3,}`)
)

func mustCompile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

// rule is one pattern substitution in the cleaning fold.
type rule struct {
	name        string
	enabled     func(cfg *domain.CleanConfig) bool
	pattern     *regexp2.Regexp
	replacement string
}

func always(*domain.CleanConfig) bool { return true }

// placeholder pads a token with spaces so it never fuses with its neighbours.
func placeholder(token string) string {
	return " " + token + " "
}

// rules is the fixed substitution order. Later rules must not re-match the
// placeholders inserted by earlier ones, so the order is part of the contract.
var rules = []rule{
	{
		name:        "iteration_spam",
		enabled:     func(c *domain.CleanConfig) bool { return c.CompressProgressSpam },
		pattern:     iterationSpamRe,
		replacement: "\n" + TokenProgress + "\n",
	},
	{
		name:        "progress_runs",
		enabled:     func(c *domain.CleanConfig) bool { return c.CompressProgressSpam },
		pattern:     progressRunRe,
		replacement: "\n" + TokenProgress + "\n",
	},
	{
		name:    "blockquotes",
		enabled: func(c *domain.CleanConfig) bool { return c.DropBlockquotes },
		pattern: blockquoteRe,
	},
	{
		name:        "html",
		enabled:     func(c *domain.CleanConfig) bool { return c.DropHTML },
		pattern:     htmlTagRe,
		replacement: " ",
	},
	{
		name:        "md_images",
		enabled:     always,
		pattern:     mdImageRe,
		replacement: placeholder(TokenImage),
	},
	{
		name:        "md_links",
		enabled:     func(c *domain.CleanConfig) bool { return c.KeepMdLinkText },
		pattern:     mdLinkRe,
		replacement: "$1",
	},
	{
		name:        "codeblocks",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceCodeblocks },
		pattern:     fencedCodeRe,
		replacement: placeholder(TokenCodeblock),
	},
	{
		name:        "inline_code",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceInlineCode },
		pattern:     inlineCodeRe,
		replacement: placeholder(TokenInline),
	},
	{
		name:        "urls",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceURLs },
		pattern:     urlRe,
		replacement: placeholder(TokenURL),
	},
	{
		name:        "mentions",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceMentions },
		pattern:     mentionRe,
		replacement: placeholder(TokenUser),
	},
	{
		name:        "issue_refs",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceIssueRefs },
		pattern:     issueRefRe,
		replacement: placeholder(TokenIssueRef),
	},
	{
		name:        "commits",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceCommits },
		pattern:     commitRe,
		replacement: placeholder(TokenCommit),
	},
	{
		name:        "paths",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplacePaths },
		pattern:     filePathRe,
		replacement: placeholder(TokenFilepath),
	},
	{
		name:        "flags",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceFlags },
		pattern:     flagRe,
		replacement: placeholder(TokenFlag),
	},
	{
		name:        "versions",
		enabled:     func(c *domain.CleanConfig) bool { return c.ReplaceVersions },
		pattern:     versionRe,
		replacement: placeholder(TokenVersion),
	},
	{
		name:        "whitespace",
		enabled:     always,
		pattern:     whitespaceRe,
		replacement: " ",
	},
	{
		name:        "newlines",
		enabled:     always,
		pattern:     manyNewlinesRe,
		replacement: "\n\n",
	},
}

// rewrite folds every enabled rule over s and trims the result.
func rewrite(s string, cfg *domain.CleanConfig) string {
	for i := range rules {
		r := &rules[i]
		if !r.enabled(cfg) {
			continue
		}
		s = r.apply(s)
	}
	return strings.TrimSpace(s)
}

func (r *rule) apply(s string) string {
	out, err := r.pattern.Replace(s, r.replacement, -1, -1)
	if err != nil {
		return s
	}
	return out
}

// countMatches returns the number of non-overlapping matches of re in s.
func countMatches(re *regexp2.Regexp, s string) int {
	n := 0
	m, err := re.FindStringMatch(s)
	for m != nil && err == nil {
		n++
		m, err = re.FindNextMatch(m)
	}
	return n
}
