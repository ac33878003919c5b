package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

func TestRewrite_Rules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "image", input: "look ![screenshot](http://a/b.png) here", want: "look IMAGE here"},
		{name: "link keeps label", input: "read [the docs](http://x.io/docs) first", want: "read the docs first"},
		{name: "fenced code", input: "try\n```\ngo test ./...\n```\nagain", want: "try\n CODEBLOCK \nagain"},
		{name: "inline code", input: "run `make test` now", want: "run INLINECODE now"},
		{name: "blockquote dropped", input: "> quoted line\nmy reply", want: "my reply"},
		{name: "indented blockquote dropped", input: "reply\n   > nested quote\nend", want: "reply\n\nend"},
		{name: "html tags", input: "a <b>bold</b> move", want: "a bold move"},
		{name: "url", input: "see https://github.com/x/y/pull/1 please", want: "see URL please"},
		{name: "www url", input: "visit www.example.org today", want: "visit URL today"},
		{name: "mention", input: "thanks @octo-cat!", want: "thanks USER !"},
		{name: "mention glued to word", input: "mail me@example.com", want: "mail me@example.com"},
		{name: "bare issue ref", input: "same as #42", want: "same as ISSUE_REF"},
		{name: "issue ref at start", input: "#7 is related", want: "ISSUE_REF is related"},
		{name: "qualified issue ref", input: "dup of huggingface/transformers#42", want: "dup of ISSUE_REF"},
		{name: "issue ref glued to word", input: "abc#12 stays", want: "abc#12 stays"},
		{name: "commit", input: "fixed in 1a2b3c4d", want: "fixed in COMMIT"},
		{name: "file path", input: "see: src/main.go", want: "see: FILEPATH"},
		{name: "flags", input: "use --verbose=true or -v", want: "use FLAG or FLAG"},
		{name: "hyphenated word is not a flag", input: "well-known", want: "well-known"},
		{name: "version", input: "upgrade to v1.2.3 today", want: "upgrade to VERSION today"},
		{name: "decimal reads as version", input: "costs 3.5 units", want: "costs VERSION units"},
		{name: "iteration line compressed", input: "done\nIteration: 50%|#####|\nall good", want: "done\n[PROGRESS]\nall good"},
		{name: "whitespace collapsed", input: "a  \t b\n\n\n\nc", want: "a b\n\nc"},
		{name: "trimmed", input: "  \n padded \n ", want: "padded"},
	}

	cfg := domain.DefaultCleanConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.input, &cfg))
		})
	}
}

func TestRewrite_ProgressMarkerRunsCollapse(t *testing.T) {
	cfg := domain.DefaultCleanConfig()
	input := "start\n[PROGRESS]\n\n[PROGRESS]\n\n[PROGRESS]\n\n[PROGRESS]\nend"

	assert.Equal(t, "start\n[PROGRESS]\nend", rewrite(input, &cfg))
}

func TestRewrite_TogglesAreIndependent(t *testing.T) {
	input := "see https://example.com now, cc @bob, ref #12, sha 1a2b3c4d, path: src/app.go, use --fast, on v1.2.3"
	spam := "start\nIteration: 10%|#|\nend"

	tests := []struct {
		name   string
		input  string
		mutate func(*domain.CleanConfig)
		want   string
	}{
		{
			name:   "all enabled",
			input:  input,
			mutate: func(*domain.CleanConfig) {},
			want:   "see URL now, cc USER , ref ISSUE_REF , sha COMMIT , path: FILEPATH , use FLAG , on VERSION",
		},
		{
			name:   "urls disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceURLs = false },
			want:   "see https://example.com now, cc USER , ref ISSUE_REF , sha COMMIT , path: FILEPATH , use FLAG , on VERSION",
		},
		{
			name:   "mentions disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceMentions = false },
			want:   "see URL now, cc @bob, ref ISSUE_REF , sha COMMIT , path: FILEPATH , use FLAG , on VERSION",
		},
		{
			name:   "issue refs disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceIssueRefs = false },
			want:   "see URL now, cc USER , ref #12, sha COMMIT , path: FILEPATH , use FLAG , on VERSION",
		},
		{
			name:   "commits disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceCommits = false },
			want:   "see URL now, cc USER , ref ISSUE_REF , sha 1a2b3c4d, path: FILEPATH , use FLAG , on VERSION",
		},
		{
			name:   "paths disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplacePaths = false },
			want:   "see URL now, cc USER , ref ISSUE_REF , sha COMMIT , path: src/app.go, use FLAG , on VERSION",
		},
		{
			name:   "flags disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceFlags = false },
			want:   "see URL now, cc USER , ref ISSUE_REF , sha COMMIT , path: FILEPATH , use --fast, on VERSION",
		},
		{
			name:   "versions disabled",
			input:  input,
			mutate: func(c *domain.CleanConfig) { c.ReplaceVersions = false },
			want:   "see URL now, cc USER , ref ISSUE_REF , sha COMMIT , path: FILEPATH , use FLAG , on v1.2.3",
		},
		{
			name:   "progress spam enabled",
			input:  spam,
			mutate: func(*domain.CleanConfig) {},
			want:   "start\n[PROGRESS]\nend",
		},
		{
			name:   "progress spam disabled",
			input:  spam,
			mutate: func(c *domain.CleanConfig) { c.CompressProgressSpam = false },
			want:   spam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultCleanConfig()
			tt.mutate(&cfg)
			assert.Equal(t, tt.want, rewrite(tt.input, &cfg))
		})
	}
}

func TestRewrite_DisabledRulesLeaveSyntax(t *testing.T) {
	cfg := domain.DefaultCleanConfig()
	cfg.ReplaceCodeblocks = false
	cfg.ReplaceInlineCode = false
	cfg.DropBlockquotes = false
	cfg.DropHTML = false
	cfg.KeepMdLinkText = false
	cfg.ReplaceURLs = false

	input := "> quote\n<i>x</i> [label](target)"
	assert.Equal(t, input, rewrite(input, &cfg))
}

func TestRewrite_UnicodeWordNeighbours(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "mention followed by accented letter", input: "merci @bobé !", want: "merci @bobé !"},
		{name: "mention after accented letter", input: "café@bob ok", want: "café@bob ok"},
		{name: "mention between accented words", input: "voilà @bob ça", want: "voilà USER ça"},
		{name: "commit glued to accented letter", input: "id ébadc0ffee ok", want: "id ébadc0ffee ok"},
		{name: "commit between accented words", input: "voilà 1a2b3c4d ça", want: "voilà COMMIT ça"},
		{name: "path starts inside accented word", input: "voir naïve/path ici", want: "FILEPATH"},
		{name: "path with accented segments", input: "ouvrir: données/été.txt", want: "ouvrir: FILEPATH"},
		{name: "version glued to accented letter", input: "version ü1.2 ok", want: "version ü1.2 ok"},
		{name: "version between accented words", input: "déjà 2.0.1 prête", want: "déjà VERSION prête"},
		{name: "flag with accented body", input: "try --naïve mode", want: "try FLAG mode"},
		{name: "flag after accented letter", input: "ü-flag", want: "ü-flag"},
		{name: "issue ref followed by accented letter", input: "voir #12é", want: "voir #12é"},
		{name: "flag then path in one run", input: "ü-flag1.2.3.4.5src/main/app.py", want: "FILEPATH"},
		{name: "non-latin neighbours", input: "版本 v1.2.3 发布", want: "版本 VERSION 发布"},
	}

	cfg := domain.DefaultCleanConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(tt.input, &cfg))
		})
	}
}

func TestRewrite_LookbehindRetriesNextPosition(t *testing.T) {
	cfg := domain.DefaultCleanConfig()

	// "--b" follows a word character; "-b" one position later does not.
	assert.Equal(t, "a- FLAG", rewrite("a--b", &cfg))
}

func TestCountMatches(t *testing.T) {
	assert.Equal(t, 0, countMatches(versionRe, "no numbers here"))
	assert.Equal(t, 2, countMatches(versionRe, "from 1.2 to 1.3"))
	assert.Equal(t, 0, countMatches(versionRe, ""))
}
