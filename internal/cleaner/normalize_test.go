package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text unchanged", input: "hello world", want: "hello world"},
		{name: "crlf to lf", input: "a\r\nb", want: "a\nb"},
		{name: "lone cr to lf", input: "a\rb", want: "a\nb"},
		{name: "ansi escapes", input: "\x1b[31mred\x1b[0m text", want: "red text"},
		{name: "replacement character", input: "bro\uFFFDken", want: "broken"},
		{name: "emoji run becomes one space", input: "ship it\U0001F680\U0001F680now", want: "ship it now"},
		{name: "dingbat", input: "done✅", want: "done "},
		{name: "control characters", input: "a\x00b\x07c\x7f\td\n", want: "abc\td\n"},
		{name: "fullwidth folds to ascii", input: "ｆｕｌｌ", want: "full"},
		{name: "ligature decomposes", input: "ﬁle", want: "file"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Check https://x.com/a\r\nand see #123",
		"\x1b[1m\x1b[32mPASSED\x1b[0m \U0001F389",
		"e\x01\u0301",
		"\x1b\uFFFD[0m",
		"ｔｅｓｔ ①②③ ™",
		"tab\tand\nnewline\r",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
