package cleaner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Empty(t *testing.T) {
	st := Score("")
	assert.Equal(t, 1.0, st.NoiseScore)
	assert.Zero(t, st.Length)
}

func TestScore_CharacterClasses(t *testing.T) {
	st := Score("abc 123!")

	assert.Equal(t, 8, st.Length)
	assert.Equal(t, 3, st.Letters)
	assert.Equal(t, 3, st.Digits)
	assert.Equal(t, 1, st.Spaces)
	assert.Equal(t, 1, st.Other)
	assert.InDelta(t, 0.125, st.NoiseScore, 1e-9)
}

func TestScore_PlaceholdersCountAsLetters(t *testing.T) {
	st := Score("see URL and CODEBLOCK")
	assert.Zero(t, st.Other)
	assert.Zero(t, st.NoiseScore)
}

func TestScore_UnicodeLetters(t *testing.T) {
	st := Score("naïve café")
	assert.Equal(t, 10, st.Length)
	assert.Equal(t, 9, st.Letters)
	assert.Zero(t, st.Other)
}

func TestScore_ProgressBar(t *testing.T) {
	st := Score("x 45%|####| 450/1000 y")

	assert.Equal(t, 1, st.ProgressHits)
	assert.Equal(t, 22, st.Length)
	assert.Equal(t, 8, st.Other)
	assert.InDelta(t, 8.0/22.0+0.05, st.NoiseScore, 1e-9)
}

func TestScore_SpamBonusSaturates(t *testing.T) {
	text := strings.Repeat("\nIteration: 1|x\n", 20)
	st := Score(text)

	assert.Equal(t, 20, st.IterLines)
	other := float64(st.Other) / float64(st.Length)
	assert.InDelta(t, other+0.5, st.NoiseScore, 1e-9)
}

func TestScore_CanExceedOne(t *testing.T) {
	text := strings.Repeat("\n#: 99%|##|9/9\n", 12)
	st := Score(text)
	assert.Greater(t, st.NoiseScore, 1.0)
}
