package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(DefaultLanguage, Match())

	for _, tag := range Languages() {
		assert.NotEqual(language.Und, tag)
	}
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	defer SetLanguage(Match(Languages()...))

	SetLanguage(language.AmericanEnglish)
	assert.Equal("line 3 'NOP' bad", From("line %d '%v' %v", 3, "NOP", "bad"))
	assert.Equal("1,234 words", From("%d words", 1234))

	SetLanguage(language.German)
	assert.Equal("1.234 words", From("%d words", 1234))
}
