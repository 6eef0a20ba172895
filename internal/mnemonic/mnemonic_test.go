package mnemonic

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const vectorPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateWordCounts(t *testing.T) {
	require := require.New(t)
	e := NewEngine(true)

	m12, err := e.Generate(Strength128)
	require.NoError(err)
	require.Len(m12.Words(), 12)
	require.NoError(e.Check(string(m12)))

	m24, err := e.Generate(Strength256)
	require.NoError(err)
	require.Len(m24.Words(), 24)
	require.NoError(e.Check(string(m24)))
}

func TestGenerateIsRandom(t *testing.T) {
	e := NewEngine(false)
	a, err := e.Generate(Strength128)
	require.NoError(t, err)
	b, err := e.Generate(Strength128)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateRejectsOtherStrengths(t *testing.T) {
	_, err := NewEngine(false).Generate(192)
	require.ErrorIs(t, err, ErrInvalidStrength)
}

func TestValidateWordCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"twelve", strings.Repeat("word ", 12), true},
		{"twenty four with extra spaces", "  " + strings.Repeat("w \t", 24) + "\n", true},
		{"three", "only two words", false},
		{"eleven", strings.Repeat("x ", 11), false},
		{"thirteen", strings.Repeat("x ", 13), false},
		{"empty", "   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Validate(tt.input))
			require.Equal(t, tt.want, NewEngine(false).Validate(tt.input))
		})
	}
}

func TestCheckReasons(t *testing.T) {
	require := require.New(t)
	strict := NewEngine(true)

	var verr *ValidationError
	err := strict.Check("only two words")
	require.ErrorIs(err, ErrInvalidMnemonic)
	require.True(errors.As(err, &verr))
	require.Equal(ReasonWordCount, verr.Reason)
	require.Equal(3, verr.WordCount)
	require.NotContains(err.Error(), "only")

	err = strict.Check("abandon abandon abandon abandon abandon notaword abandon abandon abandon abandon abandon about")
	require.True(errors.As(err, &verr))
	require.Equal(ReasonUnknownWord, verr.Reason)
	require.Equal(6, verr.Position)

	err = strict.Check(strings.Repeat("abandon ", 12))
	require.True(errors.As(err, &verr))
	require.Equal(ReasonChecksum, verr.Reason)

	require.NoError(NewEngine(false).Check(strings.Repeat("abandon ", 12)))
}

func TestToSeedVector(t *testing.T) {
	require := require.New(t)
	e := NewEngine(true)

	seed, err := e.ToSeed(vectorPhrase, "TREZOR")
	require.NoError(err)
	require.Equal(
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		seed.Hex(),
	)
	require.Len(seed.Hex(), SeedSize*2)
}

func TestToSeedDeterministic(t *testing.T) {
	require := require.New(t)
	e := NewEngine(false)
	phrase := Mnemonic("one two three four five six seven eight nine ten eleven twelve")

	a, err := e.ToSeed(phrase, "")
	require.NoError(err)
	b, err := e.ToSeed("  one two three four five six\tseven eight nine ten eleven twelve ", "")
	require.NoError(err)
	require.Equal(a, b)

	c, err := e.ToSeed(phrase, "extra")
	require.NoError(err)
	require.NotEqual(a, c)
}

func TestToSeedInvalid(t *testing.T) {
	_, err := NewEngine(false).ToSeed("only two words", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestParseSeed(t *testing.T) {
	require := require.New(t)
	seed, err := NewEngine(false).ToSeed(vectorPhrase, "")
	require.NoError(err)

	parsed, err := ParseSeed(seed.Hex())
	require.NoError(err)
	require.Equal(seed, parsed)

	_, err = ParseSeed("abcd")
	require.Error(err)
	_, err = ParseSeed("zz")
	require.Error(err)
}
