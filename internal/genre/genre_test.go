package genre

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	table := Defaults()

	c, err := table.Lookup("jazz")
	require.NoError(t, err)
	assert.Equal(t, [2]int{60, 180}, c.TempoRange)
	assert.Len(t, c.Scales, 12)

	// Case-insensitive.
	_, err = table.Lookup("Blues")
	assert.NoError(t, err)

	_, err = table.Lookup("polka")
	assert.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	names := Defaults().Names()
	assert.Contains(t, names, "jazz")
	assert.Contains(t, names, "classical")
	assert.IsIncreasing(t, names)
}

func TestDefaultsReturnsCopy(t *testing.T) {
	a := Defaults()
	a["jazz"] = Characteristics{TempoRange: [2]int{1, 2}, Scales: []string{"C"}}
	delete(a, "pop")

	b := Defaults()
	assert.Equal(t, [2]int{60, 180}, b["jazz"].TempoRange)
	assert.Contains(t, b, "pop")
}

func TestTempoInRange(t *testing.T) {
	c, err := Defaults().Lookup("pop")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		tempo := c.Tempo(rng)
		assert.GreaterOrEqual(t, tempo, 90)
		assert.LessOrEqual(t, tempo, 140)
	}
}

func TestSyntheticTokens(t *testing.T) {
	c, err := Defaults().Lookup("classical")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	tokens := SyntheticTokens(c, 500, rng)
	require.Len(t, tokens, 500)

	inScale := make(map[string]bool, len(c.Scales))
	for _, s := range c.Scales {
		inScale[s] = true
	}

	var chords int
	for _, tok := range tokens {
		parts := strings.Split(tok, ".")
		if len(parts) > 1 {
			chords++
			assert.GreaterOrEqual(t, len(parts), 2)
			assert.LessOrEqual(t, len(parts), 4)

			seen := make(map[string]bool)
			for _, p := range parts {
				assert.True(t, inScale[p], "chord part %q not in scale", p)
				assert.False(t, seen[p], "chord %q repeats a pitch", tok)
				seen[p] = true
			}
			continue
		}
		assert.True(t, inScale[tok], "note %q not in scale", tok)
	}

	// Roughly 30% chords; allow generous slack for the seeded RNG.
	assert.Greater(t, chords, 100)
	assert.Less(t, chords, 200)
}

func TestSyntheticTokensDeterministic(t *testing.T) {
	c, err := Defaults().Lookup("rock")
	require.NoError(t, err)

	a := SyntheticTokens(c, 50, rand.New(rand.NewSource(3)))
	b := SyntheticTokens(c, 50, rand.New(rand.NewSource(3)))
	assert.Equal(t, a, b)
}

func TestLoadConfigAddsGenre(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	config := `genres:
  bossa:
    tempo_range: [110, 130]
    scales: [C, D, E, G, A]
    chords: [Cmaj7, Am7]
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	table, err := LoadConfig(path)
	require.NoError(t, err)

	c, err := table.Lookup("bossa")
	require.NoError(t, err)
	assert.Equal(t, [2]int{110, 130}, c.TempoRange)
	assert.Equal(t, []string{"C", "D", "E", "G", "A"}, c.Scales)

	// The new genre exists only in the loaded table.
	_, err = Defaults().Lookup("bossa")
	assert.Error(t, err)
}

func TestLoadConfigOverrideStaysLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	config := `genres:
  jazz:
    tempo_range: [1, 2]
    scales: [C]
`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	table, err := LoadConfig(path)
	require.NoError(t, err)

	loaded, err := table.Lookup("jazz")
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, loaded.TempoRange)

	// The built-in table must be unaffected by the override.
	builtin, err := Defaults().Lookup("jazz")
	require.NoError(t, err)
	assert.Equal(t, [2]int{60, 180}, builtin.TempoRange)
}

func TestLoadConfigValidation(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("genres:\n  bad:\n    tempo_range: [100, 120]\n"), 0o644))
	_, err := LoadConfig(empty)
	assert.Error(t, err, "missing scales must be rejected")

	tempo := filepath.Join(dir, "tempo.yaml")
	require.NoError(t, os.WriteFile(tempo, []byte("genres:\n  bad:\n    tempo_range: [120, 100]\n    scales: [C]\n"), 0o644))
	_, err = LoadConfig(tempo)
	assert.Error(t, err, "inverted tempo range must be rejected")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	table, err := LoadConfig("")
	require.NoError(t, err, "empty path returns the defaults")
	assert.Contains(t, table, "jazz")
}
