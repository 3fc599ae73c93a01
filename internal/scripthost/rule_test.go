package scripthost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worldground/internal/tile"
)

func writeRuleDir(t *testing.T, root string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0o644))
	}
}

func TestLoadOrdersRulesByFilename(t *testing.T) {
	root := t.TempDir()
	for _, phase := range tile.ScriptedPhases {
		require.NoError(t, os.MkdirAll(filepath.Join(root, string(phase)), 0o755))
	}
	writeRuleDir(t, filepath.Join(root, "weather"), map[string]string{
		"020_second.rule": `set("weather.humidity", 0.5)`,
		"010_first.rule":  `set("weather.humidity", 0.1)`,
	})

	rules, err := Load(root)
	require.NoError(t, err)

	weather := rules[tile.PhaseWeather]
	require.Len(t, weather, 2)
	assert.Equal(t, "010_first.rule", weather[0].Name)
	assert.Equal(t, "020_second.rule", weather[1].Name)
}

func TestLoadRejectsMissingPhaseDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "weather"), 0o755))
	// conditions, terrain, resources directories intentionally absent.

	_, err := Load(root)

	require.Error(t, err)
}

func TestLoadAllowsEmptyPhaseDirectory(t *testing.T) {
	root := t.TempDir()
	for _, phase := range tile.ScriptedPhases {
		require.NoError(t, os.MkdirAll(filepath.Join(root, string(phase)), 0o755))
	}

	rules, err := Load(root)

	require.NoError(t, err)
	assert.Empty(t, rules[tile.PhaseConditions])
}

func TestReadStatementsSkipsBlankLinesAndComments(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "r.rule")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nset(\"a\", 1)\n  \nset(\"b\", 2)\n"), 0o644))

	statements, err := readStatements(path)

	require.NoError(t, err)
	assert.Equal(t, []string{`set("a", 1)`, `set("b", 2)`}, statements)
}
