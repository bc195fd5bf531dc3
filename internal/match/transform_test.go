package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copycheck/internal/match"
)

func TestTransform(t *testing.T) {
	t.Run("pattern variables", func(t *testing.T) {
		got, err := match.Transform(
			"mflix/server/java-spring/pom.xml",
			"server/${file}",
			map[string]string{"file": "pom.xml"},
		)
		require.NoError(t, err)
		assert.Equal(t, "server/pom.xml", got)
	})

	t.Run("builtin variables", func(t *testing.T) {
		got, err := match.Transform(
			"mflix/client/src/App.tsx",
			"${dir}/renamed-${filename}",
			nil,
		)
		require.NoError(t, err)
		assert.Equal(t, "mflix/client/src/renamed-App.tsx", got)
	})

	t.Run("path and ext", func(t *testing.T) {
		got, err := match.Transform("a/b.txt", "${path} ${ext}", nil)
		require.NoError(t, err)
		assert.Equal(t, "a/b.txt txt", got)
	})

	t.Run("file without directory", func(t *testing.T) {
		got, err := match.Transform("README", "${dir}|${filename}|${ext}", nil)
		require.NoError(t, err)
		assert.Equal(t, "|README|", got)
	})

	t.Run("unreplaced variables error", func(t *testing.T) {
		_, err := match.Transform("a/b.txt", "x/${nope}", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreplaced variables in template")
		assert.Contains(t, err.Error(), "nope")
	})
}
