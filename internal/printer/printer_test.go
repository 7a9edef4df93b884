package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	noColor(t)

	t.Run("returns error with title", func(t *testing.T) {
		var out, errOut bytes.Buffer
		err := New(&out, &errOut).Error("Test Error", "This is a test error", nil)
		require.EqualError(t, err, "Test Error")
		require.Equal(t, "Test Error\n\nThis is a test error\n", errOut.String())
		require.Empty(t, out.String())
	})

	t.Run("single suggestion is printed plainly", func(t *testing.T) {
		var errOut bytes.Buffer
		err := New(&bytes.Buffer{}, &errOut).Error("Test Error", "Explanation", []string{"Try this fix"})
		require.EqualError(t, err, "Test Error")
		require.Contains(t, errOut.String(), "\nTry this fix\n")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		var errOut bytes.Buffer
		_ = New(&bytes.Buffer{}, &errOut).Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Contains(t, errOut.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestPrefixes(t *testing.T) {
	noColor(t)

	var out bytes.Buffer
	p := New(&out, &bytes.Buffer{})

	p.Success("done\n")
	p.Success("✓ already prefixed\n")
	p.Warning("careful\n")
	p.Step("next\n")
	p.Info("plain %d\n", 1)

	require.Equal(t, "✓ done\n✓ already prefixed\n⚠️  careful\n→ next\nplain 1\n", out.String())
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}
