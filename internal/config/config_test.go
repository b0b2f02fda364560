package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/timing"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load(newFlags(t))
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, d.Lang, c.Lang)
	assert.Equal(t, timing.DefaultPolicy(), c.Policy())
	assert.Equal(t, answer.Options{Variable: "x"}, c.NormalizerOptions())
	assert.Equal(t, ":8080", c.Addr)
	assert.Empty(t, c.File)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := "lang: en\nslow-multiplier: 6\nfast-factor: 0.5\naddr: \":9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calcexam.yaml"), []byte(cfg), 0o644))
	t.Setenv("CALCEXAM_SLOW_MULTIPLIER", "8")
	t.Setenv("CALCEXAM_ACCEPT_INFINITY_ALIASES", "true")

	c, err := Load(newFlags(t, "--addr", ":7000"))
	require.NoError(t, err)

	assert.Equal(t, "en", c.Lang, "file overrides default")
	assert.Equal(t, 8.0, c.SlowMultiplier, "env overrides file")
	assert.Equal(t, 0.5, c.FastFactor)
	assert.True(t, c.AcceptInfinityAliases)
	assert.Equal(t, ":7000", c.Addr, "flag overrides file")
	assert.Equal(t, "calcexam.yaml", filepath.Base(c.File))
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "exam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nvariable: t\n"), 0o644))

	c, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, "t", c.Variable)

	_, err = Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"inverted thresholds", func(c *Config) { c.FastFactor = 20 }, true},
		{"empty variable", func(c *Config) { c.Variable = "" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
	}
	for _, tt := range tests {
		c := Default()
		tt.mutate(&c)
		err := c.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadBank(t *testing.T) {
	n := answer.NewNormalizer(answer.Options{})
	c := Default()
	b, err := c.LoadBank(n)
	require.NoError(t, err)
	first, _ := b.At(0)
	assert.Equal(t, "lim-linear", first.ID)

	c.Seed = 3
	shuffled, err := c.LoadBank(n)
	require.NoError(t, err)
	assert.Equal(t, b.Len(), shuffled.Len())

	c.Bank = filepath.Join(t.TempDir(), "none.yaml")
	_, err = c.LoadBank(n)
	assert.Error(t, err)
}
