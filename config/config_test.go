package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, afs afero.Fs, name, content string) string {
	t.Helper()
	require.NoError(t, afero.WriteFile(afs, name, []byte(content), 0644))
	return name
}

func TestLoadConfigOllama(t *testing.T) {
	afs := afero.NewMemMapFs()
	path := writeConfig(t, afs, "/config.json",
		`{"active_provider":"ollama","providers":{"ollama":{"base_url":"http://x/","model":"m"}}}`)

	cfg, err := LoadConfigFs(afs, path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.ActiveProvider)
	assert.Equal(t, ProviderConfig{BaseURL: "http://x", Model: "m"}, cfg.Provider("ollama"))
	assert.Equal(t, ProviderConfig{}, cfg.Provider("gemini"))
}

func TestLoadConfigNormalisesProviderName(t *testing.T) {
	afs := afero.NewMemMapFs()
	path := writeConfig(t, afs, "/config.json",
		`{"active_provider":" Gemini ","providers":{"Gemini":{"api_key":"k","model":"g"}}}`)

	cfg, err := LoadConfigFs(afs, path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.ActiveProvider)
	assert.Equal(t, "k", cfg.Provider("gemini").APIKey)
}

func TestLoadConfigYAML(t *testing.T) {
	afs := afero.NewMemMapFs()
	path := writeConfig(t, afs, "/config.yaml", `
active_provider: openai
tellm_url: http://localhost:8000
tellm_batch: 0123456789abcdef01234567
providers:
  openai:
    api_key: sk-test
    model: gpt-4o-mini
`)

	cfg, err := LoadConfigFs(afs, path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.ActiveProvider)
	assert.Equal(t, "http://localhost:8000", cfg.TellmURL)
	assert.Equal(t, "0123456789abcdef01234567", cfg.TellmBatch)
	assert.Equal(t, "sk-test", cfg.Provider("openai").APIKey)
}

func TestLoadConfigExpandsAndFallsBackToEnv(t *testing.T) {
	t.Setenv("SYNAPSE_TEST_KEY", "from-expansion")
	t.Setenv("OPENAI_API_KEY", "from-env")
	afs := afero.NewMemMapFs()
	path := writeConfig(t, afs, "/config.json", `{
		"active_provider": "gemini",
		"providers": {
			"gemini": {"api_key": "${SYNAPSE_TEST_KEY}"},
			"openai": {"model": "gpt-4o-mini"}
		}
	}`)

	cfg, err := LoadConfigFs(afs, path)
	require.NoError(t, err)
	assert.Equal(t, "from-expansion", cfg.Provider("gemini").APIKey)
	assert.Equal(t, "from-env", cfg.Provider("openai").APIKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfigFs(afero.NewMemMapFs(), "/config.json")
	assert.ErrorIs(t, err, ErrConfigMissingOrInvalid)
}

func TestLoadConfigMalformed(t *testing.T) {
	afs := afero.NewMemMapFs()
	tests := map[string]string{
		"syntax":       `{"active_provider": "ollama",`,
		"no providers": `{"active_provider": "ollama"}`,
		"bad shape":    `{"active_provider": "ollama", "providers": "ollama"}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, afs, "/config.json", content)
			_, err := LoadConfigFs(afs, path)
			assert.ErrorIs(t, err, ErrConfigMissingOrInvalid)
		})
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, CreateDefaultConfig(afs, "/config.json"))

	cfg, err := LoadConfigFs(afs, "/config.json")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.ActiveProvider)
	assert.Equal(t, "llama3", cfg.Provider("ollama").Model)
	assert.Len(t, cfg.Providers, 5)

	err = CreateDefaultConfig(afs, "/config.json")
	assert.ErrorIs(t, err, ErrConfigExists)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SYNAPSE_DOTENV_TEST=hello\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SYNAPSE_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "hello", os.Getenv("SYNAPSE_DOTENV_TEST"))
}
