package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCollection, cfg.Collection)
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, int64(DefaultMaxResults), cfg.MaxResults)
	assert.Equal(t, DefaultEmbeddingProvider, cfg.EmbeddingProvider)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
}

func TestLoad_PartialFileKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "host = \"qdrant.internal\"\ncollection = \"inbox\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "qdrant.internal", cfg.Host)
	assert.Equal(t, "inbox", cfg.Collection)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("host = ["), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_OpenAIProviderHasNoModelDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "embedding_provider = \"openai\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.EmbeddingProvider)
	assert.Empty(t, cfg.EmbeddingModel, "the openai adapter applies its own model default")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	original := &Config{
		Host:              "qdrant.example.com",
		Port:              7443,
		Collection:        "mail",
		ChunkSize:         300,
		MaxResults:        25,
		EmbeddingProvider: "openai",
		EmbeddingModel:    "text-embedding-3-large",
		OpenAIAPIKey:      "sk-test",
	}

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSave_RestrictedPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, &Config{Host: "h"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
