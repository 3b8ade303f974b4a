package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"telegraphdl/pkg/config"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Sample-Article-01-01", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<img src="/file/aaa.jpg"><img src="/file/bbb.png">`))
	})
	mux.HandleFunc("/file/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("image"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRootRequiresThreeArgs(t *testing.T) {
	_, err := execute(t, "out", "run1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 3 arg(s)")
}

func TestRootDownloadsArticle(t *testing.T) {
	server := newArticleServer(t)
	t.Setenv(config.EnvPrefix+"BASE_URL", server.URL)
	dir := t.TempDir()
	articleURL := server.URL + "/Sample-Article-01-01"

	out, err := execute(t, "--delay", "0s", "--no-color", dir, "run1", articleURL)
	require.NoError(t, err)

	first := filepath.Join(dir, "run1SampleArticle0101aaajpg")
	second := filepath.Join(dir, "run1SampleArticle0101bbbpng")
	assert.Equal(t, "Downloaded "+first+"\nDownloaded "+second+"\n", out)
	assert.FileExists(t, first)
	assert.FileExists(t, second)

	out, err = execute(t, "--delay", "0s", "--no-color", dir, "run1", articleURL)
	require.NoError(t, err)
	assert.Equal(t, "Skipping "+first+"\nSkipping "+second+"\n", out)
}

func TestRootRejectsForeignURL(t *testing.T) {
	_, err := execute(t, "--delay", "0s", t.TempDir(), "run1", "https://example.com/Other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed_input")
}

func TestRootInvalidConfig(t *testing.T) {
	t.Setenv(config.EnvPrefix+"DELAY", "soon")

	_, err := execute(t, t.TempDir(), "run1", "https://telegra.ph/Sample")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELAY")
}

func TestCollectFlags(t *testing.T) {
	resetFlags(rootCmd)
	require.NoError(t, rootCmd.ParseFlags([]string{"--verbose", "--timeout", "5s"}))
	t.Cleanup(func() { resetFlags(rootCmd) })

	flags := collectFlags(rootCmd)
	assert.Equal(t, "debug", flags["log-level"])
	assert.Equal(t, timeout, flags["timeout"])
	assert.NotContains(t, flags, "delay", "unset flags do not override config")
	assert.NotContains(t, flags, "color")
}

func TestConfigInitShowValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telegraphdl.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://telegra.ph")

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Configuration")
	assert.Contains(t, out, "delay: 1s")

	out, err = execute(t, "config", "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Timeout: none")
}
