package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telfer/alp/internal/config"
	"github.com/telfer/alp/internal/keyring"
)

// fakePasswordReader scripts password input for configure tests.
type fakePasswordReader struct {
	password string
	terminal bool
}

func (r *fakePasswordReader) ReadPassword() (string, error) {
	return r.password, nil
}

func (r *fakePasswordReader) IsTerminal() bool {
	return r.terminal
}

func TestConfigureCmd_Paper(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &fakePasswordReader{password: "papersecret", terminal: true},
		input:          strings.NewReader("PKTEST123\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Stored paper credentials (key ID PKTEST123)")

	secret, err := store.Get(keyring.ServiceName, keyring.KeyPaperSecret)
	require.NoError(t, err)
	assert.Equal(t, "papersecret", secret)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "PKTEST123", cfg.PaperKeyID)
	assert.Equal(t, config.EnvPaper, cfg.Environment)
}

func TestConfigureCmd_Live(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &fakePasswordReader{password: "livesecret", terminal: true},
		input:          strings.NewReader("AKTEST123\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--live"})

	err := cmd.Execute()
	require.NoError(t, err)

	secret, err := store.Get(keyring.ServiceName, keyring.KeyLiveSecret)
	require.NoError(t, err)
	assert.Equal(t, "livesecret", secret)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "AKTEST123", cfg.LiveKeyID)
	assert.Equal(t, config.EnvLive, cfg.Environment)
}

func TestConfigureCmd_NonTerminalInput(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	// Key ID and secret arrive on consecutive lines when stdin is piped.
	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &fakePasswordReader{terminal: false},
		input:          strings.NewReader("PKTEST123\npipedsecret\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	secret, err := store.Get(keyring.ServiceName, keyring.KeyPaperSecret)
	require.NoError(t, err)
	assert.Equal(t, "pipedsecret", secret)
}

func TestConfigureCmd_SecondEnvironmentKeepsDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	store := keyring.NewMockStore()

	require.NoError(t, config.Save(configPath, &config.Config{
		PaperKeyID:  "PKEXISTING",
		Environment: config.EnvPaper,
	}))

	cmd := newConfigureCmd(configureOptions{
		configPath:     configPath,
		store:          store,
		passwordReader: &fakePasswordReader{password: "livesecret", terminal: true},
		input:          strings.NewReader("AKTEST123\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--live"})

	err := cmd.Execute()
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "AKTEST123", cfg.LiveKeyID)
	assert.Equal(t, "PKEXISTING", cfg.PaperKeyID)
	assert.Equal(t, config.EnvPaper, cfg.Environment)
}

func TestConfigureCmd_EmptyKeyID(t *testing.T) {
	cmd := newConfigureCmd(configureOptions{
		configPath:     filepath.Join(t.TempDir(), "config.yaml"),
		store:          keyring.NewMockStore(),
		passwordReader: &fakePasswordReader{password: "secret", terminal: true},
		input:          strings.NewReader("\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key ID must not be empty")
}

func TestConfigureCmd_StoreError(t *testing.T) {
	cmd := newConfigureCmd(configureOptions{
		configPath:     filepath.Join(t.TempDir(), "config.yaml"),
		store:          keyring.NewMockStore().WithSetError(assert.AnError),
		passwordReader: &fakePasswordReader{password: "secret", terminal: true},
		input:          strings.NewReader("PKTEST123\n"),
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store secret key")
}
