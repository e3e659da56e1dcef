package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("platform-url", "", "")
	cmd.Flags().String("org", "", "")
	cmd.Flags().String("blockchain", "", "")
	return cmd
}

func TestProvider_ResolvesFromFlags(t *testing.T) {
	root := t.TempDir()
	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("platform-url", "https://platform.example"))
	require.NoError(t, cmd.Flags().Set("org", "MyOrg"))
	require.NoError(t, cmd.Flags().Set("blockchain", "Quorum"))

	v := SetupViper(root, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "https://platform.example", cfg.PlatformURL)
	assert.Equal(t, "MyOrg", cfg.Org)
	assert.Equal(t, "Quorum", cfg.Blockchain)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.NoError(t, cfg.Validate())
}

func TestProvider_FallsBackToLocalConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConfigDir), 0755))
	content := "platform_url = \"https://from-file.example\"\norg = \"FileOrg\"\nblockchain = \"sepolia\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigDir, LocalConfigFile), []byte(content), 0644))

	cmd := newTestCmd()
	v := SetupViper(root, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "https://from-file.example", cfg.PlatformURL)
	assert.Equal(t, "FileOrg", cfg.Org)
	assert.Equal(t, "sepolia", cfg.Blockchain)
}

func TestProvider_FlagsOverrideLocalFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConfigDir), 0755))
	content := "platform_url = \"https://from-file.example\"\norg = \"FileOrg\"\nblockchain = \"sepolia\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigDir, LocalConfigFile), []byte(content), 0644))

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("org", "FlagOrg"))
	v := SetupViper(root, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "FlagOrg", cfg.Org)
	assert.Equal(t, "https://from-file.example", cfg.PlatformURL)
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := &RuntimeConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform_url")

	cfg.PlatformURL = "https://x"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org")

	cfg.Org = "MyOrg"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blockchain")

	cfg.Blockchain = "Quorum"
	assert.NoError(t, cfg.Validate())
}

func TestSetupViper_EnvironmentOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SIMBA_API_KEY", "env-secret")
	cmd := newTestCmd()
	v := SetupViper(root, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.APIKey)
}
