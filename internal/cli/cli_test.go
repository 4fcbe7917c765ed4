package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	prunekit "github.com/prunekit/prunekit-host-sdk"
	"github.com/prunekit/prunekit-host-sdk/dispatch"
)

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd_Executes(t *testing.T) {
	out, err := executeCLI(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, prunekit.Version)
	assert.Contains(t, out, prunekit.PackageIdentity(prunekit.IsRelease))
}

func TestExtrasListCmd_ShowsBuiltinCapabilities(t *testing.T) {
	out, err := executeCLI(t, "extras", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "torch")
	assert.Contains(t, out, "onnxruntime")
}

func TestExtrasResolveCmd_PrintsCoreForExplicitSelection(t *testing.T) {
	out, err := executeCLI(t, "extras", "resolve", "onnxruntime")

	require.NoError(t, err)
	assert.Contains(t, out, "onnxruntime")
	assert.Contains(t, out, prunekit.CompanionName("modelzoo", prunekit.IsRelease))
}

func TestExtrasResolveCmd_FailsOnUnknownCapability(t *testing.T) {
	_, err := executeCLI(t, "extras", "resolve", "no-such-capability")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-capability")
}

func TestFetchCmd_RejectsInvalidStub(t *testing.T) {
	_, err := executeCLI(t, "fetch", "not/a/stub")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model stub")
}

func TestRunCmd_ForwardsIntegrationFlagsVerbatim(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Flags after the command name belong to the integration's parser, not
	// cobra, so lookup is reached instead of a cobra "unknown flag" error.
	_, err := executeCLI(t, "run", "detection.train", "--epochs", "3")

	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrCommandNotFound)
	assert.NotContains(t, err.Error(), "unknown flag")
}

func TestCommandsCmd_EmptyWithoutInstalledIntegrations(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := executeCLI(t, "commands")

	require.NoError(t, err)
	assert.Contains(t, out, "No integration commands installed.")
}
