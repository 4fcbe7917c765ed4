package extras_test

import (
	"testing"

	"github.com/prunekit/prunekit-host-sdk/extras"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specs(reqs []extras.Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.String())
	}
	return out
}

func newTestRegistry(t *testing.T) *extras.Registry {
	t.Helper()

	reg := extras.NewRegistry(
		extras.MustRequirement("numpy >=1.0.0"),
		extras.MustRequirement("onnx >=1.5.0"),
	)
	require.NoError(t, reg.Register("torch",
		extras.MustRequirement("torch >=1.1.0"),
		extras.MustRequirement("tensorboard >=1.0.0"),
	))
	require.NoError(t, reg.Register("keras",
		extras.MustRequirement("tensorflow ~2.2.0"),
		extras.MustRequirement("keras2onnx >=1.0.0"),
	))
	// Overlaps with both core and torch.
	require.NoError(t, reg.Register("vision",
		extras.MustRequirement("torch >=1.1.0"),
		extras.MustRequirement("torchvision >=0.3.0"),
		extras.MustRequirement("numpy >=1.2.0"),
	))
	return reg
}

func TestRegistryResolveSingle(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	got, err := reg.Resolve("torch")
	require.NoError(t, err)

	// Core list is a strict prefix, followed by the bundle, no duplicates.
	assert.Equal(t, []string{
		"numpy >=1.0.0",
		"onnx >=1.5.0",
		"torch >=1.1.0",
		"tensorboard >=1.0.0",
	}, specs(got))
}

func TestRegistryResolveDisjointUnion(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	both, err := reg.Resolve("torch", "keras")
	require.NoError(t, err)

	// Disjoint bundles resolve to the concatenation in first-seen order.
	assert.Equal(t, []string{
		"numpy >=1.0.0",
		"onnx >=1.5.0",
		"torch >=1.1.0",
		"tensorboard >=1.0.0",
		"tensorflow ~2.2.0",
		"keras2onnx >=1.0.0",
	}, specs(both))
}

func TestRegistryResolveDeduplicates(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	got, err := reg.Resolve("torch", "vision")
	require.NoError(t, err)

	// First-seen entry wins: core numpy and torch's torch survive,
	// vision only contributes torchvision.
	assert.Equal(t, []string{
		"numpy >=1.0.0",
		"onnx >=1.5.0",
		"torch >=1.1.0",
		"tensorboard >=1.0.0",
		"torchvision >=0.3.0",
	}, specs(got))
}

func TestRegistryResolveUnknown(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	got, err := reg.Resolve("torch", "does-not-exist")
	require.Error(t, err)
	assert.Nil(t, got, "must never return a partial list")
	assert.ErrorIs(t, err, extras.ErrUnknownCapability)

	var unknown *extras.UnknownCapabilityError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "does-not-exist", unknown.Name)
	assert.Contains(t, unknown.Known, "torch")
}

func TestRegistryResolveEmptySelection(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	got, err := reg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, specs(reg.Core()), specs(got))
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := extras.NewRegistry()
	require.NoError(t, reg.Register("torch"))

	err := reg.Register("torch")
	require.Error(t, err)
	assert.ErrorIs(t, err, extras.ErrDuplicateCapability)
}

func TestBuiltinTable(t *testing.T) {
	t.Parallel()

	reg := extras.Builtin()

	for _, name := range []string{
		extras.CapabilityTorch,
		extras.CapabilityTorchvision,
		extras.CapabilityTFV1,
		extras.CapabilityTFV1GPU,
		extras.CapabilityTFKeras,
		extras.CapabilityONNXRuntime,
		extras.CapabilityAccelerator,
		extras.CapabilityDev,
	} {
		reqs, err := reg.Resolve(name)
		require.NoError(t, err, name)
		assert.Greater(t, len(reqs), len(reg.Core())-1, name)
	}

	// torchvision is a strict superset of torch.
	torch, err := reg.Resolve(extras.CapabilityTorch)
	require.NoError(t, err)
	vision, err := reg.Resolve(extras.CapabilityTorchvision)
	require.NoError(t, err)
	assert.Subset(t, specs(vision), specs(torch))

	// The modelzoo companion leads the core list.
	core := reg.Core()
	require.NotEmpty(t, core)
	assert.Contains(t, core[0].Name(), "modelzoo")
}
