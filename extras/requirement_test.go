package extras_test

import (
	"testing"

	"github.com/prunekit/prunekit-host-sdk/extras"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		spec           string
		wantErr        bool
		wantName       string
		wantConstraint string
	}{
		{
			name:     "bare name",
			spec:     "gputils",
			wantName: "gputils",
		},
		{
			name:           "range with spaces",
			spec:           "torch >=1.1.0, <=1.9.1",
			wantName:       "torch",
			wantConstraint: ">=1.1.0, <=1.9.1",
		},
		{
			name:           "no space before operator",
			spec:           "tensorflow<2.0.0",
			wantName:       "tensorflow",
			wantConstraint: "<2.0.0",
		},
		{
			name:           "tilde pin",
			spec:           "pytest ~6.2.0",
			wantName:       "pytest",
			wantConstraint: "~6.2.0",
		},
		{
			name:           "dashed name",
			spec:           "tensorflow-gpu <2.0.0",
			wantName:       "tensorflow-gpu",
			wantConstraint: "<2.0.0",
		},
		{
			name:    "empty",
			spec:    "  ",
			wantErr: true,
		},
		{
			name:    "garbage constraint",
			spec:    "torch >=not.a.version",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extras.ParseRequirement(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, got.Name())
			assert.Equal(t, tc.wantConstraint, got.Constraint())
		})
	}
}

func TestRequirementCheck(t *testing.T) {
	t.Parallel()

	req := extras.MustRequirement("torch >=1.1.0, <=1.9.1")

	tests := []struct {
		version string
		want    bool
		wantErr bool
	}{
		{version: "1.1.0", want: true},
		{version: "1.5.2", want: true},
		{version: "1.9.1", want: true},
		{version: "1.10.0", want: false},
		{version: "1.0.9", want: false},
		{version: "not-a-version", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			got, err := req.Check(tc.version)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	any := extras.MustRequirement("gputils")
	ok, err := any.Check("0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequirementString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gputils", extras.MustRequirement("gputils").String())
	assert.Equal(t, "torch >=1.1.0", extras.MustRequirement("torch >=1.1.0").String())
}
