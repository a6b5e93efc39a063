package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringToModel(t *testing.T) {
	tests := []struct {
		in   string
		want Model
	}{
		{"dmg", DMG},
		{"CGB", CGB},
		{"gbc", CGB},
		{"sgb", SGB},
		{"agb", Unset},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, StringToModel(tt.in))
		})
	}
}

func TestModelFeature(t *testing.T) {
	require.Equal(t, Feature(""), DMG.Feature())
	require.Equal(t, FeatureCGB, CGB.Feature())
	require.Equal(t, FeatureSGB, SGB.Feature())
	require.True(t, SGB.Monochrome())
	require.False(t, CGB.Monochrome())
}

func TestFeatureSetMissing(t *testing.T) {
	emu := NewFeatureSet(FeatureCGB, FeaturePCM)
	require.Empty(t, emu.Missing(NewFeatureSet(FeatureCGB)))
	require.Equal(t, []Feature{FeatureIR, FeatureSGB}, emu.Missing(NewFeatureSet(FeatureSGB, FeatureIR, FeaturePCM)))
	require.Empty(t, emu.Missing(nil))
	require.Equal(t, "{CGB, PCM}", emu.String())
}

func TestVerdictText(t *testing.T) {
	for _, v := range []Verdict{Pass, Fail, Unknown} {
		b, err := v.MarshalText()
		require.NoError(t, err)
		var got Verdict
		require.NoError(t, got.UnmarshalText(b))
		require.Equal(t, v, got)
	}
}
