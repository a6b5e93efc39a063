package testroms

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/shootout/internal/types"
)

func TestAcidSuite(t *testing.T) {
	var acidTests []string
	for _, test := range All() {
		if strings.Contains(test.String(), "acid") {
			acidTests = append(acidTests, test.Name())
		}
	}
	require.Equal(t, []string{
		"acid/which.gb (DMG)",
		"acid/which.gb (GBC)",
		"acid/dmg-acid2.gb",
		"acid/cgb-acid2.gbc",
		"acid/cgb-acid-hell.gbc",
	}, acidTests)
}

func TestWhichVariants(t *testing.T) {
	var which []*Test
	for _, test := range All() {
		if strings.Contains(test.String(), "acid/which") {
			which = append(which, test)
		}
	}
	require.Len(t, which, 2)
	require.Equal(t, types.DMG, which[0].Model())
	require.Equal(t, types.CGB, which[1].Model())
	require.Equal(t, which[0].ROM(), which[1].ROM())
	require.Equal(t, 1500*time.Millisecond, which[0].Runtime())
}

func TestCatalogIsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Suites() {
		require.NotEmpty(t, s.Tests, s.Name)
		for _, test := range s.Tests {
			require.False(t, seen[test.Name()], "duplicate test %s", test.Name())
			seen[test.Name()] = true

			require.Equal(t, s.Name, test.Suite())
			require.True(t, strings.HasPrefix(test.ROM(), s.Name+"/"), test.ROM())
			require.Positive(t, test.Runtime())
			require.NotEqual(t, types.Unset, test.Model())

			if f := test.Model().Feature(); f != "" {
				require.True(t, test.RequiredFeatures().Has(f), test.Name())
			}
		}
	}
	require.Len(t, All(), len(seen))
}

func TestAllReturnsFreshList(t *testing.T) {
	a := All()
	a[0] = nil
	require.NotNil(t, All()[0])
}

func TestRequiredFeatures(t *testing.T) {
	test := newTest("samesuite", "samesuite/apu/div_write_trigger.gb", asModel(types.CGB), requires(types.FeaturePCM))
	got := test.RequiredFeatures()
	require.Equal(t, []types.Feature{types.FeatureCGB, types.FeaturePCM}, got.Sorted())

	// callers cannot modify the test through the returned set
	delete(got, types.FeaturePCM)
	require.True(t, test.RequiredFeatures().Has(types.FeaturePCM))

	require.Empty(t, newTest("acid", "acid/dmg-acid2.gb").RequiredFeatures())
}

func TestModelFromFilename(t *testing.T) {
	tests := []struct {
		rom  string
		want types.Model
	}{
		{"boot_regs-dmgABC.gb", types.DMG},
		{"di_timing-GS.gb", types.DMG},
		{"boot_regs-sgb.gb", types.SGB},
		{"boot_hwio-S.gb", types.SGB},
		{"boot_hwio-C.gb", types.CGB},
		{"boot_regs-cgb.gb", types.CGB},
		{"boot_div-cgbABCDE.gb", types.CGB},
		{"bits/unused_hwio-C.gb", types.CGB},
		{"add_sp_e_timing.gb", types.DMG},
	}
	for _, tt := range tests {
		t.Run(tt.rom, func(t *testing.T) {
			require.Equal(t, tt.want, modelFromFilename(tt.rom))
		})
	}
}

func TestReferenceCandidates(t *testing.T) {
	which := forModels("acid", "acid/which.gb", dmgAndCGB)
	require.Equal(t, []string{"acid/which.dmg.png", "acid/which.png"}, which[0].ReferenceCandidates())
	require.Equal(t, []string{"acid/which.cgb.png", "acid/which.png"}, which[1].ReferenceCandidates())

	mts := mooneyeTests("mooneye", "acceptance", []string{"ei_timing.gb"}, 2)[0]
	require.Equal(t, "mooneye/acceptance/ei_timing.gb", mts.Name())
	require.Equal(t, []string{"mooneye/pass.dmg.png", "mooneye/pass.png"}, mts.ReferenceCandidates())
}

func TestFindReference(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acid"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acid", "which.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acid", "which.cgb.png"), []byte("png"), 0644))

	which := forModels("acid", "acid/which.gb", dmgAndCGB)
	require.Equal(t, filepath.Join(dir, "acid", "which.png"), which[0].FindReference(dir))
	require.Equal(t, filepath.Join(dir, "acid", "which.cgb.png"), which[1].FindReference(dir))
	require.Empty(t, newTest("acid", "acid/dmg-acid2.gb").FindReference(dir))
}

func TestScriptedInputs(t *testing.T) {
	rtc := ax6()
	require.Len(t, rtc, 3)

	inputs := rtc[2].Inputs()
	require.Len(t, inputs, 3)
	require.Equal(t, types.ButtonA, inputs[2].Button)
	for i := 1; i < len(inputs); i++ {
		require.Greater(t, inputs[i].At, inputs[i-1].At)
	}

	// copies, not the catalog's slice
	inputs[0].Button = types.ButtonStart
	require.Equal(t, types.ButtonDown, rtc[2].Inputs()[0].Button)
}

func TestSuiteOrder(t *testing.T) {
	var names []string
	for _, s := range Suites() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		"acid", "blargg", "daid", "ax6", "mooneye", "wilbertpol",
		"samesuite", "hacktix", "cpp", "mealybug", "little-things",
	}, names)
}
