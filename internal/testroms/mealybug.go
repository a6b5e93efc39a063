package testroms

import "github.com/thelolagemann/shootout/internal/types"

const mealybugURL = "https://github.com/mattcurrie/mealybug-tearoom-tests"

// mealybugROMs lists the tearoom tests with the models they have
// reference captures for.
var mealybugROMs = []struct {
	rom    string
	models []types.Model
}{
	{"m2_win_en_toggle.gb", dmgAndCGB},
	{"m3_bgp_change.gb", dmgAndCGB},
	{"m3_bgp_change_sprites.gb", dmgAndCGB},
	{"m3_lcdc_bg_en_change.gb", dmgAndCGB},
	{"m3_lcdc_bg_en_change2.gb", []types.Model{types.CGB}},
	{"m3_lcdc_bg_map_change.gb", dmgAndCGB},
	{"m3_lcdc_obj_en_change.gb", dmgAndCGB},
	{"m3_lcdc_obj_en_change_variant.gb", dmgAndCGB},
	{"m3_lcdc_obj_size_change.gb", dmgAndCGB},
	{"m3_lcdc_obj_size_change_scx.gb", dmgAndCGB},
	{"m3_lcdc_tile_sel_change.gb", dmgAndCGB},
	{"m3_lcdc_tile_sel_change2.gb", []types.Model{types.CGB}},
	{"m3_lcdc_tile_sel_win_change.gb", dmgAndCGB},
	{"m3_lcdc_win_en_change_multiple.gb", dmgAndCGB},
	{"m3_lcdc_win_en_change_multiple_wx.gb", dmgAndCGB},
	{"m3_lcdc_win_map_change.gb", dmgAndCGB},
	{"m3_obp0_change.gb", dmgAndCGB},
	{"m3_scx_high_5_bits.gb", dmgAndCGB},
	{"m3_scx_low_3_bits.gb", dmgAndCGB},
	{"m3_scy_change.gb", dmgAndCGB},
	{"m3_window_timing.gb", dmgAndCGB},
	{"m3_window_timing_wx_0.gb", dmgAndCGB},
	{"m3_wx_4_change.gb", []types.Model{types.DMG}},
	{"m3_wx_4_change_sprites.gb", dmgAndCGB},
	{"m3_wx_5_change.gb", []types.Model{types.DMG}},
	{"m3_wx_6_change.gb", []types.Model{types.DMG}},
}

func mealybug() []*Test {
	const suite = "mealybug"
	var tests []*Test
	for _, m := range mealybugROMs {
		tests = append(tests, forModels(suite, suite+"/"+m.rom, m.models, withRuntime(0.5),
			withDescription("Tests mid mode 3 register writes, compared against a capture from hardware."),
			withURL(mealybugURL))...)
	}
	return tests
}
