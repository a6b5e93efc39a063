package testroms

const wilbertpolURL = "https://github.com/wilbertpol/mooneye-gb/tree/master/tests/acceptance"

var wilbertpolAcceptance = []string{
	"gpu/hblank_ly_scx_timing-GS.gb",
	"gpu/hblank_ly_scx_timing_nops.gb",
	"gpu/hblank_ly_scx_timing_variant_nops.gb",
	"gpu/intr_0_timing.gb",
	"gpu/intr_1_2_timing-GS.gb",
	"gpu/intr_1_timing.gb",
	"gpu/intr_2_0_timing.gb",
	"gpu/intr_2_mode0_scx1_timing_nops.gb",
	"gpu/intr_2_mode0_timing.gb",
	"gpu/intr_2_mode3_timing.gb",
	"gpu/intr_2_oam_ok_timing.gb",
	"gpu/intr_2_timing.gb",
	"gpu/lcdon_mode_timing.gb",
	"gpu/ly00_01_mode0_2.gb",
	"gpu/ly00_mode0_2-GS.gb",
	"gpu/ly00_mode1_0-GS.gb",
	"gpu/ly00_mode2_3.gb",
	"gpu/ly00_mode3_0.gb",
	"gpu/ly143_144_145.gb",
	"gpu/ly143_144_152_153.gb",
	"gpu/ly143_144_mode0_1.gb",
	"gpu/ly143_144_mode3_0.gb",
	"gpu/ly_lyc-GS.gb",
	"gpu/ly_lyc_0-GS.gb",
	"gpu/ly_lyc_0_write-GS.gb",
	"gpu/ly_lyc_144-GS.gb",
	"gpu/ly_lyc_153-GS.gb",
	"gpu/ly_lyc_153_write-GS.gb",
	"gpu/ly_new_frame-GS.gb",
	"gpu/ly_lyc_write-GS.gb",
	"gpu/stat_irq_blocking.gb",
	"gpu/stat_write_if-GS.gb",
	"gpu/vblank_if_timing.gb",
	"gpu/vblank_stat_intr-GS.gb",
	"timer/timer_if.gb",
}

// wilbertpol's tests grew out of mooneye-gb and report through
// the same pass screen.
func wilbertpol() []*Test {
	const suite = "wilbertpol"
	tests := mooneyeTests(suite, "acceptance", wilbertpolAcceptance, 2)
	for _, t := range tests {
		t.url = wilbertpolURL
	}
	return tests
}
