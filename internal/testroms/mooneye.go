package testroms

import (
	"path"
	"strings"

	"github.com/thelolagemann/shootout/internal/types"
)

const mooneyeURL = "https://github.com/Gekkio/mooneye-test-suite"

var mooneyeAcceptance = []string{
	"add_sp_e_timing.gb",
	"boot_div-dmgABCmgb.gb",
	"boot_hwio-dmgABCmgb.gb",
	"boot_regs-dmgABC.gb",
	"boot_regs-sgb.gb",
	"call_cc_timing.gb",
	"call_cc_timing2.gb",
	"call_timing.gb",
	"call_timing2.gb",
	"di_timing-GS.gb",
	"div_timing.gb",
	"ei_sequence.gb",
	"ei_timing.gb",
	"halt_ime0_ei.gb",
	"halt_ime0_nointr_timing.gb",
	"halt_ime1_timing.gb",
	"halt_ime1_timing2-GS.gb",
	"if_ie_registers.gb",
	"intr_timing.gb",
	"jp_cc_timing.gb",
	"jp_timing.gb",
	"ld_hl_sp_e_timing.gb",
	"oam_dma_restart.gb",
	"oam_dma_start.gb",
	"oam_dma_timing.gb",
	"pop_timing.gb",
	"push_timing.gb",
	"rapid_di_ei.gb",
	"ret_cc_timing.gb",
	"ret_timing.gb",
	"reti_intr_timing.gb",
	"reti_timing.gb",
	"rst_timing.gb",
	"bits/mem_oam.gb",
	"bits/reg_f.gb",
	"bits/unused_hwio-GS.gb",
	"instr/daa.gb",
	"interrupts/ie_push.gb",
	"oam_dma/basic.gb",
	"oam_dma/reg_read.gb",
	"oam_dma/sources-GS.gb",
	"ppu/hblank_ly_scx_timing-GS.gb",
	"ppu/intr_1_2_timing-GS.gb",
	"ppu/intr_2_0_timing.gb",
	"ppu/intr_2_mode0_timing.gb",
	"ppu/intr_2_mode0_timing_sprites.gb",
	"ppu/intr_2_mode3_timing.gb",
	"ppu/intr_2_oam_ok_timing.gb",
	"ppu/lcdon_timing-GS.gb",
	"ppu/lcdon_write_timing-GS.gb",
	"ppu/stat_irq_blocking.gb",
	"ppu/stat_lyc_onoff.gb",
	"ppu/vblank_stat_intr-GS.gb",
	"serial/boot_sclk_align-dmgABCmgb.gb",
	"timer/div_write.gb",
	"timer/rapid_toggle.gb",
	"timer/tim00.gb",
	"timer/tim00_div_trigger.gb",
	"timer/tim01.gb",
	"timer/tim01_div_trigger.gb",
	"timer/tim10.gb",
	"timer/tim10_div_trigger.gb",
	"timer/tim11.gb",
	"timer/tim11_div_trigger.gb",
	"timer/tima_reload.gb",
	"timer/tima_write_reloading.gb",
	"timer/tma_write_reloading.gb",
}

var mooneyeMisc = []string{
	"boot_div-cgbABCDE.gb",
	"boot_hwio-C.gb",
	"boot_regs-cgb.gb",
	"bits/unused_hwio-C.gb",
	"ppu/vblank_stat_intr-C.gb",
}

var mooneyeMBC = []string{
	"mbc1/bits_bank1.gb",
	"mbc1/bits_bank2.gb",
	"mbc1/bits_mode.gb",
	"mbc1/bits_ramg.gb",
	"mbc1/ram_64kb.gb",
	"mbc1/ram_256kb.gb",
	"mbc1/rom_512kb.gb",
	"mbc1/rom_1Mb.gb",
	"mbc1/rom_2Mb.gb",
	"mbc1/rom_4Mb.gb",
	"mbc1/rom_8Mb.gb",
	"mbc1/rom_16Mb.gb",
	"mbc2/bits_ramg.gb",
	"mbc2/bits_romb.gb",
	"mbc2/bits_unused.gb",
	"mbc2/ram.gb",
	"mbc2/rom_512kb.gb",
	"mbc2/rom_1Mb.gb",
	"mbc2/rom_2Mb.gb",
	"mbc5/rom_512kb.gb",
	"mbc5/rom_1Mb.gb",
	"mbc5/rom_2Mb.gb",
	"mbc5/rom_4Mb.gb",
	"mbc5/rom_8Mb.gb",
	"mbc5/rom_16Mb.gb",
	"mbc5/rom_32Mb.gb",
	"mbc5/rom_64Mb.gb",
}

// modelFromFilename derives the target model from the hardware
// suffix mooneye style ROM names carry, e.g. -C, -cgb, -S or -sgb.
// Names without a colour or super suffix run on DMG.
func modelFromFilename(name string) types.Model {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	i := strings.LastIndex(base, "-")
	if i < 0 {
		return types.DMG
	}
	switch suffix := base[i+1:]; {
	case suffix == "C", strings.HasPrefix(suffix, "cgb"):
		return types.CGB
	case suffix == "S", strings.HasPrefix(suffix, "sgb"):
		return types.SGB
	}
	return types.DMG
}

func mooneyeTests(suite, dir string, roms []string, runtime float64) []*Test {
	tests := make([]*Test, 0, len(roms))
	for _, rom := range roms {
		name := suite + "/" + dir + "/" + rom
		tests = append(tests, newTest(suite, name,
			asModel(modelFromFilename(rom)),
			withRuntime(runtime),
			withReference(suite+"/pass"),
			withURL(mooneyeURL)))
	}
	return tests
}

func mooneye() []*Test {
	const suite = "mooneye"
	tests := mooneyeTests(suite, "acceptance", mooneyeAcceptance, 2)
	tests = append(tests, mooneyeTests(suite, "misc", mooneyeMisc, 2)...)
	tests = append(tests, mooneyeTests(suite, "emulator-only", mooneyeMBC, 4)...)
	return tests
}
