package testroms

import "github.com/thelolagemann/shootout/internal/types"

const daidURL = "https://github.com/daid/GBEmulatorShootout/tree/main/testroms/daid"

func daid() []*Test {
	const suite = "daid"
	return []*Test{
		newTest(suite, "daid/stop_instr.gb", withRuntime(3),
			withDescription("Tests the behaviour of the STOP instruction on DMG."), withURL(daidURL)),
		newTest(suite, "daid/stop_instr_gbc_mode3.gb", withRuntime(3), asModel(types.CGB),
			withDescription("Tests STOP executed during mode 3 on the GBC."), withURL(daidURL)),
		newTest(suite, "daid/ppu_scanline_bgp.gb", withRuntime(0.5),
			withDescription("Tests mid scanline writes to BGP, shows a palette ramp."), withURL(daidURL)),
		newTest(suite, "daid/speed_switch_timing_div.gbc", withRuntime(1), asModel(types.CGB),
			withDescription("Tests the DIV register across a CPU speed switch."), withURL(daidURL)),
		newTest(suite, "daid/speed_switch_timing_ly.gbc", withRuntime(1), asModel(types.CGB),
			withDescription("Tests the LY register across a CPU speed switch."), withURL(daidURL)),
		newTest(suite, "daid/speed_switch_timing_stat.gbc", withRuntime(1), asModel(types.CGB),
			withDescription("Tests STAT mode timing across a CPU speed switch."), withURL(daidURL)),
	}
}
