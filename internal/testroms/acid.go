package testroms

import "github.com/thelolagemann/shootout/internal/types"

func acid() []*Test {
	const suite = "acid"
	return []*Test{
		newTest(suite, "acid/which.gb (DMG)", withRuntime(1.5), withROM("acid/which.gb")),
		newTest(suite, "acid/which.gb (GBC)", withRuntime(1.5), withROM("acid/which.gb"), asModel(types.CGB)),
		newTest(suite, "acid/dmg-acid2.gb", withRuntime(1.5),
			withDescription("Rendering test for classic GameBoy."),
			withURL("https://github.com/mattcurrie/dmg-acid2")),
		newTest(suite, "acid/cgb-acid2.gbc", withRuntime(1.5), asModel(types.CGB),
			withDescription("Rendering test for color GameBoy."),
			withURL("https://github.com/mattcurrie/cgb-acid2")),
		newTest(suite, "acid/cgb-acid-hell.gbc", withRuntime(1.5), asModel(types.CGB),
			withDescription("Very specific rendering test of mid scanline writes, very hard to pass."),
			withURL("https://github.com/mattcurrie/cgb-acid-hell")),
	}
}
