package testroms

import "github.com/thelolagemann/shootout/internal/types"

const blarggURL = "https://github.com/retrio/gb-test-roms"

var dmgAndCGB = []types.Model{types.DMG, types.CGB}

func blargg() []*Test {
	const suite = "blargg"
	var tests []*Test
	add := func(t ...*Test) { tests = append(tests, t...) }

	add(forModels(suite, "blargg/cpu_instrs.gb", dmgAndCGB, withRuntime(55),
		withDescription("Tests CPU instructions, all 11 sub-tests in one ROM."), withURL(blarggURL))...)
	add(forModels(suite, "blargg/instr_timing.gb", dmgAndCGB, withRuntime(1),
		withDescription("Tests the cycle count of each CPU instruction."), withURL(blarggURL))...)
	add(forModels(suite, "blargg/mem_timing.gb", dmgAndCGB, withRuntime(3),
		withDescription("Tests the cycle at which memory accesses of instructions happen."), withURL(blarggURL))...)
	add(forModels(suite, "blargg/mem_timing-2.gb", dmgAndCGB, withRuntime(4),
		withDescription("Tests memory access timing, second version with on screen output."), withURL(blarggURL))...)
	add(forModels(suite, "blargg/halt_bug.gb", dmgAndCGB, withRuntime(2),
		withDescription("Tests the HALT instruction skipping the next byte with interrupts disabled."), withURL(blarggURL))...)
	add(newTest(suite, "blargg/oam_bug.gb", withRuntime(21),
		withDescription("Tests OAM corruption caused by 16 bit increments during mode 2."), withURL(blarggURL)))
	add(newTest(suite, "blargg/dmg_sound.gb", withRuntime(36),
		withDescription("Tests the DMG sound hardware."), withURL(blarggURL)))
	add(newTest(suite, "blargg/cgb_sound.gb", withRuntime(37), asModel(types.CGB),
		withDescription("Tests the CGB sound hardware."), withURL(blarggURL)))
	add(newTest(suite, "blargg/interrupt_time.gb", withRuntime(2), asModel(types.CGB),
		withDescription("Tests interrupt dispatch timing in single and double speed mode."), withURL(blarggURL)))

	return tests
}
