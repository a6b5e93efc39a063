package testroms

import (
	"time"

	"github.com/thelolagemann/shootout/internal/types"
)

const ax6URL = "https://github.com/aaaaaa123456789/rtc3test"

// rtc3test selects its sub test from a menu, so each variant
// scripts the button presses that pick it.
func ax6() []*Test {
	const suite = "ax6"
	rtc := func(name string, runtime float64, downs int) *Test {
		var inputs []Input
		at := time.Second
		for i := 0; i < downs; i++ {
			inputs = append(inputs, Input{Button: types.ButtonDown, At: at})
			at += 200 * time.Millisecond
		}
		inputs = append(inputs, Input{Button: types.ButtonA, At: at})

		return newTest(suite, "ax6/rtc3test.gb ("+name+")", withROM("ax6/rtc3test.gb"),
			withReference("ax6/rtc3test-"+name), withRuntime(runtime), withInputs(inputs...),
			withDescription("Tests the MBC3 real time clock, "+name+" tests."), withURL(ax6URL))
	}
	return []*Test{
		rtc("basic", 13, 0),
		rtc("range", 8, 1),
		rtc("subsecond", 26, 2),
	}
}
