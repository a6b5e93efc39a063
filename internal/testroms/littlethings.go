package testroms

import (
	"time"

	"github.com/thelolagemann/shootout/internal/types"
)

const littleThingsURL = "https://github.com/pinobatch/little-things-gb"

// tellinglys waits for every button to be pressed in turn.
var tellinglysInputs = []Input{
	{Button: types.ButtonA, At: 500 * time.Millisecond},
	{Button: types.ButtonB, At: 1000 * time.Millisecond},
	{Button: types.ButtonStart, At: 1500 * time.Millisecond},
	{Button: types.ButtonSelect, At: 2000 * time.Millisecond},
	{Button: types.ButtonRight, At: 2500 * time.Millisecond},
	{Button: types.ButtonLeft, At: 3000 * time.Millisecond},
	{Button: types.ButtonUp, At: 3500 * time.Millisecond},
	{Button: types.ButtonDown, At: 4000 * time.Millisecond},
}

func littleThings() []*Test {
	const suite = "little-things"
	tests := []*Test{
		newTest(suite, "little-things/firstwhite.gb", withRuntime(1),
			withDescription("Tests that the first frame after enabling the LCD is blank."),
			withURL(littleThingsURL)),
	}
	tests = append(tests, forModels(suite, "little-things/tellinglys.gb", dmgAndCGB, withRuntime(5),
		withInputs(tellinglysInputs...),
		withDescription("Tests joypad interrupt timing, needs every button pressed."),
		withURL(littleThingsURL))...)
	return tests
}
