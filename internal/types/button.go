package types

// Button is a Game Boy joypad button. Emulator adapters map them
// to whatever keys the emulator listens on.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Right", "Left", "Up", "Down"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}
