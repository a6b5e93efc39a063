package types

// Verdict is the outcome of a single test run compared against
// its reference image. It can be one of the following:
//
//   - Pass
//   - Fail
//   - Unknown
type Verdict int

const (
	// Unknown is recorded when no reference image exists
	// to judge the screenshot against.
	Unknown Verdict = iota
	// Pass means the screenshot matched the reference
	// within tolerance.
	Pass
	// Fail means the screenshot differed from the reference,
	// or had different dimensions.
	Fail
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

func (v Verdict) IsPass() bool {
	return v == Pass
}

func (v Verdict) IsFail() bool {
	return v == Fail
}

// MarshalText encodes the verdict as its string form.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes PASS/FAIL, anything else is Unknown.
func (v *Verdict) UnmarshalText(b []byte) error {
	switch string(b) {
	case "PASS":
		*v = Pass
	case "FAIL":
		*v = Fail
	default:
		*v = Unknown
	}
	return nil
}
