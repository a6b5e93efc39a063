package testroms

// Suite is a named group of tests by a single author.
type Suite struct {
	Name  string
	Tests []*Test
}

// Suites returns the catalog grouped by suite, in run order.
func Suites() []Suite {
	return []Suite{
		{"acid", acid()},
		{"blargg", blargg()},
		{"daid", daid()},
		{"ax6", ax6()},
		{"mooneye", mooneye()},
		{"wilbertpol", wilbertpol()},
		{"samesuite", samesuite()},
		{"hacktix", hacktix()},
		{"cpp", cpp()},
		{"mealybug", mealybug()},
		{"little-things", littleThings()},
	}
}

// All returns every test of every suite as one list. Each call
// builds a fresh list.
func All() []*Test {
	var tests []*Test
	for _, s := range Suites() {
		tests = append(tests, s.Tests...)
	}
	return tests
}
