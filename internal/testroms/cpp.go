package testroms

const cppURL = "https://github.com/CasualPokePlayer/test-roms"

func cpp() []*Test {
	const suite = "cpp"
	return []*Test{
		newTest(suite, "cpp/ramg-mbc3-test.gb", withRuntime(1),
			withDescription("Tests MBC3 RAM gate behaviour for the RTC registers."), withURL(cppURL)),
		newTest(suite, "cpp/rtc-invalid-banks-test.gb", withRuntime(1),
			withDescription("Tests reads and writes to invalid MBC3 RTC register banks."), withURL(cppURL)),
		newTest(suite, "cpp/latch-rtc-test.gb", withRuntime(5),
			withDescription("Tests MBC3 RTC latching across a running clock."), withURL(cppURL)),
	}
}
