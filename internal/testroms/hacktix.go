package testroms

func hacktix() []*Test {
	const suite = "hacktix"
	tests := forModels(suite, "hacktix/bully.gb", dmgAndCGB, withRuntime(1.5),
		withDescription("Tests a wide range of emulation edge cases and reports the first failure."),
		withURL("https://github.com/Hacktix/BullyGB"))
	tests = append(tests, forModels(suite, "hacktix/strikethrough.gb", dmgAndCGB, withRuntime(1.5),
		withDescription("Tests OAM DMA and sprite rendering quirks, a red line means a failure."),
		withURL("https://github.com/Hacktix/strikethrough.gb"))...)
	return tests
}
