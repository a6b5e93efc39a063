package testroms

import "github.com/thelolagemann/shootout/internal/types"

const samesuiteURL = "https://github.com/LIJI32/SameSuite"

// SameSuite APU tests read back channel output through the PCM12
// and PCM34 registers.
var samesuiteAPU = []string{
	"apu/div_trigger_volume_10.gb",
	"apu/div_write_trigger.gb",
	"apu/div_write_trigger_10.gb",
	"apu/div_write_trigger_volume.gb",
	"apu/div_write_trigger_volume_10.gb",
	"apu/channel_1/channel_1_align.gb",
	"apu/channel_1/channel_1_align_cpu.gb",
	"apu/channel_1/channel_1_delay.gb",
	"apu/channel_1/channel_1_duty.gb",
	"apu/channel_1/channel_1_duty_delay.gb",
	"apu/channel_1/channel_1_freq_change.gb",
	"apu/channel_1/channel_1_freq_change_timing-A.gb",
	"apu/channel_1/channel_1_nrx2_glitch.gb",
	"apu/channel_1/channel_1_nrx2_speed_change.gb",
	"apu/channel_1/channel_1_restart.gb",
	"apu/channel_1/channel_1_restart_nrx2_glitch.gb",
	"apu/channel_1/channel_1_stop_div.gb",
	"apu/channel_1/channel_1_stop_restart.gb",
	"apu/channel_1/channel_1_sweep.gb",
	"apu/channel_1/channel_1_sweep_restart.gb",
	"apu/channel_1/channel_1_sweep_restart_2.gb",
	"apu/channel_1/channel_1_volume.gb",
	"apu/channel_1/channel_1_volume_div.gb",
	"apu/channel_2/channel_2_align.gb",
	"apu/channel_2/channel_2_align_cpu.gb",
	"apu/channel_2/channel_2_delay.gb",
	"apu/channel_2/channel_2_duty.gb",
	"apu/channel_2/channel_2_duty_delay.gb",
	"apu/channel_2/channel_2_freq_change.gb",
	"apu/channel_2/channel_2_nrx2_glitch.gb",
	"apu/channel_2/channel_2_nrx2_speed_change.gb",
	"apu/channel_2/channel_2_restart.gb",
	"apu/channel_2/channel_2_restart_nrx2_glitch.gb",
	"apu/channel_2/channel_2_stop_div.gb",
	"apu/channel_2/channel_2_stop_restart.gb",
	"apu/channel_2/channel_2_volume.gb",
	"apu/channel_2/channel_2_volume_div.gb",
	"apu/channel_3/channel_3_and_glitch.gb",
	"apu/channel_3/channel_3_delay.gb",
	"apu/channel_3/channel_3_first_sample.gb",
	"apu/channel_3/channel_3_freq_change_delay.gb",
	"apu/channel_3/channel_3_restart_delay.gb",
	"apu/channel_3/channel_3_restart_during_delay.gb",
	"apu/channel_3/channel_3_restart_stop_delay.gb",
	"apu/channel_3/channel_3_shift_delay.gb",
	"apu/channel_3/channel_3_shift_skip_delay.gb",
	"apu/channel_3/channel_3_stop_delay.gb",
	"apu/channel_3/channel_3_stop_div.gb",
	"apu/channel_3/channel_3_wave_ram_dac_on_rw.gb",
	"apu/channel_3/channel_3_wave_ram_locked_write.gb",
	"apu/channel_3/channel_3_wave_ram_sync.gb",
	"apu/channel_4/channel_4_align.gb",
	"apu/channel_4/channel_4_delay.gb",
	"apu/channel_4/channel_4_equivalent_frequencies.gb",
	"apu/channel_4/channel_4_frequency_alignment.gb",
	"apu/channel_4/channel_4_freq_change.gb",
	"apu/channel_4/channel_4_lfsr.gb",
	"apu/channel_4/channel_4_lfsr15.gb",
	"apu/channel_4/channel_4_lfsr_15_7.gb",
	"apu/channel_4/channel_4_lfsr_7_15.gb",
	"apu/channel_4/channel_4_lfsr_restart.gb",
	"apu/channel_4/channel_4_lfsr_restart_fast.gb",
	"apu/channel_4/channel_4_volume_div.gb",
}

var samesuiteCGB = []string{
	"dma/gbc_dma_cont.gb",
	"dma/gdma_addr_mask.gb",
	"dma/hdma_lcd_off.gb",
	"dma/hdma_mode0.gb",
	"ppu/blocking_bgpi_increase.gb",
}

var samesuiteDMG = []string{
	"interrupt/ei_delay_halt.gb",
}

var samesuiteSGB = []string{
	"sgb/command_mlt_req.gb",
	"sgb/command_mlt_req_1_incrementing.gb",
}

func samesuite() []*Test {
	const suite = "samesuite"
	var tests []*Test
	add := func(roms []string, model types.Model, opts ...testOption) {
		for _, rom := range roms {
			o := append([]testOption{asModel(model), withReference(suite + "/pass"), withURL(samesuiteURL)}, opts...)
			tests = append(tests, newTest(suite, suite+"/"+rom, o...))
		}
	}

	add(samesuiteAPU, types.CGB, requires(types.FeaturePCM))
	add(samesuiteCGB, types.CGB)
	add(samesuiteDMG, types.DMG)
	add(samesuiteSGB, types.SGB)
	return tests
}
