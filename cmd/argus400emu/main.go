// Command argus400emu loads an Argus 400/500 hex memory image and runs
// it to completion, printing a trace and (on the Argus 500) a per-model
// timing report (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/revaldinho/argus400/config"
	"github.com/revaldinho/argus400/emu"
	"github.com/revaldinho/argus400/ioformat"
	"github.com/revaldinho/argus400/isa"
	"github.com/revaldinho/argus400/word"
	"github.com/spf13/cobra"
)

func main() {
	var (
		filename    string
		noListing   bool
		machine100  bool
		machine400  bool
		machine500  bool
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "argus400emu: warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "argus400emu",
		Short: "Run an Argus 400/500 memory image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filename == "" {
				return fmt.Errorf("-f/--filename is required")
			}

			f, err := os.Open(filename) // #nosec G304 -- user-supplied memory image
			if err != nil {
				return fmt.Errorf("opening %s: %w", filename, err)
			}
			defer f.Close()

			image, err := ioformat.LoadHex(f)
			if err != nil {
				return fmt.Errorf("loading %s: %w", filename, err)
			}

			mem := word.NewMemory()
			words := make([]word.Word, word.MemSize)
			for i, v := range image {
				words[i] = word.Mask(v)
			}
			mem.LoadSequence(words)

			machine := selectMachine(machine100, machine400, machine500)

			cpu := emu.NewCPU(mem, machine)
			cpu.Console = os.Stdout
			if !noListing {
				fmt.Println(emu.Header)
				cpu.Trace = os.Stdout
			}

			cpu.Run()

			if cpu.State == emu.Faulted {
				fmt.Fprintf(os.Stderr, "argus400emu: %v\n", cpu.Err)
				cpu.FlushConsole()
				return fmt.Errorf("run aborted after %d instructions", cpu.InstrCount)
			}

			fmt.Printf("\n%s after %d instructions\n", cpu.State, cpu.InstrCount)
			cpu.FlushConsole()

			if machine == emu.Machine500 && cfg.Emulator.ShowTiming {
				printTimingReport(cpu)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&filename, "filename", "f", "", "hex memory image to load (required)")
	rootCmd.Flags().BoolVarP(&noListing, "nolisting", "n", !cfg.Emulator.ShowListing, "suppress the execution trace")
	rootCmd.Flags().BoolVarP(&machine100, "100", "1", false, "emulate the Argus 100")
	rootCmd.Flags().BoolVarP(&machine400, "400", "4", false, "emulate the Argus 400")
	rootCmd.Flags().BoolVarP(&machine500, "500", "5", true, "emulate the Argus 500 (default; enables timing report)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "argus400emu: %v\n", err)
		os.Exit(1)
	}
}

// selectMachine resolves the mutually-exclusive model flags, with the
// Argus 500 as the default when none (or only its own default-true
// flag) is set.
func selectMachine(m100, m400, m500 bool) emu.Machine {
	switch {
	case m100:
		return emu.Machine100
	case m400:
		return emu.Machine400
	default:
		return emu.Machine500
	}
}

func printTimingReport(cpu *emu.CPU) {
	fmt.Println("\nTiming report (microseconds):")
	for i, name := range isa.ModelNames {
		fmt.Printf("  %-32s %.2f\n", name, cpu.Timers[i])
	}
}
