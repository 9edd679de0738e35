// Command argus400asm assembles an Argus 400/500 source file into a
// hex or binary memory image (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/revaldinho/argus400/asm"
	"github.com/revaldinho/argus400/config"
	"github.com/revaldinho/argus400/ioformat"
	"github.com/revaldinho/argus400/word"
	"github.com/spf13/cobra"
)

func main() {
	var (
		filename   string
		output     string
		format     string
		noListing  bool
		startAddr  int
		imageSize  int
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "argus400asm: warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "argus400asm",
		Short: "Assemble Argus 400/500 source into a memory image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filename == "" {
				return fmt.Errorf("-f/--filename is required")
			}

			src, err := os.ReadFile(filename) // #nosec G304 -- user-supplied assembler source
			if err != nil {
				return fmt.Errorf("reading %s: %w", filename, err)
			}

			a := asm.NewAssembler()
			result := a.Assemble(filename, string(src))

			if !noListing {
				fmt.Println(ioformat.FormatListingHeader())
				for _, line := range result.Lines {
					w := uint32(0)
					if len(line.Words) > 0 {
						w = line.Words[0]
					}
					fmt.Println(ioformat.FormatListingRow(ioformat.ListingRow{
						Addr: line.Addr, Word: w, Label: line.Label, Source: line.Raw,
					}))
				}
			}

			if result.Errors.HasErrors() {
				fmt.Fprint(os.Stderr, result.Errors.Error())
				return fmt.Errorf("assembly failed with %d error(s)", len(result.Errors.Errors))
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output) // #nosec G304 -- user-supplied output path
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			size := imageSize
			if size == 0 {
				size = word.MemSize - startAddr
			}
			if startAddr < 0 || size < 0 || startAddr+size > word.MemSize {
				return fmt.Errorf("start_adr/size out of range: %d..%d exceeds memory size %d", startAddr, startAddr+size, word.MemSize)
			}
			slice := result.Image[startAddr : startAddr+size]

			switch format {
			case "hex":
				return ioformat.WriteHex(out, slice)
			case "bin":
				return ioformat.WriteBin(out, slice)
			default:
				return fmt.Errorf("unknown --format %q, expected hex or bin", format)
			}
		},
	}

	rootCmd.Flags().StringVarP(&filename, "filename", "f", "", "source file to assemble (required)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	rootCmd.Flags().StringVarP(&format, "format", "g", cfg.Assembler.OutputFormat, "output format: hex or bin")
	rootCmd.Flags().BoolVarP(&noListing, "nolisting", "n", !cfg.Emulator.ShowListing, "suppress the assembly listing")
	rootCmd.Flags().IntVarP(&startAddr, "start_adr", "s", int(cfg.Assembler.StartAddress), "program start address")
	rootCmd.Flags().IntVarP(&imageSize, "size", "z", int(cfg.Assembler.ImageSize), "memory image size in words")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "argus400asm: %v\n", err)
		os.Exit(1)
	}
}
