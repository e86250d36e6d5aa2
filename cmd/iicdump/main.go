// Command iicdump is a small CLI around the disasm and romimage packages:
// load a ROM image (raw or Intel HEX), optionally attach a symbol file,
// and print a one-line-per-instruction disassembly over a given range.
// It is the one place in this repository that touches os.Open — every
// CORE package underneath takes bytes, never file paths.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/alivesay/iic-core/disasm"
	"github.com/alivesay/iic-core/romimage"
)

type flatBus struct {
	data []uint8
}

func (b *flatBus) ReadByte(addr uint16) uint8 {
	if int(addr) >= len(b.data) {
		return 0
	}
	return b.data[addr]
}

func main() {
	var (
		intelHex   bool
		appleIIc   bool
		symbolFile string
		start      uint16
		count      int
	)

	root := &cobra.Command{
		Use:   "iicdump <rom-file>",
		Short: "Disassemble a 6502/65C02 ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("iicdump: %w", err)
			}

			maxSize := romimage.MaxSize(appleIIc)

			var data []uint8
			if intelHex {
				data, err = romimage.LoadIntelHex(bufio.NewReader(bytes.NewReader(raw)), maxSize)
			} else {
				data, err = romimage.LoadRaw(raw, maxSize)
			}
			if err != nil {
				return fmt.Errorf("iicdump: %w", err)
			}

			var symbols *disasm.SymbolTable
			if symbolFile != "" {
				f, err := os.Open(symbolFile)
				if err != nil {
					return fmt.Errorf("iicdump: %w", err)
				}
				defer f.Close()
				symbols, err = disasm.LoadText(bufio.NewReader(f))
				if err != nil {
					return fmt.Errorf("iicdump: %w", err)
				}
			}

			bus := &flatBus{data: data}
			addr := start
			for i := 0; i < count; i++ {
				line := disasm.Disassemble(bus, addr, symbols)
				fmt.Println(line)
				addr += uint16(disasm.Table[bus.ReadByte(addr)].Bytes())
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.BoolVar(&intelHex, "intel-hex", false, "parse the input as Intel HEX rather than a raw binary blob")
	flags.BoolVar(&appleIIc, "apple2c", false, "cap ROM size at the Apple IIc's 32KiB rather than 64KiB")
	flags.StringVar(&symbolFile, "symbols", "", "path to an ADDRESS NAME symbol file")
	flags.Uint16Var(&start, "start", 0, "address to begin disassembling at")
	flags.IntVar(&count, "count", 32, "number of instructions to disassemble")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
