// Package mmu implements the Apple IIc memory management unit: two
// 16 KiB ROM banks, two 64 KiB RAM banks (main, aux) and four 4 KiB
// Language Card RAM banks, resolved against the IOU's memory-state byte
// on every access outside $C000-$C0FF.
package mmu

import (
	"log"

	"github.com/alivesay/iic-core/iou"
	"github.com/alivesay/iic-core/memory"
)

const (
	romBankSize = 16 * 1024
	ramBankSize = 64 * 1024
	lcBankSize  = 4 * 1024
)

// MMU owns every byte of Apple IIc addressable memory outside the
// soft-switch page.
type MMU struct {
	rom   [2]*memory.Bank
	ram   [2]*memory.Bank // 0 = main, 1 = aux
	lcram [4]*memory.Bank // index = rdbnk | (sel<<1)
}

// New allocates all banks, ROM filled with 0xFF (matches the "no ROM
// loaded yet" convention original_source/src/rom.rs pads with).
func New() *MMU {
	return &MMU{
		rom: [2]*memory.Bank{
			memory.NewFilled(romBankSize, "ROM0", 0xFF),
			memory.NewFilled(romBankSize, "ROM1", 0xFF),
		},
		ram: [2]*memory.Bank{
			memory.New(ramBankSize, "MAIN"),
			memory.New(ramBankSize, "AUX"),
		},
		lcram: [4]*memory.Bank{
			memory.New(lcBankSize, "LC00"),
			memory.New(lcBankSize, "LC01"),
			memory.New(lcBankSize, "LC10"),
			memory.New(lcBankSize, "LC11"),
		},
	}
}

// LoadROM splits a 32 KiB image into the two 16 KiB ROM banks. Shorter
// images load into bank 0 only, per spec.md §4.4's "ROM loading splits a
// 32 KiB image into two 16 KiB banks."
func (m *MMU) LoadROM(data []uint8) {
	if len(data) > romBankSize {
		m.rom[0].LoadBytes(0, data[:romBankSize])
		rest := data[romBankSize:]
		if len(rest) > romBankSize {
			rest = rest[:romBankSize]
		}
		m.rom[1].LoadBytes(0, rest)
		return
	}
	m.rom[0].LoadBytes(0, data)
}

func lcIndex(rdbnk, ramSel bool) int {
	i := 0
	if rdbnk {
		i |= 1
	}
	if ramSel {
		i |= 2
	}
	return i
}

// ReadByte resolves addr per spec.md §4.4's read decode order. memState
// is the IOU's current memory-state byte; is80Store/page2 are the IOU's
// 80STORE bit and VideoMode PAGE2 bit (PAGE2 lives in a different
// bitmask than the other MMU-relevant bits, hence the separate param).
func (m *MMU) ReadByte(memState iou.MemStateMask, is80Store, page2 bool, addr uint16) uint8 {
	altzp := memState&iou.ALTZP != 0
	ramrd := memState&iou.RAMRD != 0
	lcram := memState&iou.LCRAM != 0
	rdbnk := memState&iou.RDBNK != 0
	altrom := memState&iou.ALTROM != 0

	switch {
	case addr <= 0x01FF:
		return m.ramBank(altzp).ReadByte(addr)

	case is80Store && isDisplayPage(addr):
		return m.ramBank(page2).ReadByte(addr)

	case addr >= 0x0200 && addr <= 0xBFFF:
		return m.ramBank(ramrd).ReadByte(addr)

	case addr >= 0xC100 && addr <= 0xCFFF:
		if lcram {
			return m.lcram[lcIndex(rdbnk, ramrd)].ReadByte(addr - 0xC100)
		}
		return m.romBank(altrom).ReadByte(addr - 0xC000)

	case addr >= 0xD000 && addr <= 0xDFFF:
		if lcram {
			return m.lcram[lcIndex(rdbnk, ramrd)].ReadByte(addr - 0xD000)
		}
		return m.romBank(altrom).ReadByte(addr - 0xC000)

	default: // 0xE000-0xFFFF
		if lcram {
			return m.ramBank(altzp).ReadByte(addr)
		}
		return m.romBank(altrom).ReadByte(addr - 0xC000)
	}
}

// WriteByte mirrors ReadByte, substituting RAMWRT for RAMRD and gating LC
// and high-memory writes on WRITE=1.
func (m *MMU) WriteByte(memState iou.MemStateMask, is80Store, page2 bool, addr uint16, val uint8) {
	altzp := memState&iou.ALTZP != 0
	ramwrt := memState&iou.RAMWRT != 0
	lcram := memState&iou.LCRAM != 0
	rdbnk := memState&iou.RDBNK != 0
	write := memState&iou.WRITE != 0

	switch {
	case addr <= 0x01FF:
		m.ramBank(altzp).WriteByte(addr, val)
		return

	case is80Store && isDisplayPage(addr):
		m.ramBank(page2).WriteByte(addr, val)
		return

	case addr >= 0x0200 && addr <= 0xBFFF:
		m.ramBank(ramwrt).WriteByte(addr, val)
		return

	case addr >= 0xC100 && addr <= 0xCFFF:
		if lcram {
			if write {
				m.lcram[lcIndex(rdbnk, ramwrt)].WriteByte(addr-0xC100, val)
			} else {
				log.Printf("mmu: write to read-only LC RAM at $%04X dropped", addr)
			}
		} else {
			log.Printf("mmu: write to ROM at $%04X dropped", addr)
		}
		return

	case addr >= 0xD000 && addr <= 0xDFFF:
		if lcram {
			if write {
				m.lcram[lcIndex(rdbnk, ramwrt)].WriteByte(addr-0xD000, val)
			} else {
				log.Printf("mmu: write to read-only LC RAM at $%04X dropped", addr)
			}
		} else {
			log.Printf("mmu: write to ROM at $%04X dropped", addr)
		}
		return

	default: // 0xE000-0xFFFF
		if lcram {
			if write {
				m.ramBank(altzp).WriteByte(addr, val)
			} else {
				log.Printf("mmu: write to read-only LC RAM at $%04X dropped", addr)
			}
		} else {
			log.Printf("mmu: write to ROM at $%04X dropped", addr)
		}
	}
}

func isDisplayPage(addr uint16) bool {
	return (addr >= 0x0400 && addr <= 0x07FF) || (addr >= 0x2000 && addr <= 0x3FFF)
}

func (m *MMU) ramBank(aux bool) *memory.Bank {
	if aux {
		return m.ram[1]
	}
	return m.ram[0]
}

func (m *MMU) romBank(alt bool) *memory.Bank {
	if alt {
		return m.rom[1]
	}
	return m.rom[0]
}
