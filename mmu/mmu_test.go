package mmu

import (
	"testing"

	"github.com/alivesay/iic-core/iou"
)

func TestZeroPageAndStackFollowAltzp(t *testing.T) {
	m := New()
	m.WriteByte(0, false, false, 0x0080, 0x11)
	m.WriteByte(iou.ALTZP, false, false, 0x0080, 0x22)

	if got := m.ReadByte(0, false, false, 0x0080); got != 0x11 {
		t.Fatalf("expected main zero page $11, got %02X", got)
	}
	if got := m.ReadByte(iou.ALTZP, false, false, 0x0080); got != 0x22 {
		t.Fatalf("expected aux zero page $22, got %02X", got)
	}
}

func TestMainRAMRoutesOnRAMRDRAMWRT(t *testing.T) {
	m := New()
	m.WriteByte(0, false, false, 0x1000, 0xAA)
	m.WriteByte(iou.RAMWRT, false, false, 0x1000, 0xBB)

	if got := m.ReadByte(0, false, false, 0x1000); got != 0xAA {
		t.Fatalf("expected main RAM $AA, got %02X", got)
	}
	if got := m.ReadByte(iou.RAMRD, false, false, 0x1000); got != 0xBB {
		t.Fatalf("expected aux RAM $BB, got %02X", got)
	}
}

func Test80StoreOverridesDisplayPageWithPAGE2(t *testing.T) {
	m := New()
	m.WriteByte(0, false, false, 0x0400, 0x01) // main display, via plain RAMWRT path
	m.WriteByte(iou.RAMWRT, true, true, 0x0400, 0x02)

	if got := m.ReadByte(0, true, false, 0x0400); got != 0x01 {
		t.Fatalf("expected 80STORE+PAGE2=0 to read main display byte, got %02X", got)
	}
	if got := m.ReadByte(0, true, true, 0x0400); got != 0x02 {
		t.Fatalf("expected 80STORE+PAGE2=1 to read aux display byte, got %02X", got)
	}
}

func TestHighMemoryFallsBackToROMWhenLCRAMOff(t *testing.T) {
	m := New()
	rom := make([]uint8, 0x8000)
	rom[0x100] = 0x42 // offset into bank0, addr $C100 -> offset 0x100
	m.LoadROM(rom)

	if got := m.ReadByte(0, false, false, 0xC100); got != 0x42 {
		t.Fatalf("expected ROM byte $42 at $C100, got %02X", got)
	}
}

func TestLCRAMRoutesByBankSelectAndIsWriteProtectedByDefault(t *testing.T) {
	m := New()
	state := iou.LCRAM // readable, but WRITE bit clear
	m.WriteByte(state, false, false, 0xD000, 0x55)
	if got := m.ReadByte(state, false, false, 0xD000); got != 0 {
		t.Fatalf("expected write-protected LC RAM to stay 0, got %02X", got)
	}

	writable := iou.LCRAM | iou.WRITE
	m.WriteByte(writable, false, false, 0xD000, 0x55)
	if got := m.ReadByte(writable, false, false, 0xD000); got != 0x55 {
		t.Fatalf("expected writable LC RAM to store $55, got %02X", got)
	}
}

func TestLCBankSelectPicksDistinctBanks(t *testing.T) {
	m := New()
	bank1 := iou.LCRAM | iou.WRITE
	bank2 := iou.LCRAM | iou.WRITE | iou.RDBNK

	m.WriteByte(bank1, false, false, 0xD000, 0x01)
	m.WriteByte(bank2, false, false, 0xD000, 0x02)

	if got := m.ReadByte(bank1, false, false, 0xD000); got != 0x01 {
		t.Fatalf("expected bank1 value $01, got %02X", got)
	}
	if got := m.ReadByte(bank2, false, false, 0xD000); got != 0x02 {
		t.Fatalf("expected bank2 value $02, got %02X", got)
	}
}

func TestLoadROMSplitsIntoTwoBanks(t *testing.T) {
	m := New()
	data := make([]uint8, 0x8000)
	data[0] = 0x11         // bank 0 start
	data[romBankSize] = 0x22 // bank 1 start (read at $C000 with ALTROM set)
	m.LoadROM(data)

	if got := m.ReadByte(0, false, false, 0xC000); got != 0x11 {
		t.Fatalf("expected bank0 byte $11 at $C000, got %02X", got)
	}
	if got := m.ReadByte(iou.ALTROM, false, false, 0xC000); got != 0x22 {
		t.Fatalf("expected bank1 byte $22 at $C000 with ALTROM set, got %02X", got)
	}
}

func TestWriteToROMIsDroppedNotFatal(t *testing.T) {
	m := New()
	m.WriteByte(0, false, false, 0xC100, 0x99) // no LCRAM, no panic expected
	if got := m.ReadByte(0, false, false, 0xC100); got != 0xFF {
		t.Fatalf("expected unloaded ROM to stay $FF after dropped write, got %02X", got)
	}
}
