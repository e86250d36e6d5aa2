// Package cpu implements the 65C02-family processor core: the register
// file, the full NMOS6502/CMOS65C02/WDC65C02S opcode set (including
// decimal-mode ADC/SBC, WAI/STP, and interrupt vectoring), driven by the
// shared opcode metadata in the disasm package.
package cpu

import (
	"log"

	"github.com/alivesay/iic-core/bus"
	"github.com/alivesay/iic-core/disasm"
	"github.com/alivesay/iic-core/interrupts"
	"github.com/alivesay/iic-core/iou"
)

// CpuType selects which 65C02-family variant's quirks apply. NMOS6502
// keeps the indirect-JMP page-wrap bug, does not clear D on BRK or
// interrupts, runs INA/DEA as no-ops and leaves flags untouched on
// PLX/PLY; CMOS65C02 fixes the page wrap and enables those behaviors;
// WDC65C02S additionally executes WAI/STP. The other CMOS opcodes (BRA,
// STZ, TSB/TRB, PHX/PHY, BIT #imm, the ($zp) forms, RMB/SMB/BBR/BBS)
// execute under every variant, NMOS6502 included.
type CpuType int

const (
	NMOS6502 CpuType = iota
	CMOS65C02
	WDC65C02S
)

func (t CpuType) String() string {
	switch t {
	case NMOS6502:
		return "NMOS6502"
	case CMOS65C02:
		return "CMOS65C02"
	case WDC65C02S:
		return "WDC65C02S"
	default:
		return "?"
	}
}

// Flags is the processor status register bit layout. Bit values match
// original_source/src/cpu.rs's bitflags Flags exactly.
type Flags uint8

const (
	FlagCarry     Flags = 1 << 0
	FlagZero      Flags = 1 << 1
	FlagIRQDis    Flags = 1 << 2
	FlagDecimal   Flags = 1 << 3
	FlagBreak     Flags = 1 << 4
	FlagUnused    Flags = 1 << 5
	FlagOverflow  Flags = 1 << 6
	FlagNegative  Flags = 1 << 7
)

// String renders the 8-character "NV-BDIZC" trace fragment, matching
// original_source/src/cpu.rs's format_flags.
func (p Flags) String() string {
	order := []struct {
		bit Flags
		ch  byte
	}{
		{FlagNegative, 'N'}, {FlagOverflow, 'V'}, {FlagUnused, '-'}, {FlagBreak, 'B'},
		{FlagDecimal, 'D'}, {FlagIRQDis, 'I'}, {FlagZero, 'Z'}, {FlagCarry, 'C'},
	}
	buf := make([]byte, len(order))
	for i, o := range order {
		if p&o.bit != 0 {
			buf[i] = o.ch
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

// CPU is the register file plus the fetch/decode/execute loop. It owns a
// Bus, through which every memory and soft-switch access flows.
type CPU struct {
	SystemType bus.SystemType
	CpuType    CpuType

	Bus *bus.Bus

	A, X, Y, SP uint8
	PC          uint16
	P           Flags

	// EntryPointOverride, when non-nil, wins over the reset vector in
	// ResolveEntryPoint — used by test harnesses to start execution at
	// a fixed address regardless of what's in ROM.
	EntryPointOverride *uint16

	// Symbols annotates trace output; nil disables symbol lookups.
	Symbols *disasm.SymbolTable

	// Trace enables the one-line-per-instruction log Step emits.
	Trace bool
}

// New constructs a CPU for the given system and variant. targetHz is
// accepted for API parity with a hypothetical future cycle-pacing mode
// (a non-goal today) and otherwise unused.
func New(systemType bus.SystemType, cpuType CpuType, _ uint32) *CPU {
	return &CPU{
		SystemType: systemType,
		CpuType:    cpuType,
		Bus:        bus.New(systemType),
		P:          FlagUnused | FlagBreak | FlagIRQDis,
	}
}

// LoadROM installs a ROM image via the Bus.
func (c *CPU) LoadROM(data []uint8) { c.Bus.LoadROM(data) }

// ResolveEntryPoint picks where execution should begin: the override if
// set, else the reset vector if it doesn't read back as the erase value
// $FFFF, else a system-specific default.
func (c *CPU) ResolveEntryPoint() uint16 {
	if c.EntryPointOverride != nil {
		log.Printf("cpu: using entry point override $%04X", *c.EntryPointOverride)
		return *c.EntryPointOverride
	}

	reset := c.Bus.ReadWord(0xFFFC)
	if reset != 0xFFFF {
		log.Printf("cpu: using reset vector entry point $%04X", reset)
		return reset
	}

	var def uint16
	if c.SystemType == bus.AppleIIc {
		def = 0xC800
	} else {
		def = 0x0400
	}
	log.Printf("cpu: no valid reset vector, defaulting to $%04X", def)
	return def
}

// Init performs a cold boot: clears interrupts, sets PC to the Apple IIc
// OLDRST entry point (or the resolved entry point on Generic), resets
// registers and flags, and (AppleIIc only) forces a deterministic
// soft-switch state.
func (c *CPU) Init() {
	log.Printf("cpu: cold boot")

	c.Bus.Interrupts.ClearAll()

	if c.SystemType == bus.AppleIIc {
		c.PC = 0xFF59 // OLDRST
	} else {
		c.PC = c.ResolveEntryPoint()
	}

	c.initializeRegisters()
	c.initializeFlags()

	if c.SystemType == bus.AppleIIc {
		c.initializeSoftSwitches()
	}

	log.Printf("cpu: init complete PC=$%04X SP=$%02X P=%s", c.PC, c.SP, c.P)
}

// Reset performs a warm reset. Unlike Init, it always resolves the entry
// point through ResolveEntryPoint, even on AppleIIc — a warm reset reads
// the real reset vector rather than jumping straight to OLDRST.
func (c *CPU) Reset() {
	log.Printf("cpu: warm reset")

	c.Bus.Interrupts.ClearAll()
	c.PC = c.ResolveEntryPoint()

	c.initializeRegisters()
	c.initializeFlags()

	if c.SystemType == bus.AppleIIc {
		c.initializeSoftSwitches()
	}

	log.Printf("cpu: reset complete PC=$%04X SP=$%02X P=%s", c.PC, c.SP, c.P)
}

func (c *CPU) initializeRegisters() {
	c.A, c.X, c.Y, c.SP = 0xFF, 0xFF, 0xFF, 0xFF
}

func (c *CPU) initializeFlags() {
	c.P = FlagUnused | FlagBreak | FlagIRQDis
	if c.CpuType != NMOS6502 {
		c.P &^= FlagDecimal
	}
}

// initializeSoftSwitches forces 80STORE off, PAGE2 off, TEXT on, and ZP
// bank 0 active — the Apple IIc's documented default power-on state.
//
// $C028/ALTROM is cleared directly through IOU.SetMemState rather than
// via its own write-triggered toggle (SSWrite(0xC028) XORs the bit): a
// toggle cannot guarantee landing on "off" from unknown prior state, so
// only a direct clear gives deterministic boot behavior. See
// SPEC_FULL.md §4.7.
func (c *CPU) initializeSoftSwitches() {
	log.Printf("cpu: initializing Apple IIc soft switches")

	c.Bus.IOU.SSWrite(0xC000) // 80STORE off
	c.Bus.IOU.SSWrite(0xC054) // PAGE2 off
	c.Bus.IOU.SSWrite(0xC051) // TEXT on
	c.Bus.IOU.SetMemState(c.Bus.IOU.MemState() &^ iou.ALTROM)
	c.Bus.IOU.SSWrite(0xC008) // ALTZP off (main zero page/stack active)
}

// handleInterrupt arbitrates pending NMI/RST/IRQ (BRK is handled
// synchronously by the BRK opcode itself, never through this path — see
// SPEC_FULL.md §4.7) and, if one is eligible, services it and returns
// true. Unlike the reference implementation, Step always stops for this
// turn after ANY interrupt is serviced, not just RST: servicing NMI/IRQ
// and then also executing a regular instruction in the same Step call
// would execute the ISR's first instruction one step early.
func (c *CPU) handleInterrupt() bool {
	nmiVec := c.Bus.ReadWord(0xFFFA)
	rstVec := c.Bus.ReadWord(0xFFFC)
	irqVec := c.Bus.ReadWord(0xFFFE)

	kind, target, ok := c.Bus.Interrupts.Poll(nmiVec, rstVec, irqVec)
	if !ok || kind == interrupts.BRK {
		return false
	}

	if kind == interrupts.IRQ && c.P&FlagIRQDis != 0 {
		return false
	}

	if kind == interrupts.RST {
		c.PC = target
		return true
	}

	c.pushStack(uint8(c.PC >> 8))
	c.pushStack(uint8(c.PC & 0xFF))

	pushedP := (c.P | FlagUnused) &^ FlagBreak
	c.pushStack(uint8(pushedP))

	c.P |= FlagIRQDis
	if c.CpuType != NMOS6502 {
		c.P &^= FlagDecimal
	}

	c.PC = target

	if kind == interrupts.NMI {
		c.Bus.Interrupts.ClearNMI()
	} else {
		c.Bus.Interrupts.ClearIRQ()
	}
	c.Bus.Interrupts.LeaveWait()

	return true
}

// Step executes (or waits out) exactly one instruction slot: servicing
// any pending interrupt, honoring halted/waiting state, then fetching,
// disassembling (for trace) and dispatching one opcode.
func (c *CPU) Step() {
	if c.handleInterrupt() {
		return
	}

	if c.Bus.Interrupts.Halted() {
		return
	}

	if c.Bus.Interrupts.Waiting() {
		if c.Bus.Interrupts.NMIPending() || c.Bus.Interrupts.IRQPending() {
			c.Bus.Interrupts.LeaveWait()
		} else {
			return
		}
	}

	pc := c.PC
	var trace string
	if c.Trace {
		trace = disasm.Disassemble(c.Bus, pc, c.Symbols)
	}

	opcode := c.Bus.ReadByte(c.PC)
	c.PC++
	afterFetch := c.PC

	c.execute(opcode)

	if c.PC == afterFetch {
		c.PC += uint16(disasm.Table[opcode].Bytes() - 1)
	}

	if c.Trace {
		log.Printf("%s A:%02X X:%02X Y:%02X P:%s[%02X] SP:%02X %s %s",
			trace, c.A, c.X, c.Y, c.P, uint8(c.P), c.SP,
			c.Bus.IOU.MemState(), c.Bus.Interrupts)
	}
}

// Tick steps once and then invokes onFrame — the hook an external video
// collaborator registers to repaint. onFrame runs after every step when
// non-nil; Tick does not pace it by wall-clock time.
func (c *CPU) Tick(onFrame func()) {
	c.Step()
	if onFrame != nil {
		onFrame()
	}
}

func (c *CPU) pushStack(v uint8) {
	c.Bus.WriteByte(0x0100|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) popStack() uint8 {
	c.SP++
	return c.Bus.ReadByte(0x0100 | uint16(c.SP))
}

func (c *CPU) setZN(v uint8) {
	c.P = (c.P &^ (FlagZero | FlagNegative))
	if v == 0 {
		c.P |= FlagZero
	}
	if v&0x80 != 0 {
		c.P |= FlagNegative
	}
}

func (c *CPU) setFlag(f Flags, on bool) {
	if on {
		c.P |= f
	} else {
		c.P &^= f
	}
}
