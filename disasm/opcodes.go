// Package disasm implements the one-line Apple IIc disassembler: a
// 256-entry opcode table (mnemonic, addressing mode, operand byte
// count) and a formatter that must agree byte-for-byte with the CPU's
// own opcode consumption, since both share this table's shape.
package disasm

// Mode identifies an addressing mode. Grounded on
// original_source/src/disassembler.rs's AddressingMode enum.
type Mode int

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	ZeroPageIndirect // CMOS ($zp)
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect         // JMP ($abs)
	IndirectX        // ($zp,X)
	IndirectY        // ($zp),Y
	Relative
	IndirectAbsoluteX  // JMP ($abs,X), CMOS-only, opcode $7C
	ZeroPageRelative   // BBRn/BBSn: zero-page address, then displacement
)

// OperandBytes returns how many bytes follow the opcode byte itself for
// the given mode.
func (m Mode) OperandBytes() int {
	switch m {
	case Implied, Accumulator:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect, IndirectAbsoluteX, ZeroPageRelative:
		return 2
	default:
		return 1
	}
}

// Opcode is one entry of the shared 256-entry dispatch/disassembly
// table.
type Opcode struct {
	Mnemonic string
	Mode     Mode
	Cycles   uint8 // nominal; cycle-accurate timing is a non-goal
}

// Bytes is the total instruction length: the opcode byte plus operands.
func (o Opcode) Bytes() int { return 1 + o.Mode.OperandBytes() }

// Table is the full 256-entry opcode table, indexed by opcode byte.
// Grounded on original_source/src/disassembler.rs's OPCODES const array
// (the authoritative CMOS/WDC 65C02 table this spec targets), with the
// mnemonic/mode/byte-count for every opcode cross-checked against the
// per-opcode match arms read out of original_source/src/cpu.rs
// (illegal-opcode byte counts in particular: 1-byte NOPs at the
// no-operand illegal slots, 2-byte NOPs at the immediate/zero-page
// illegal slots, 3-byte NOPs at the absolute illegal slots).
//
// $5C is deliberately a 3-byte NOP here, not a second JMP
// (abs,X)/IndirectAbsoluteX alias — see SPEC_FULL.md §4.6.
var Table = [256]Opcode{
	0x00: {"BRK", Implied, 7}, 0x01: {"ORA", IndirectX, 6},
	0x02: {"NOP", Immediate, 2}, 0x03: {"NOP", Implied, 1},
	0x04: {"TSB", ZeroPage, 5}, 0x05: {"ORA", ZeroPage, 3},
	0x06: {"ASL", ZeroPage, 5}, 0x07: {"RMB0", ZeroPage, 5},
	0x08: {"PHP", Implied, 3}, 0x09: {"ORA", Immediate, 2},
	0x0A: {"ASL", Accumulator, 2}, 0x0B: {"NOP", Implied, 1},
	0x0C: {"TSB", Absolute, 6}, 0x0D: {"ORA", Absolute, 4},
	0x0E: {"ASL", Absolute, 6}, 0x0F: {"BBR0", ZeroPageRelative, 5},

	0x10: {"BPL", Relative, 2}, 0x11: {"ORA", IndirectY, 5},
	0x12: {"ORA", ZeroPageIndirect, 5}, 0x13: {"NOP", Implied, 1},
	0x14: {"TRB", ZeroPage, 5}, 0x15: {"ORA", ZeroPageX, 4},
	0x16: {"ASL", ZeroPageX, 6}, 0x17: {"RMB1", ZeroPage, 5},
	0x18: {"CLC", Implied, 2}, 0x19: {"ORA", AbsoluteY, 4},
	0x1A: {"INA", Implied, 2}, 0x1B: {"NOP", Implied, 1},
	0x1C: {"TRB", Absolute, 6}, 0x1D: {"ORA", AbsoluteX, 4},
	0x1E: {"ASL", AbsoluteX, 7}, 0x1F: {"BBR1", ZeroPageRelative, 5},

	0x20: {"JSR", Absolute, 6}, 0x21: {"AND", IndirectX, 6},
	0x22: {"NOP", Immediate, 2}, 0x23: {"NOP", Implied, 1},
	0x24: {"BIT", ZeroPage, 3}, 0x25: {"AND", ZeroPage, 3},
	0x26: {"ROL", ZeroPage, 5}, 0x27: {"RMB2", ZeroPage, 5},
	0x28: {"PLP", Implied, 4}, 0x29: {"AND", Immediate, 2},
	0x2A: {"ROL", Accumulator, 2}, 0x2B: {"NOP", Implied, 1},
	0x2C: {"BIT", Absolute, 4}, 0x2D: {"AND", Absolute, 4},
	0x2E: {"ROL", Absolute, 6}, 0x2F: {"BBR2", ZeroPageRelative, 5},

	0x30: {"BMI", Relative, 2}, 0x31: {"AND", IndirectY, 5},
	0x32: {"AND", ZeroPageIndirect, 5}, 0x33: {"NOP", Implied, 1},
	0x34: {"BIT", ZeroPageX, 4}, 0x35: {"AND", ZeroPageX, 4},
	0x36: {"ROL", ZeroPageX, 6}, 0x37: {"RMB3", ZeroPage, 5},
	0x38: {"SEC", Implied, 2}, 0x39: {"AND", AbsoluteY, 4},
	0x3A: {"DEA", Implied, 2}, 0x3B: {"NOP", Implied, 1},
	0x3C: {"BIT", AbsoluteX, 4}, 0x3D: {"AND", AbsoluteX, 4},
	0x3E: {"ROL", AbsoluteX, 7}, 0x3F: {"BBR3", ZeroPageRelative, 5},

	0x40: {"RTI", Implied, 6}, 0x41: {"EOR", IndirectX, 6},
	0x42: {"NOP", Immediate, 2}, 0x43: {"NOP", Implied, 1},
	0x44: {"NOP", ZeroPage, 2}, 0x45: {"EOR", ZeroPage, 3},
	0x46: {"LSR", ZeroPage, 5}, 0x47: {"RMB4", ZeroPage, 5},
	0x48: {"PHA", Implied, 3}, 0x49: {"EOR", Immediate, 2},
	0x4A: {"LSR", Accumulator, 2}, 0x4B: {"NOP", Implied, 1},
	0x4C: {"JMP", Absolute, 3}, 0x4D: {"EOR", Absolute, 4},
	0x4E: {"LSR", Absolute, 6}, 0x4F: {"BBR4", ZeroPageRelative, 5},

	0x50: {"BVC", Relative, 2}, 0x51: {"EOR", IndirectY, 5},
	0x52: {"EOR", ZeroPageIndirect, 5}, 0x53: {"NOP", Implied, 1},
	0x54: {"NOP", ZeroPageX, 2}, 0x55: {"EOR", ZeroPageX, 4},
	0x56: {"LSR", ZeroPageX, 6}, 0x57: {"RMB5", ZeroPage, 5},
	0x58: {"CLI", Implied, 2}, 0x59: {"EOR", AbsoluteY, 4},
	0x5A: {"PHY", Implied, 3}, 0x5B: {"NOP", Implied, 1},
	0x5C: {"NOP", Absolute, 3}, 0x5D: {"EOR", AbsoluteX, 4},
	0x5E: {"LSR", AbsoluteX, 7}, 0x5F: {"BBR5", ZeroPageRelative, 5},

	0x60: {"RTS", Implied, 6}, 0x61: {"ADC", IndirectX, 6},
	0x62: {"NOP", Immediate, 2}, 0x63: {"NOP", Implied, 1},
	0x64: {"STZ", ZeroPage, 3}, 0x65: {"ADC", ZeroPage, 3},
	0x66: {"ROR", ZeroPage, 5}, 0x67: {"RMB6", ZeroPage, 5},
	0x68: {"PLA", Implied, 4}, 0x69: {"ADC", Immediate, 2},
	0x6A: {"ROR", Accumulator, 2}, 0x6B: {"NOP", Implied, 1},
	0x6C: {"JMP", Indirect, 5}, 0x6D: {"ADC", Absolute, 4},
	0x6E: {"ROR", Absolute, 6}, 0x6F: {"BBR6", ZeroPageRelative, 5},

	0x70: {"BVS", Relative, 2}, 0x71: {"ADC", IndirectY, 5},
	0x72: {"ADC", ZeroPageIndirect, 5}, 0x73: {"NOP", Implied, 1},
	0x74: {"STZ", ZeroPageX, 4}, 0x75: {"ADC", ZeroPageX, 4},
	0x76: {"ROR", ZeroPageX, 6}, 0x77: {"RMB7", ZeroPage, 5},
	0x78: {"SEI", Implied, 2}, 0x79: {"ADC", AbsoluteY, 4},
	0x7A: {"PLY", Implied, 4}, 0x7B: {"NOP", Implied, 1},
	0x7C: {"JMP", IndirectAbsoluteX, 6}, 0x7D: {"ADC", AbsoluteX, 4},
	0x7E: {"ROR", AbsoluteX, 7}, 0x7F: {"BBR7", ZeroPageRelative, 5},

	0x80: {"BRA", Relative, 3}, 0x81: {"STA", IndirectX, 6},
	0x82: {"NOP", Immediate, 2}, 0x83: {"NOP", Implied, 1},
	0x84: {"STY", ZeroPage, 3}, 0x85: {"STA", ZeroPage, 3},
	0x86: {"STX", ZeroPage, 3}, 0x87: {"SMB0", ZeroPage, 5},
	0x88: {"DEY", Implied, 2}, 0x89: {"BIT", Immediate, 2},
	0x8A: {"TXA", Implied, 2}, 0x8B: {"NOP", Implied, 1},
	0x8C: {"STY", Absolute, 4}, 0x8D: {"STA", Absolute, 4},
	0x8E: {"STX", Absolute, 4}, 0x8F: {"BBS0", ZeroPageRelative, 5},

	0x90: {"BCC", Relative, 2}, 0x91: {"STA", IndirectY, 6},
	0x92: {"STA", ZeroPageIndirect, 5}, 0x93: {"NOP", Implied, 1},
	0x94: {"STY", ZeroPageX, 4}, 0x95: {"STA", ZeroPageX, 4},
	0x96: {"STX", ZeroPageY, 4}, 0x97: {"SMB1", ZeroPage, 5},
	0x98: {"TYA", Implied, 2}, 0x99: {"STA", AbsoluteY, 5},
	0x9A: {"TXS", Implied, 2}, 0x9B: {"NOP", Implied, 1},
	0x9C: {"STZ", Absolute, 4}, 0x9D: {"STA", AbsoluteX, 5},
	0x9E: {"STZ", AbsoluteX, 5}, 0x9F: {"BBS1", ZeroPageRelative, 5},

	0xA0: {"LDY", Immediate, 2}, 0xA1: {"LDA", IndirectX, 6},
	0xA2: {"LDX", Immediate, 2}, 0xA3: {"NOP", Implied, 1},
	0xA4: {"LDY", ZeroPage, 3}, 0xA5: {"LDA", ZeroPage, 3},
	0xA6: {"LDX", ZeroPage, 3}, 0xA7: {"SMB2", ZeroPage, 5},
	0xA8: {"TAY", Implied, 2}, 0xA9: {"LDA", Immediate, 2},
	0xAA: {"TAX", Implied, 2}, 0xAB: {"NOP", Implied, 1},
	0xAC: {"LDY", Absolute, 4}, 0xAD: {"LDA", Absolute, 4},
	0xAE: {"LDX", Absolute, 4}, 0xAF: {"BBS2", ZeroPageRelative, 5},

	0xB0: {"BCS", Relative, 2}, 0xB1: {"LDA", IndirectY, 5},
	0xB2: {"LDA", ZeroPageIndirect, 5}, 0xB3: {"NOP", Implied, 1},
	0xB4: {"LDY", ZeroPageX, 4}, 0xB5: {"LDA", ZeroPageX, 4},
	0xB6: {"LDX", ZeroPageY, 4}, 0xB7: {"SMB3", ZeroPage, 5},
	0xB8: {"CLV", Implied, 2}, 0xB9: {"LDA", AbsoluteY, 4},
	0xBA: {"TSX", Implied, 2}, 0xBB: {"NOP", Implied, 1},
	0xBC: {"LDY", AbsoluteX, 4}, 0xBD: {"LDA", AbsoluteX, 4},
	0xBE: {"LDX", AbsoluteY, 4}, 0xBF: {"BBS3", ZeroPageRelative, 5},

	0xC0: {"CPY", Immediate, 2}, 0xC1: {"CMP", IndirectX, 6},
	0xC2: {"NOP", Immediate, 2}, 0xC3: {"NOP", Implied, 1},
	0xC4: {"CPY", ZeroPage, 3}, 0xC5: {"CMP", ZeroPage, 3},
	0xC6: {"DEC", ZeroPage, 5}, 0xC7: {"SMB4", ZeroPage, 5},
	0xC8: {"INY", Implied, 2}, 0xC9: {"CMP", Immediate, 2},
	0xCA: {"DEX", Implied, 2}, 0xCB: {"WAI", Implied, 3},
	0xCC: {"CPY", Absolute, 4}, 0xCD: {"CMP", Absolute, 4},
	0xCE: {"DEC", Absolute, 6}, 0xCF: {"BBS4", ZeroPageRelative, 5},

	0xD0: {"BNE", Relative, 2}, 0xD1: {"CMP", IndirectY, 5},
	0xD2: {"CMP", ZeroPageIndirect, 5}, 0xD3: {"NOP", Implied, 1},
	0xD4: {"NOP", ZeroPageX, 2}, 0xD5: {"CMP", ZeroPageX, 4},
	0xD6: {"DEC", ZeroPageX, 6}, 0xD7: {"SMB5", ZeroPage, 5},
	0xD8: {"CLD", Implied, 2}, 0xD9: {"CMP", AbsoluteY, 4},
	0xDA: {"PHX", Implied, 3}, 0xDB: {"STP", Implied, 3},
	0xDC: {"NOP", AbsoluteX, 3}, 0xDD: {"CMP", AbsoluteX, 4},
	0xDE: {"DEC", AbsoluteX, 7}, 0xDF: {"BBS5", ZeroPageRelative, 5},

	0xE0: {"CPX", Immediate, 2}, 0xE1: {"SBC", IndirectX, 6},
	0xE2: {"NOP", Immediate, 2}, 0xE3: {"NOP", Implied, 1},
	0xE4: {"CPX", ZeroPage, 3}, 0xE5: {"SBC", ZeroPage, 3},
	0xE6: {"INC", ZeroPage, 5}, 0xE7: {"SMB6", ZeroPage, 5},
	0xE8: {"INX", Implied, 2}, 0xE9: {"SBC", Immediate, 2},
	0xEA: {"NOP", Implied, 2}, 0xEB: {"NOP", Implied, 1},
	0xEC: {"CPX", Absolute, 4}, 0xED: {"SBC", Absolute, 4},
	0xEE: {"INC", Absolute, 6}, 0xEF: {"BBS6", ZeroPageRelative, 5},

	0xF0: {"BEQ", Relative, 2}, 0xF1: {"SBC", IndirectY, 5},
	0xF2: {"SBC", ZeroPageIndirect, 5}, 0xF3: {"NOP", Implied, 1},
	0xF4: {"NOP", ZeroPageX, 2}, 0xF5: {"SBC", ZeroPageX, 4},
	0xF6: {"INC", ZeroPageX, 6}, 0xF7: {"SMB7", ZeroPage, 5},
	0xF8: {"SED", Implied, 2}, 0xF9: {"SBC", AbsoluteY, 4},
	0xFA: {"PLX", Implied, 4}, 0xFB: {"NOP", Implied, 1},
	0xFC: {"NOP", AbsoluteX, 3}, 0xFD: {"SBC", AbsoluteX, 4},
	0xFE: {"INC", AbsoluteX, 7}, 0xFF: {"BBS7", ZeroPageRelative, 5},
}
