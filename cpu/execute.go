package cpu

import (
	"fmt"

	"github.com/alivesay/iic-core/disasm"
)

// operandAddr resolves the effective address for every addressing mode
// that names one. Accumulator, Implied and ZeroPageRelative are handled
// by their instructions directly and never reach here.
//
// Every zero-page-indirect pointer fetch ($zp,X), ($zp),Y and CMOS ($zp)
// wraps consistently within page zero via readZPWord. The reference
// implementation is inconsistent here: its fetch_indirect_y helper wraps
// the pointer's high-byte fetch, fetch_indirect_x does not, and its CMOS
// ($zp) opcodes ($B2/$92/$D2/$F2) call bus.read_word directly and do not. SPEC_FULL.md §4.7 resolves this in favor of the
// uniform, always-wrapping behavior.
//
// This helper also does not gate ZeroPageIndirect by CpuType: the
// reference implementation only guards LDA($zp)/STA($zp) ($B2/$92)
// behind cpu_type != NMOS6502, while leaving CMP/AND/EOR/ORA/ADC/SBC's
// $zp-indirect forms ($D2/$32/$52/$12/$72/$F2) ungated — an
// inconsistency in the reference itself. SPEC_FULL.md's Open Questions
// section leaves this unresolved rather than picking a side.
func (c *CPU) operandAddr(mode disasm.Mode) uint16 {
	switch mode {
	case disasm.Immediate:
		return c.PC
	case disasm.ZeroPage:
		return uint16(c.Bus.ReadByte(c.PC))
	case disasm.ZeroPageX:
		return uint16(c.Bus.ReadByte(c.PC) + c.X)
	case disasm.ZeroPageY:
		return uint16(c.Bus.ReadByte(c.PC) + c.Y)
	case disasm.ZeroPageIndirect:
		return c.readZPWord(uint16(c.Bus.ReadByte(c.PC)))
	case disasm.Absolute:
		return c.Bus.ReadWord(c.PC)
	case disasm.AbsoluteX:
		return c.Bus.ReadWord(c.PC) + uint16(c.X)
	case disasm.AbsoluteY:
		return c.Bus.ReadWord(c.PC) + uint16(c.Y)
	case disasm.Indirect:
		return c.readIndirectPtr(c.Bus.ReadWord(c.PC))
	case disasm.IndirectAbsoluteX:
		ptr := c.Bus.ReadWord(c.PC) + uint16(c.X)
		return c.Bus.ReadWord(ptr)
	case disasm.IndirectX:
		zp := uint16(c.Bus.ReadByte(c.PC) + c.X)
		return c.readZPWord(zp)
	case disasm.IndirectY:
		base := c.readZPWord(uint16(c.Bus.ReadByte(c.PC)))
		return base + uint16(c.Y)
	case disasm.Relative:
		disp := int8(c.Bus.ReadByte(c.PC))
		return c.PC + 1 + uint16(int16(disp))
	default:
		panic(fmt.Sprintf("cpu: addressing mode %d has no operand address", mode))
	}
}

// readZPWord reads a little-endian word from two consecutive zero-page
// cells, wrapping the high byte back to $00 rather than crossing into
// page one.
func (c *CPU) readZPWord(zp uint16) uint16 {
	lo := uint16(c.Bus.ReadByte(zp & 0xFF))
	hi := uint16(c.Bus.ReadByte((zp + 1) & 0xFF))
	return hi<<8 | lo
}

// readIndirectPtr resolves JMP ($abs). On NMOS6502 this reproduces the
// classic page-wrap bug: if the pointer's low byte is $FF, the high byte
// is fetched from the start of the SAME page rather than the next one.
// CMOS and later fix this.
func (c *CPU) readIndirectPtr(ptr uint16) uint16 {
	lo := uint16(c.Bus.ReadByte(ptr))
	var hiAddr uint16
	if c.CpuType == NMOS6502 {
		hiAddr = (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.Bus.ReadByte(hiAddr))
	return hi<<8 | lo
}

func (c *CPU) branchIf(cond bool) {
	target := c.operandAddr(disasm.Relative)
	c.PC++ // consume the displacement byte read by operandAddr
	if cond {
		c.PC = target
	}
}

// execute dispatches a single already-fetched opcode byte. c.PC points
// just past the opcode byte (i.e. at the first operand byte, if any).
func (c *CPU) execute(opcode uint8) {
	entry := disasm.Table[opcode]
	mode := entry.Mode

	switch entry.Mnemonic {
	case "BRK":
		c.execBRK()
	case "NOP":
		// Both the documented $EA and every illegal-opcode NOP slot:
		// the generic post-dispatch byte count in Step already skips
		// whatever operand bytes disasm.Table assigns this opcode.

	case "LDA":
		c.A = c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.A)
	case "LDX":
		c.X = c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.X)
	case "LDY":
		c.Y = c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.Y)
	case "STA":
		c.Bus.WriteByte(c.operandAddr(mode), c.A)
	case "STX":
		c.Bus.WriteByte(c.operandAddr(mode), c.X)
	case "STY":
		c.Bus.WriteByte(c.operandAddr(mode), c.Y)
	case "STZ":
		c.Bus.WriteByte(c.operandAddr(mode), 0x00)

	case "TAX":
		c.X = c.A
		c.setZN(c.X)
	case "TAY":
		c.Y = c.A
		c.setZN(c.Y)
	case "TXA":
		c.A = c.X
		c.setZN(c.A)
	case "TYA":
		c.A = c.Y
		c.setZN(c.A)
	case "TSX":
		c.X = c.SP
		c.setZN(c.X)
	case "TXS":
		c.SP = c.X

	case "PHA":
		c.pushStack(c.A)
	case "PHX":
		c.pushStack(c.X)
	case "PHY":
		c.pushStack(c.Y)
	case "PLA":
		c.A = c.popStack()
		c.setZN(c.A)
	case "PLX":
		c.X = c.popStack()
		if c.CpuType != NMOS6502 {
			c.setZN(c.X)
		}
	case "PLY":
		c.Y = c.popStack()
		if c.CpuType != NMOS6502 {
			c.setZN(c.Y)
		}
	case "PHP":
		c.pushStack(uint8(c.P | FlagUnused | FlagBreak))
	case "PLP":
		restored := Flags(c.popStack()) | FlagUnused
		restored &^= FlagBreak
		c.P = restored

	case "AND":
		c.A &= c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.A)
	case "ORA":
		c.A |= c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.A)
	case "EOR":
		c.A ^= c.Bus.ReadByte(c.operandAddr(mode))
		c.setZN(c.A)
	case "BIT":
		c.execBIT(mode)
	case "TSB":
		c.execTSB(mode)
	case "TRB":
		c.execTRB(mode)

	case "ADC":
		c.adc(c.Bus.ReadByte(c.operandAddr(mode)))
	case "SBC":
		c.sbc(c.Bus.ReadByte(c.operandAddr(mode)))
	case "CMP":
		c.compare(c.A, c.Bus.ReadByte(c.operandAddr(mode)))
	case "CPX":
		c.compare(c.X, c.Bus.ReadByte(c.operandAddr(mode)))
	case "CPY":
		c.compare(c.Y, c.Bus.ReadByte(c.operandAddr(mode)))

	case "INC":
		c.execIncDec(mode, 1)
	case "DEC":
		c.execIncDec(mode, ^uint8(0))
	case "INA":
		if c.CpuType != NMOS6502 {
			c.A++
			c.setZN(c.A)
		}
	case "DEA":
		if c.CpuType != NMOS6502 {
			c.A--
			c.setZN(c.A)
		}
	case "INX":
		c.X++
		c.setZN(c.X)
	case "DEX":
		c.X--
		c.setZN(c.X)
	case "INY":
		c.Y++
		c.setZN(c.Y)
	case "DEY":
		c.Y--
		c.setZN(c.Y)

	case "ASL":
		c.execShift(mode, c.asl)
	case "LSR":
		c.execShift(mode, c.lsr)
	case "ROL":
		c.execShift(mode, c.rol)
	case "ROR":
		c.execShift(mode, c.ror)

	case "JMP":
		c.PC = c.operandAddr(mode)
	case "JSR":
		target := c.operandAddr(mode)
		retAddr := c.PC + 1 // points at the last operand byte
		c.pushStack(uint8(retAddr >> 8))
		c.pushStack(uint8(retAddr & 0xFF))
		c.PC = target
	case "RTS":
		lo := uint16(c.popStack())
		hi := uint16(c.popStack())
		c.PC = (hi<<8 | lo) + 1
	case "RTI":
		restored := Flags(c.popStack()) | FlagUnused
		restored &^= FlagBreak
		c.P = restored
		lo := uint16(c.popStack())
		hi := uint16(c.popStack())
		c.PC = hi<<8 | lo

	case "BPL":
		c.branchIf(c.P&FlagNegative == 0)
	case "BMI":
		c.branchIf(c.P&FlagNegative != 0)
	case "BVC":
		c.branchIf(c.P&FlagOverflow == 0)
	case "BVS":
		c.branchIf(c.P&FlagOverflow != 0)
	case "BCC":
		c.branchIf(c.P&FlagCarry == 0)
	case "BCS":
		c.branchIf(c.P&FlagCarry != 0)
	case "BNE":
		c.branchIf(c.P&FlagZero == 0)
	case "BEQ":
		c.branchIf(c.P&FlagZero != 0)
	case "BRA":
		c.branchIf(true)

	case "CLC":
		c.setFlag(FlagCarry, false)
	case "SEC":
		c.setFlag(FlagCarry, true)
	case "CLD":
		c.setFlag(FlagDecimal, false)
	case "SED":
		c.setFlag(FlagDecimal, true)
	case "CLI":
		c.setFlag(FlagIRQDis, false)
	case "SEI":
		c.setFlag(FlagIRQDis, true)
	case "CLV":
		c.setFlag(FlagOverflow, false)

	case "WAI":
		if c.CpuType == WDC65C02S {
			c.Bus.Interrupts.EnterWait()
		}
	case "STP":
		if c.CpuType == WDC65C02S {
			c.Bus.Interrupts.EnterHalt()
		}

	default:
		c.execBitOp(opcode, entry.Mnemonic)
	}
}

// execBRK implements BRK as a synchronous single-step operation: push
// PC+1, push P with B and U set, set I (and clear D on CMOS/WDC), vector
// through $FFFE. The reference implementation instead defers BRK through
// the same pending-flag mechanism hardware NMI/IRQ use, serviced on the
// NEXT Step call; SPEC_FULL.md §4.7 adopts the synchronous form since
// nothing about BRK benefits from the extra indirection — it never
// arrives from outside the CPU.
func (c *CPU) execBRK() {
	pushPC := c.PC + 1
	c.pushStack(uint8(pushPC >> 8))
	c.pushStack(uint8(pushPC & 0xFF))

	pushedP := c.P | FlagUnused | FlagBreak
	c.pushStack(uint8(pushedP))

	c.P |= FlagIRQDis
	if c.CpuType != NMOS6502 {
		c.P &^= FlagDecimal
	}

	c.PC = c.Bus.ReadWord(0xFFFE)
}

func (c *CPU) execBIT(mode disasm.Mode) {
	value := c.Bus.ReadByte(c.operandAddr(mode))
	c.setFlag(FlagZero, c.A&value == 0)
	if mode != disasm.Immediate {
		c.setFlag(FlagNegative, value&0x80 != 0)
		c.setFlag(FlagOverflow, value&0x40 != 0)
	}
}

func (c *CPU) execTSB(mode disasm.Mode) {
	addr := c.operandAddr(mode)
	value := c.Bus.ReadByte(addr)
	c.setFlag(FlagZero, value&c.A == 0)
	c.Bus.WriteByte(addr, value|c.A)
}

func (c *CPU) execTRB(mode disasm.Mode) {
	addr := c.operandAddr(mode)
	value := c.Bus.ReadByte(addr)
	c.setFlag(FlagZero, value&c.A == 0)
	c.Bus.WriteByte(addr, value&^c.A)
}

func (c *CPU) execIncDec(mode disasm.Mode, delta uint8) {
	addr := c.operandAddr(mode)
	value := c.Bus.ReadByte(addr) + delta
	c.Bus.WriteByte(addr, value)
	c.setZN(value)
}

func (c *CPU) execShift(mode disasm.Mode, op func(uint8) uint8) {
	if mode == disasm.Accumulator {
		c.A = op(c.A)
		return
	}
	addr := c.operandAddr(mode)
	c.Bus.WriteByte(addr, op(c.Bus.ReadByte(addr)))
}

// execBitOp handles the WDC bit-manipulation/branch-on-bit family:
// RMBn/SMBn (clear/set bit n of a zero-page cell) and BBRn/BBSn (branch
// if bit n of a zero-page cell is clear/set). The bit number n is
// encoded in the opcode's high nibble for all four groups.
func (c *CPU) execBitOp(opcode uint8, mnemonic string) {
	bit := uint8(1) << ((opcode >> 4) & 0x07)
	zpAddr := uint16(c.Bus.ReadByte(c.PC))
	c.PC++

	switch {
	case len(mnemonic) >= 3 && mnemonic[:3] == "RMB":
		value := c.Bus.ReadByte(zpAddr)
		c.Bus.WriteByte(zpAddr, value&^bit)
	case len(mnemonic) >= 3 && mnemonic[:3] == "SMB":
		value := c.Bus.ReadByte(zpAddr)
		c.Bus.WriteByte(zpAddr, value|bit)
	case len(mnemonic) >= 3 && mnemonic[:3] == "BBR":
		value := c.Bus.ReadByte(zpAddr)
		disp := int8(c.Bus.ReadByte(c.PC))
		c.PC++
		if value&bit == 0 {
			c.PC += uint16(int16(disp))
		}
	case len(mnemonic) >= 3 && mnemonic[:3] == "BBS":
		value := c.Bus.ReadByte(zpAddr)
		disp := int8(c.Bus.ReadByte(c.PC))
		c.PC++
		if value&bit != 0 {
			c.PC += uint16(int16(disp))
		}
	default:
		panic(fmt.Sprintf("cpu: unimplemented opcode $%02X (%s)", opcode, mnemonic))
	}
}

func (c *CPU) compare(reg, value uint8) {
	result := reg - value
	c.setFlag(FlagCarry, reg >= value)
	c.setFlag(FlagZero, result == 0)
	c.setFlag(FlagNegative, result&0x80 != 0)
}

func (c *CPU) asl(v uint8) uint8 {
	c.setFlag(FlagCarry, v&0x80 != 0)
	r := v << 1
	c.setZN(r)
	return r
}

func (c *CPU) lsr(v uint8) uint8 {
	c.setFlag(FlagCarry, v&0x01 != 0)
	r := v >> 1
	c.setZN(r)
	return r
}

func (c *CPU) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}

func (c *CPU) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	r := (v >> 1) | carryIn
	c.setZN(r)
	return r
}

// adc implements ADC including decimal (BCD) mode, grounded byte-for-byte
// on original_source/src/cpu.rs's adc: binary add first, then a
// nibble-corrected decimal result and carry when DECIMAL is set. The
// overflow flag is always computed from the binary result, matching the
// reference implementation and real 6502/65C02 behavior.
func (c *CPU) adc(value uint8) {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	aBefore := c.A
	sum16 := uint16(aBefore) + uint16(value) + uint16(carryIn)
	aAfter := uint8(sum16 & 0xFF)
	binaryResult := aAfter
	carryOut := sum16 > 0xFF

	if c.P&FlagDecimal != 0 {
		lowNibble := (aBefore & 0x0F) + (value & 0x0F) + carryIn
		highNibble := (aBefore >> 4) + (value >> 4)

		if lowNibble > 9 {
			lowNibble -= 10
			highNibble++
		}
		if highNibble > 9 {
			highNibble -= 10
			carryOut = true
		}
		aAfter = (highNibble << 4) | (lowNibble & 0x0F)
	}

	c.A = aAfter
	c.setFlag(FlagCarry, carryOut)

	overflow := (aBefore^value)&0x80 == 0 && (aBefore^binaryResult)&0x80 != 0
	c.setFlag(FlagOverflow, overflow)
	c.setZN(c.A)
}

// sbc mirrors adc's decimal handling, grounded on cpu.rs's sbc.
func (c *CPU) sbc(value uint8) {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	aBefore := c.A
	valueComplement := ^value

	binaryResult := uint16(aBefore) + uint16(valueComplement) + uint16(carryIn)
	result := uint8(binaryResult & 0xFF)
	didBorrow := binaryResult < 0x100

	if c.P&FlagDecimal != 0 {
		lowNibble := (aBefore & 0x0F) - (value & 0x0F) - (1 - carryIn)
		highNibble := (aBefore >> 4) - (value >> 4)

		if lowNibble&0x10 != 0 {
			lowNibble = (lowNibble - 6) & 0x0F
			highNibble--
		}
		if highNibble > 9 {
			highNibble = (highNibble - 6) & 0x0F
			didBorrow = true
		}
		result = (highNibble << 4) | (lowNibble & 0x0F)
	}

	c.A = result
	c.setFlag(FlagCarry, !didBorrow)

	overflow := (aBefore^value)&0x80 != 0 && (aBefore^uint8(binaryResult))&0x80 != 0
	c.setFlag(FlagOverflow, overflow)
	c.setZN(c.A)
}
