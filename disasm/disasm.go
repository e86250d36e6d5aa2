package disasm

import (
	"fmt"
	"strings"
)

// byteReader is the minimal bus surface the disassembler needs: a single
// random-access byte read. bus.Bus satisfies this.
type byteReader interface {
	ReadByte(addr uint16) uint8
}

// Disassemble renders one instruction at addr in the
// "$AAAA  <hex bytes>  -  MNE operand" format, followed by a
// "; symbol" suffix for any symbol registered at addr or referenced by
// the operand.
func Disassemble(bus byteReader, addr uint16, symbols *SymbolTable) string {
	op := bus.ReadByte(addr)
	entry := Table[op]
	n := entry.Bytes()

	raw := make([]uint8, n)
	raw[0] = op
	for i := 1; i < n; i++ {
		raw[i] = bus.ReadByte(addr + uint16(i))
	}

	hexBytes := make([]string, n)
	for i, b := range raw {
		hexBytes[i] = fmt.Sprintf("%02X", b)
	}

	operand, refAddr, hasRef := formatOperand(entry.Mode, addr, raw)

	line := fmt.Sprintf("$%04X  %-8s  -  %s", addr, strings.Join(hexBytes, " "), entry.Mnemonic)
	if operand != "" {
		line += " " + operand
	}

	if symbols != nil {
		var names []string
		if s, ok := symbols.Lookup(addr); ok {
			names = append(names, s)
		}
		if hasRef {
			if s, ok := symbols.Lookup(refAddr); ok {
				names = append(names, s)
			}
		}
		if len(names) > 0 {
			line += "  ; " + strings.Join(names, ", ")
		}
	}

	return line
}

// formatOperand renders the operand text for the given mode, and, when
// the operand names a concrete target address (zero-page, absolute, or a
// branch target resolved from a relative displacement), returns that
// address for symbol lookup. Indexed and indirect operands return none.
func formatOperand(mode Mode, pc uint16, raw []uint8) (text string, refAddr uint16, hasRef bool) {
	switch mode {
	case Implied:
		return "", 0, false
	case Accumulator:
		return "A", 0, false
	case Immediate:
		return fmt.Sprintf("#$%02X", raw[1]), 0, false
	case ZeroPage:
		a := uint16(raw[1])
		return fmt.Sprintf("$%02X", raw[1]), a, true
	case ZeroPageX:
		return fmt.Sprintf("$%02X,X", raw[1]), 0, false
	case ZeroPageY:
		return fmt.Sprintf("$%02X,Y", raw[1]), 0, false
	case ZeroPageIndirect:
		return fmt.Sprintf("($%02X)", raw[1]), 0, false
	case IndirectX:
		return fmt.Sprintf("($%02X,X)", raw[1]), 0, false
	case IndirectY:
		return fmt.Sprintf("($%02X),Y", raw[1]), 0, false
	case Absolute:
		a := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("$%04X", a), a, true
	case AbsoluteX:
		a := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("$%04X,X", a), 0, false
	case AbsoluteY:
		a := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("$%04X,Y", a), 0, false
	case Indirect:
		a := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("($%04X)", a), 0, false
	case IndirectAbsoluteX:
		a := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("($%04X,X)", a), 0, false
	case Relative:
		disp := int8(raw[1])
		target := pc + uint16(len(raw)) + uint16(int16(disp))
		return fmt.Sprintf("$%04X", target), target, true
	case ZeroPageRelative:
		disp := int8(raw[2])
		target := pc + uint16(len(raw)) + uint16(int16(disp))
		return fmt.Sprintf("$%02X,$%04X", raw[1], target), uint16(raw[1]), true
	default:
		return "", 0, false
	}
}
