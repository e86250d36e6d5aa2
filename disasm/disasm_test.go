package disasm

import (
	"strings"
	"testing"
)

type fakeBus struct {
	mem [65536]uint8
}

func (f *fakeBus) ReadByte(addr uint16) uint8 { return f.mem[addr] }

func TestDisassembleImplied(t *testing.T) {
	b := &fakeBus{}
	b.mem[0x0300] = 0xEA // NOP (documented, implied)
	line := Disassemble(b, 0x0300, nil)
	if !strings.Contains(line, "NOP") || !strings.Contains(line, "$0300") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestDisassembleImmediate(t *testing.T) {
	b := &fakeBus{}
	b.mem[0x0300] = 0xA9 // LDA #imm
	b.mem[0x0301] = 0x42
	line := Disassemble(b, 0x0300, nil)
	if !strings.Contains(line, "LDA #$42") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestDisassembleAbsoluteWithSymbol(t *testing.T) {
	b := &fakeBus{}
	b.mem[0x0300] = 0x4C // JMP abs
	b.mem[0x0301] = 0x00
	b.mem[0x0302] = 0xC0

	syms := NewSymbolTable()
	syms.Append(0xC000, "KBD")
	line := Disassemble(b, 0x0300, syms)
	if !strings.Contains(line, "JMP $C000") || !strings.Contains(line, "; KBD") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func TestSymbolTableLaterEntryOverridesEarlier(t *testing.T) {
	syms := NewSymbolTable()
	syms.Append(0x1000, "FIRST")
	syms.Append(0x1000, "SECOND")

	name, ok := syms.Lookup(0x1000)
	if !ok || name != "SECOND" {
		t.Fatalf("expected later entry to override earlier one, got %q", name)
	}
}

func TestZeroPageRelativeOperandIsThreeBytes(t *testing.T) {
	b := &fakeBus{}
	b.mem[0x0300] = 0x0F // BBR0 zp,rel
	b.mem[0x0301] = 0x10 // zero-page addr
	b.mem[0x0302] = 0x05 // forward displacement

	op := Table[0x0F]
	if op.Bytes() != 3 {
		t.Fatalf("BBR0 expected 3 bytes, got %d", op.Bytes())
	}
	line := Disassemble(b, 0x0300, nil)
	if !strings.Contains(line, "BBR0") || !strings.Contains(line, "$10,$0308") {
		t.Fatalf("unexpected line: %q", line)
	}
}

func Test5CIsThreeByteNOP(t *testing.T) {
	op := Table[0x5C]
	if op.Mnemonic != "NOP" || op.Bytes() != 3 {
		t.Fatalf("expected $5C to be a 3-byte NOP, got %+v (bytes=%d)", op, op.Bytes())
	}
}

func TestEveryOpcodeHasAMnemonic(t *testing.T) {
	for i, op := range Table {
		if op.Mnemonic == "" {
			t.Fatalf("opcode $%02X has no mnemonic", i)
		}
	}
}
