package memory

import (
	"strings"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := New(16, "TEST")
	b.WriteByte(4, 0x42)
	if got := b.ReadByte(4); got != 0x42 {
		t.Fatalf("expected $42, got %02X", got)
	}
}

func TestOutOfRangeReadReturnsZero(t *testing.T) {
	b := New(16, "TEST")
	if got := b.ReadByte(100); got != 0 {
		t.Fatalf("expected 0 for out-of-range read, got %02X", got)
	}
}

func TestOutOfRangeWriteIsDroppedNotFatal(t *testing.T) {
	b := New(4, "TEST")
	b.WriteByte(100, 0xFF) // must not panic
}

func TestNewFilledSetsInitialValue(t *testing.T) {
	b := NewFilled(8, "TEST", 0xFF)
	for i := 0; i < 8; i++ {
		if got := b.ReadByte(uint16(i)); got != 0xFF {
			t.Fatalf("expected all bytes $FF, got %02X at %d", got, i)
		}
	}
}

func TestLoadBytesTruncatesSilentlyOnOverflow(t *testing.T) {
	b := New(4, "TEST")
	b.LoadBytes(2, []uint8{0x11, 0x22, 0x33, 0x44})
	if got := b.ReadByte(2); got != 0x11 {
		t.Fatalf("expected $11 at offset 2, got %02X", got)
	}
	if got := b.ReadByte(3); got != 0x22 {
		t.Fatalf("expected $22 at offset 3, got %02X", got)
	}
}

func TestIDReturnsBankName(t *testing.T) {
	b := New(1, "MYBANK")
	if b.ID() != "MYBANK" {
		t.Fatalf("expected ID MYBANK, got %s", b.ID())
	}
}

func TestDumpIncludesAddressHeader(t *testing.T) {
	b := New(16, "TEST")
	dump := b.Dump(0, 16)
	if len(dump) == 0 {
		t.Fatalf("expected non-empty dump")
	}
	if !strings.HasPrefix(dump, "TEST: 0000 - 000F\n") {
		t.Fatalf("expected dump to start with the address header, got %q", dump)
	}
}
