package bus

import (
	"context"
	"testing"
	"time"
)

func TestGenericRAMReadWriteRoundTrip(t *testing.T) {
	b := New(Generic)
	b.WriteByte(0x1000, 0x42)
	if got := b.ReadByte(0x1000); got != 0x42 {
		t.Fatalf("expected $42, got %02X", got)
	}
}

func TestGenericDebugPortRequestsIRQAndNMI(t *testing.T) {
	b := New(Generic)
	b.WriteByte(0xBFFC, 0x01)
	if !b.Interrupts.IRQPending() {
		t.Fatalf("expected bit 0 of $BFFC to request IRQ")
	}
	b.WriteByte(0xBFFC, 0x02)
	if !b.Interrupts.NMIPending() {
		t.Fatalf("expected bit 1 of $BFFC to request NMI")
	}
}

func TestGenericDebugPortReadsBack(t *testing.T) {
	b := New(Generic)
	b.WriteByte(0xBFFC, 0x03)
	if got := b.ReadByte(0xBFFC); got != 0x03 {
		t.Fatalf("expected $BFFC to read back last written value, got %02X", got)
	}
}

func TestReadWordIsLittleEndian(t *testing.T) {
	b := New(Generic)
	b.WriteByte(0x2000, 0x34)
	b.WriteByte(0x2001, 0x12)
	if got := b.ReadWord(0x2000); got != 0x1234 {
		t.Fatalf("expected $1234, got $%04X", got)
	}
}

func TestAppleIIcRoutesC000RangeToIOU(t *testing.T) {
	b := New(AppleIIc)
	b.WriteByte(0xC001, 0) // 80STORE on
	if !b.IOU.Is80Store() {
		t.Fatalf("expected $C001 write to reach the IOU")
	}
}

func TestAppleIIcRoutesElsewhereToMMU(t *testing.T) {
	b := New(AppleIIc)
	b.WriteByte(0x1000, 0x55)
	if got := b.ReadByte(0x1000); got != 0x55 {
		t.Fatalf("expected $55 through the MMU, got %02X", got)
	}
}

func TestWriteBytesWrapsAcrossAddressSpace(t *testing.T) {
	b := New(Generic)
	b.WriteBytes(0xFFFE, []uint8{0xAA, 0xBB, 0xCC})
	if got := b.ReadByte(0xFFFE); got != 0xAA {
		t.Fatalf("expected $AA at $FFFE, got %02X", got)
	}
	if got := b.ReadByte(0xFFFF); got != 0xBB {
		t.Fatalf("expected $BB at $FFFF, got %02X", got)
	}
	if got := b.ReadByte(0x0000); got != 0xCC {
		t.Fatalf("expected wraparound $CC at $0000, got %02X", got)
	}
}

func TestRunStopsWhenTickReportsHalted(t *testing.T) {
	b := New(Generic)
	calls := 0
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := b.Run(ctx, func() bool {
		calls++
		return calls >= 3
	})
	if err != nil {
		t.Fatalf("expected clean stop, got error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 ticks before halt, got %d", calls)
	}
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	b := New(Generic)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Run(ctx, func() bool { return false })
	if err == nil {
		t.Fatalf("expected context-canceled error")
	}
}
