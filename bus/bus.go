// Package bus implements the Apple IIc core's top-level address decoder,
// composing the IOU, MMU and interrupt controller for the AppleIIc
// system type, or a flat 64 KiB RAM for the Generic test target.
package bus

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/alivesay/iic-core/interrupts"
	"github.com/alivesay/iic-core/iou"
	"github.com/alivesay/iic-core/memory"
	"github.com/alivesay/iic-core/mmu"
)

// SystemType selects which address-decode regime the Bus implements.
type SystemType int

const (
	// Generic is a flat 64 KiB RAM target used for CPU conformance
	// testing, with a $BFFC debug IRQ/NMI feedback register.
	Generic SystemType = iota
	// AppleIIc routes $C000-$C0FF to the IOU and everything else to
	// the MMU.
	AppleIIc
)

func (t SystemType) String() string {
	if t == AppleIIc {
		return "AppleIIc"
	}
	return "Generic"
}

const genericRAMSize = 64 * 1024

// Bus owns the IOU, MMU and interrupt controller, and (for Generic) a
// flat RAM bank.
type Bus struct {
	SystemType SystemType
	IOU        *iou.IOU
	MMU        *mmu.MMU
	Interrupts *interrupts.Controller

	ram   *memory.Bank
	iPort uint8
}

// New constructs a Bus for the given system type.
func New(t SystemType) *Bus {
	b := &Bus{
		SystemType: t,
		IOU:        iou.New(),
		MMU:        mmu.New(),
		Interrupts: &interrupts.Controller{},
	}
	if t == Generic {
		b.ram = memory.New(genericRAMSize, "BUSRAM")
	}
	return b
}

// LoadROM installs a ROM image. On AppleIIc it is split into two 16 KiB
// banks by the MMU; on Generic it is loaded directly into flat RAM.
func (b *Bus) LoadROM(data []uint8) {
	if b.SystemType == AppleIIc {
		b.MMU.LoadROM(data)
		return
	}
	b.ram.LoadBytes(0, data)
}

// ReadByte dispatches a read to the IOU, MMU, or flat RAM depending on
// system type and address.
func (b *Bus) ReadByte(addr uint16) uint8 {
	if b.SystemType == AppleIIc {
		if addr >= 0xC000 && addr <= 0xC0FF {
			return b.IOU.SSRead(addr)
		}
		return b.MMU.ReadByte(b.IOU.MemState(), b.IOU.Is80Store(), b.IOU.VideoMode()&iou.PAGE2 != 0, addr)
	}

	if addr == 0xBFFC {
		return b.iPort
	}
	return b.ram.ReadByte(addr)
}

// ReadWord reads a little-endian 16-bit value, wrapping the high-byte
// address across the full 64 KiB space (not just within a page).
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return hi<<8 | lo
}

// WriteByte dispatches a write to the IOU, MMU, or flat RAM. On Generic,
// $BFFC is the debug IRQ/NMI feedback register: bit 0 requests IRQ, bit
// 1 requests NMI.
func (b *Bus) WriteByte(addr uint16, val uint8) {
	if b.SystemType == AppleIIc {
		if addr >= 0xC000 && addr <= 0xC0FF {
			b.IOU.SSWrite(addr)
			return
		}
		b.MMU.WriteByte(b.IOU.MemState(), b.IOU.Is80Store(), b.IOU.VideoMode()&iou.PAGE2 != 0, addr, val)
		return
	}

	if addr == 0xBFFC {
		b.iPort = val
		if val&0x01 != 0 {
			b.Interrupts.RequestIRQ()
		}
		if val&0x02 != 0 {
			b.Interrupts.RequestNMI()
		}
		return
	}
	b.ram.WriteByte(addr, val)
}

// WriteBytes stores bytes starting at start, wrapping across the 64 KiB
// address space.
func (b *Bus) WriteBytes(start uint16, data []uint8) {
	for i, v := range data {
		b.WriteByte(start+uint16(i), v)
	}
}

// Run drives tick in a loop until it reports completion (e.g. the CPU
// halted via STP) or ctx is canceled, whichever comes first. It pairs a
// drive goroutine with a watchdog goroutine via errgroup, mirroring the
// host-loop/core-loop split a real driver (windowing event loop plus
// core stepping) would need. It returns nil when tick reports completion
// and ctx's error when ctx is canceled first.
func (b *Bus) Run(ctx context.Context, tick func() (halted bool)) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if tick() {
				log.Printf("bus: core halted, stopping drive loop")
				return nil
			}
		}
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case <-done:
			return nil
		}
	})

	return g.Wait()
}
