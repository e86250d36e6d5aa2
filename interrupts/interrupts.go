// Package interrupts implements the Apple IIc core's interrupt
// controller: the pending NMI/IRQ/BRK/RST flags and the WAI/STP
// wait/halt modes, with priority arbitration between them.
package interrupts

// Kind identifies which interrupt source a Poll arbitrated in favor of.
type Kind int

const (
	// None is returned when no pending source is eligible to run.
	None Kind = iota
	NMI
	RST
	BRK
	IRQ
)

func (k Kind) String() string {
	switch k {
	case NMI:
		return "NMI"
	case RST:
		return "RST"
	case BRK:
		return "BRK"
	case IRQ:
		return "IRQ"
	default:
		return "NONE"
	}
}

// Controller holds the four independent pending flags and the two mode
// flags representing the WDC WAI/STP states.
type Controller struct {
	nmi, irq, brk, reset bool
	waiting, halted      bool
}

// RequestNMI marks an NMI pending and leaves the WAI state.
func (c *Controller) RequestNMI() {
	c.nmi = true
	c.waiting = false
}

// RequestIRQ marks an IRQ pending and leaves the WAI state.
func (c *Controller) RequestIRQ() {
	c.irq = true
	c.waiting = false
}

// RequestBRK marks a BRK pending. Unlike NMI/IRQ it does not leave the
// WAI state. The CPU's BRK opcode does not use this flag (it pushes and
// vectors within the same step), and CPU.handleInterrupt discards a BRK
// that Poll returns.
func (c *Controller) RequestBRK() { c.brk = true }

// RequestReset marks a power-on/warm reset pending.
func (c *Controller) RequestReset() { c.reset = true }

// ClearAll clears every pending flag and both modes.
func (c *Controller) ClearAll() {
	c.nmi, c.irq, c.brk, c.reset = false, false, false, false
	c.waiting, c.halted = false, false
}

func (c *Controller) EnterWait() { c.waiting = true }
func (c *Controller) LeaveWait() { c.waiting = false }
func (c *Controller) EnterHalt() { c.halted = true }
func (c *Controller) LeaveHalt() { c.halted = false }

func (c *Controller) Waiting() bool { return c.waiting }
func (c *Controller) Halted() bool  { return c.halted }

// NMIPending, IRQPending report raw pending state without arbitrating or
// clearing — used by the CPU's WAI-wakeup check.
func (c *Controller) NMIPending() bool { return c.nmi }
func (c *Controller) IRQPending() bool { return c.irq }

// ClearIRQ lets the CPU clear the level-sensitive IRQ line itself once
// it has serviced the interrupt (spec's adopted behavior: the CPU, not
// the device, deasserts IRQ on successful vectoring).
func (c *Controller) ClearIRQ() { c.irq = false }

// ClearNMI lets the CPU clear NMI once serviced.
func (c *Controller) ClearNMI() { c.nmi = false }

// Poll arbitrates among the pending sources in priority order
// NMI > RST > BRK > IRQ. If halted, nothing is eligible. BRK and RST are
// edge-triggered and are cleared here; NMI and IRQ are left for the CPU
// to clear after it finishes servicing (see ClearNMI/ClearIRQ).
//
// nmiVec, rstVec, irqVec are the already-fetched 16-bit vector targets;
// Poll itself does no bus access.
func (c *Controller) Poll(nmiVec, rstVec, irqVec uint16) (Kind, uint16, bool) {
	if c.halted {
		return None, 0, false
	}

	switch {
	case c.nmi:
		return NMI, nmiVec, true
	case c.reset:
		c.reset = false
		return RST, rstVec, true
	case c.brk:
		c.brk = false
		return BRK, irqVec, true
	case c.irq:
		return IRQ, irqVec, true
	default:
		return None, 0, false
	}
}

// String renders the six-character trace fragment spec.md's trace format
// embeds as "I:nibrwh" — one letter per flag/mode, a dot when clear.
func (c *Controller) String() string {
	letter := func(set bool, ch byte) byte {
		if set {
			return ch
		}
		return '.'
	}
	buf := [6]byte{
		letter(c.nmi, 'n'),
		letter(c.irq, 'i'),
		letter(c.brk, 'b'),
		letter(c.reset, 'r'),
		letter(c.waiting, 'w'),
		letter(c.halted, 'h'),
	}
	return string(buf[:])
}
