package interrupts

import "testing"

func TestPollPriorityNMIBeatsEverything(t *testing.T) {
	c := &Controller{}
	c.RequestNMI()
	c.RequestReset()
	c.RequestBRK()
	c.RequestIRQ()

	kind, target, ok := c.Poll(0x1000, 0x2000, 0x3000)
	if !ok || kind != NMI || target != 0x1000 {
		t.Fatalf("expected NMI to win arbitration, got kind=%s target=$%04X ok=%v", kind, target, ok)
	}
	// NMI is left pending for the CPU to clear itself.
	if !c.NMIPending() {
		t.Fatalf("expected NMI to remain pending until ClearNMI")
	}
}

func TestPollPriorityResetBeatsBRKAndIRQ(t *testing.T) {
	c := &Controller{}
	c.RequestReset()
	c.RequestBRK()
	c.RequestIRQ()

	kind, target, ok := c.Poll(0x1000, 0x2000, 0x3000)
	if !ok || kind != RST || target != 0x2000 {
		t.Fatalf("expected RST to win, got kind=%s target=$%04X ok=%v", kind, target, ok)
	}
	// RST is edge-triggered and clears itself.
	kind2, _, ok2 := c.Poll(0x1000, 0x2000, 0x3000)
	if !ok2 || kind2 != BRK {
		t.Fatalf("expected BRK to win second poll after RST cleared, got kind=%s ok=%v", kind2, ok2)
	}
}

func TestPollBRKBeatsIRQAndClears(t *testing.T) {
	c := &Controller{}
	c.RequestBRK()
	c.RequestIRQ()

	kind, target, ok := c.Poll(0x1000, 0x2000, 0x3000)
	if !ok || kind != BRK || target != 0x3000 {
		t.Fatalf("expected BRK to win with IRQ vector target, got kind=%s target=$%04X", kind, target)
	}

	kind2, _, ok2 := c.Poll(0x1000, 0x2000, 0x3000)
	if !ok2 || kind2 != IRQ {
		t.Fatalf("expected IRQ to win once BRK cleared, got kind=%s ok=%v", kind2, ok2)
	}
}

func TestPollHaltedSuppressesEverything(t *testing.T) {
	c := &Controller{}
	c.RequestNMI()
	c.EnterHalt()

	_, _, ok := c.Poll(0x1000, 0x2000, 0x3000)
	if ok {
		t.Fatalf("expected halted controller to report nothing eligible")
	}
}

func TestRequestNMILeavesWait(t *testing.T) {
	c := &Controller{}
	c.EnterWait()
	c.RequestNMI()
	if c.Waiting() {
		t.Fatalf("expected NMI request to leave WAI state")
	}
}

func TestRequestBRKDoesNotLeaveWait(t *testing.T) {
	c := &Controller{}
	c.EnterWait()
	c.RequestBRK()
	if !c.Waiting() {
		t.Fatalf("expected BRK request, a CPU-internal signal, to leave WAI state untouched")
	}
}

func TestClearAllResetsEverything(t *testing.T) {
	c := &Controller{}
	c.RequestNMI()
	c.RequestIRQ()
	c.RequestBRK()
	c.RequestReset()
	c.EnterWait()
	c.EnterHalt()

	c.ClearAll()

	if c.NMIPending() || c.IRQPending() || c.Waiting() || c.Halted() {
		t.Fatalf("expected ClearAll to clear every flag and mode")
	}
	if _, _, ok := c.Poll(1, 2, 3); ok {
		t.Fatalf("expected nothing pending after ClearAll")
	}
}

func TestStringRendersSixCharacterFragment(t *testing.T) {
	c := &Controller{}
	c.RequestIRQ()
	c.EnterWait()
	got := c.String()
	want := ".i..w."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
