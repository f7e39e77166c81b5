package kmain

import (
	"io"

	"zuckeros/device/input/keyboard"
	"zuckeros/device/input/keyboard/layout"
	"zuckeros/device/pic"
	"zuckeros/kernel"
	"zuckeros/kernel/cpu"
	"zuckeros/kernel/hal"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/irq"
	"zuckeros/kernel/kfmt"
	"zuckeros/kernel/mem/pmm"
)

var (
	errNoKeyboard = &kernel.Error{Module: "kmain", Message: "no keyboard detected"}

	// memoryManager tracks the physical pages of the machine.
	memoryManager pmm.Manager

	// The following functions are mocked by tests.
	cmdlineValueFn = limine.CmdlineValue
	disableIntFn   = cpu.DisableInterrupts
	enableIntFn    = cpu.EnableInterrupts
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. The rt0 code passes the addresses of the bootloader's
// memory map and HHDM responses as well as the NUL-terminated kernel command
// line.
//
// Kmain never returns.
//
//go:noinline
func Kmain(memmapResponse, hhdmResponse, cmdline uintptr) {
	limine.SetMemmapResponse(memmapResponse)
	limine.SetHHDMResponse(hhdmResponse)
	limine.SetCmdline(cmdline)

	applyLogLevel()

	var err *kernel.Error
	if err = memoryManager.Init(limine.MemoryMap(), limine.HHDMOffset()); err != nil {
		kfmt.Panic(err)
	}
	memoryManager.SetStrict(strictPMM())

	pic.Init(irq.VectorBase, irq.VectorBase+8)
	hal.DetectHardware()
	memoryManager.PrintMemoryMap(kfmt.Writer())

	kbd := hal.ActiveKeyboard()
	if kbd == nil {
		kfmt.Panic(errNoKeyboard)
	}

	w := kfmt.Writer()
	for {
		echoKeys(w, kbd.Events(), layout.German())

		// Sleep only if no event arrived since the queue was drained.
		disableIntFn()
		if kbd.Events().Len() == 0 {
			cpu.WaitForInterrupt()
		} else {
			enableIntFn()
		}
	}
}

// applyLogLevel sets the log level requested by the loglevel command line
// option.
func applyLogLevel() {
	name, ok := cmdlineValueFn("loglevel")
	if !ok {
		return
	}

	level, ok := kfmt.ParseLevel(name)
	if !ok {
		kfmt.Warnf("kmain", "unknown log level %s; using %s", name, kfmt.LogLevel().String())
		return
	}
	kfmt.SetLogLevel(level)
}

// strictPMM returns true if the pmm.strict command line option is set to on.
func strictPMM() bool {
	v, ok := cmdlineValueFn("pmm.strict")
	return ok && v == "on"
}

// echoKeys drains the event queue and writes the text produced by each event
// to w. Interrupts are disabled while popping so the keyboard IRQ handler
// cannot overwrite the slot being read.
func echoKeys(w io.Writer, events *keyboard.Queue, l *layout.Layout) {
	for {
		disableIntFn()
		ev, ok := events.Pop()
		enableIntFn()

		if !ok {
			return
		}

		switch text := l.Translate(ev); text {
		case "":
		case "\b":
			kfmt.Fprintf(w, "\b \b")
		default:
			kfmt.Fprintf(w, "%s", text)
		}
	}
}
