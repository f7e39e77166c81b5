package irq

import (
	"zuckeros/kernel"
	"zuckeros/kernel/kfmt"
)

// exceptionNames holds the description of each CPU exception vector.
var exceptionNames = [32]string{
	"divide error",
	"debug exception",
	"NMI interrupt",
	"breakpoint",
	"overflow",
	"BOUND range exceeded",
	"invalid opcode",
	"device not available",
	"double fault",
	"coprocessor segment overrun",
	"invalid TSS",
	"segment not present",
	"stack-segment fault",
	"general protection fault",
	"page fault",
	"reserved",
	"x87 FPU floating-point error",
	"alignment check",
	"machine check",
	"SIMD floating-point exception",
	"virtualization exception",
	"control protection exception",
	"reserved", "reserved", "reserved", "reserved",
	"reserved", "reserved", "reserved", "reserved",
	"reserved", "reserved",
}

// hasErrorCode reports whether the CPU pushes an error code for vector.
func hasErrorCode(vector uint8) bool {
	switch vector {
	case 8, 10, 11, 12, 13, 14, 17, 21:
		return true
	}
	return false
}

var (
	errUnhandledException = &kernel.Error{Module: "irq", Message: "unhandled CPU exception"}
	errUnexpectedVector   = &kernel.Error{Module: "irq", Message: "unexpected interrupt vector"}

	panicFn = kfmt.Panic
)

// HandleInterrupt is the common entry point invoked by the interrupt stubs
// for every vector. IRQs are forwarded to Dispatch. Exceptions are fatal:
// the CPU state is dumped and the kernel halts.
func HandleInterrupt(vector uint8, errorCode uint64, frame *Frame, regs *Regs) {
	switch {
	case vector >= VectorBase && vector < VectorBase+NumLines:
		Dispatch(Line(vector - VectorBase))
		return
	case vector < uint8(len(exceptionNames)):
		w := kfmt.GetOutputSink()
		kfmt.Fprintf(w, "\nexception %d: %s", vector, exceptionNames[vector])
		if hasErrorCode(vector) {
			kfmt.Fprintf(w, " (error code: 0x%x)", errorCode)
		}
		kfmt.Fprintf(w, "\n")
		frame.Dump(w)
		regs.Dump(w)
		panicFn(errUnhandledException)
	default:
		kfmt.Errorf("irq", "unexpected interrupt vector %d", vector)
		panicFn(errUnexpectedVector)
	}
}
