package kernel

// Error describes a kernel error. Kernel errors are declared as package-level
// pointers to Error since the code paths that report them (early boot, IRQ
// handlers) run without a working Go allocator and cannot use errors.New.
type Error struct {
	// The subsystem that reported the error, e.g. "pmm" or "ps2kbd".
	Module string

	// The error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
