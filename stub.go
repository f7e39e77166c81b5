package main

import "zuckeros/kernel/kmain"

var (
	memmapResponsePtr uintptr
	hhdmResponsePtr   uintptr
	cmdlinePtr        uintptr
)

// main makes a dummy call to the actual kernel main entrypoint function. It
// is intentionally defined to prevent the Go compiler from optimizing away the
// real kernel code.
//
// Global variables are passed as arguments to Kmain to prevent the compiler
// from inlining the actual call and removing Kmain from the generated .o file.
func main() {
	kmain.Kmain(memmapResponsePtr, hhdmResponsePtr, cmdlinePtr)
}
