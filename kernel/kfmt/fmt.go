package kfmt

import (
	"io"
	"unsafe"
)

// maxBufSize defines the buffer size for formatting numbers.
const maxBufSize = 32

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")
	hexDigits       = "0123456789abcdef"

	// earlyPrintBuffer is a ring buffer that stores Printf output before
	// an output sink (e.g. the serial port) is attached.
	earlyPrintBuffer ringBuffer

	// outputSink is a io.Writer where Printf will send its output. If set
	// to nil, then the output will be redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the default target for calls to Printf to w and copies
// any data accumulated in the earlyPrintBuffer to it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the default target for calls to Printf.
func GetOutputSink() io.Writer {
	return outputSink
}

// sinkWriter forwards writes to whatever output sink is active at the time
// of the write.
type sinkWriter struct{}

func (sinkWriter) Write(p []byte) (int, error) {
	doWrite(outputSink, p)
	return len(p), nil
}

// Writer returns an io.Writer that always targets the current output sink,
// falling back to the early print buffer while no sink is attached.
func Writer() io.Writer {
	return sinkWriter{}
}

// Printf provides a minimal Printf implementation that can be safely used
// before the Go runtime has been properly initialized and from interrupt
// handlers. This implementation does not allocate any memory.
//
// Similar to fmt.Printf, this version of printf supports the following subset
// of formatting verbs:
//
// Strings:
//		%s the uninterpreted bytes of the string or byte slice
//
// Integers:
//              %o base 8
//              %d base 10
//              %x base 16, with lower-case letters for a-f
//
// Booleans:
//              %t "true" or "false"
//
// Width is specified by an optional decimal number immediately preceding the verb.
// If absent, the width is whatever is necessary to represent the value.
//
// String values with length less than the specified width will be left-padded with
// spaces. Integer values formatted as base-10 will also be left-padded with spaces.
// Finally, integer values formatted as base-8 or base-16 will be left-padded with zeroes.
//
// Arguments that do not match one of the supported types are reported as
// %!(WRONGTYPE); Printf never falls back to io.Stringer as that would require
// the Go itables to be initialized.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but it writes the formatted output to
// the specified io.Writer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		nextArgIndex int
		padLen       int
		fmtLen       = len(format)
	)

	for index := 0; index < fmtLen; index++ {
		if format[index] != '%' {
			writeByte(w, format[index])
			continue
		}

		padLen = 0
		index++
	parseFmt:
		for ; index < fmtLen; index++ {
			ch := format[index]
			switch {
			case ch == '%':
				writeByte(w, '%')
				break parseFmt
			case ch >= '0' && ch <= '9':
				padLen = (padLen * 10) + int(ch-'0')
			case ch == 'd' || ch == 'x' || ch == 'o' || ch == 's' || ch == 't':
				if nextArgIndex >= len(args) {
					doWrite(w, errMissingArg)
					break parseFmt
				}

				switch ch {
				case 'o':
					fmtInt(w, args[nextArgIndex], 8, padLen)
				case 'd':
					fmtInt(w, args[nextArgIndex], 10, padLen)
				case 'x':
					fmtInt(w, args[nextArgIndex], 16, padLen)
				case 's':
					fmtString(w, args[nextArgIndex], padLen)
				case 't':
					fmtBool(w, args[nextArgIndex])
				}

				nextArgIndex++
				break parseFmt
			default:
				// unsupported verb; treat it as a missing verb
				doWrite(w, errNoVerb)
				break parseFmt
			}
		}

		if index == fmtLen {
			// reached end of formatting string without finding a verb
			doWrite(w, errNoVerb)
		}
	}

	for ; nextArgIndex < len(args); nextArgIndex++ {
		doWrite(w, errExtraArg)
	}
}

// fmtBool prints a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	bVal, ok := v.(bool)
	switch {
	case !ok:
		doWrite(w, errWrongArgType)
	case bVal:
		doWrite(w, trueValue)
	default:
		doWrite(w, falseValue)
	}
}

// fmtString prints a formatted version of string or []byte value v, applying
// the padding specified by padLen.
func fmtString(w io.Writer, v interface{}, padLen int) {
	switch castedVal := v.(type) {
	case string:
		fmtRepeat(w, ' ', padLen-len(castedVal))
		// converting the string to a byte slice triggers a memory allocation
		// so we need to do this one byte at a time.
		for i := 0; i < len(castedVal); i++ {
			writeByte(w, castedVal[i])
		}
	case []byte:
		fmtRepeat(w, ' ', padLen-len(castedVal))
		doWrite(w, castedVal)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtRepeat writes count bytes with value ch.
func fmtRepeat(w io.Writer, ch byte, count int) {
	for i := 0; i < count; i++ {
		writeByte(w, ch)
	}
}

// fmtInt prints out a formatted version of v in the requested base, applying
// the padding specified by padLen. This function supports all built-in signed
// and unsigned integer types and base 8, 10 and 16 output.
func fmtInt(w io.Writer, v interface{}, base, padLen int) {
	var (
		buf      [maxBufSize]byte
		uval     uint64
		negative bool
		padCh    byte = '0'
		pos           = maxBufSize
	)

	if padLen >= maxBufSize {
		padLen = maxBufSize - 1
	}

	if base == 10 {
		padCh = ' '
	}

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		uval, negative = absInt(int64(t))
	case int16:
		uval, negative = absInt(int64(t))
	case int32:
		uval, negative = absInt(int64(t))
	case int64:
		uval, negative = absInt(t)
	case int:
		uval, negative = absInt(int64(t))
	default:
		doWrite(w, errWrongArgType)
		return
	}

	// Digits are emitted right-to-left so no reversal is needed.
	for {
		pos--
		buf[pos] = hexDigits[uval%uint64(base)]
		uval /= uint64(base)
		if uval == 0 {
			break
		}
	}

	// Space padding goes before the sign; zero padding after it.
	if negative && padCh == '0' {
		for maxBufSize-pos < padLen-1 {
			pos--
			buf[pos] = padCh
		}
		pos--
		buf[pos] = '-'
	} else {
		if negative {
			pos--
			buf[pos] = '-'
		}
		for maxBufSize-pos < padLen {
			pos--
			buf[pos] = padCh
		}
	}

	doWrite(w, buf[pos:])
}

func absInt(v int64) (uint64, bool) {
	if v < 0 {
		return uint64(-v), true
	}
	return uint64(v), false
}

// writeByte emits a single byte without allocating.
func writeByte(w io.Writer, b byte) {
	var single [1]byte
	single[0] = b
	doWrite(w, single[:])
}

// doWrite is a proxy that uses the runtime.noescape hack to hide p from the
// compiler's escape analysis. Without this hack, the compiler cannot properly
// detect that p does not escape (due to the call to the yet unknown outputSink
// io.Writer) and plays it safe by flagging it as escaping. This causes all
// calls to Printf to call runtime.convT2E which triggers a memory allocation
// causing the kernel to crash if a call to Printf is made before the Go
// allocator is initialized.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis. This function is copied over
// from runtime/stubs.go
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
