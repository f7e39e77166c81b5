package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// keyMapping lists the characters produced by a key with no modifier, with
// shift and with AltGr. Keys that produce nothing for a modifier use "".
type keyMapping struct {
	key                  string
	normal, shift, altGr string
}

// germanLayout is the German QWERTZ layout in UTF-8. Every character must
// have a CP437 glyph; § and € have none and are left out.
var germanLayout = []keyMapping{
	// Number row.
	{"KeyCircumflex", "^", "°", ""},
	{"Key1", "1", "!", ""},
	{"Key2", "2", "\"", "²"},
	{"Key3", "3", "", ""},
	{"Key4", "4", "$", ""},
	{"Key5", "5", "%", ""},
	{"Key6", "6", "&", ""},
	{"Key7", "7", "/", "{"},
	{"Key8", "8", "(", "["},
	{"Key9", "9", ")", "]"},
	{"Key0", "0", "=", "}"},
	{"KeySharpS", "ß", "?", "\\"},
	{"KeyAcute", "'", "`", ""},
	{"KeyBackspace", "\b", "\b", ""},

	// Top letter row.
	{"KeyTab", "\t", "\t", ""},
	{"KeyQ", "q", "Q", "@"},
	{"KeyW", "w", "W", ""},
	{"KeyE", "e", "E", ""},
	{"KeyR", "r", "R", ""},
	{"KeyT", "t", "T", ""},
	{"KeyZ", "z", "Z", ""},
	{"KeyU", "u", "U", ""},
	{"KeyI", "i", "I", ""},
	{"KeyO", "o", "O", ""},
	{"KeyP", "p", "P", ""},
	{"KeyUDiaeresis", "ü", "Ü", ""},
	{"KeyPlus", "+", "*", "~"},
	{"KeyEnter", "\n", "\n", ""},

	// Home row.
	{"KeyA", "a", "A", ""},
	{"KeyS", "s", "S", ""},
	{"KeyD", "d", "D", ""},
	{"KeyF", "f", "F", ""},
	{"KeyG", "g", "G", ""},
	{"KeyH", "h", "H", ""},
	{"KeyJ", "j", "J", ""},
	{"KeyK", "k", "K", ""},
	{"KeyL", "l", "L", ""},
	{"KeyODiaeresis", "ö", "Ö", ""},
	{"KeyADiaeresis", "ä", "Ä", ""},
	{"KeyHash", "#", "'", ""},

	// Bottom row.
	{"KeyLessThan", "<", ">", "|"},
	{"KeyY", "y", "Y", ""},
	{"KeyX", "x", "X", ""},
	{"KeyC", "c", "C", ""},
	{"KeyV", "v", "V", ""},
	{"KeyB", "b", "B", ""},
	{"KeyN", "n", "N", ""},
	{"KeyM", "m", "M", "µ"},
	{"KeyComma", ",", ";", ""},
	{"KeyPeriod", ".", ":", ""},
	{"KeyMinus", "-", "_", ""},
	{"KeySpace", " ", " ", ""},

	// Keypad.
	{"KeyKeypadSlash", "/", "/", ""},
	{"KeyKeypadAsterisk", "*", "*", ""},
	{"KeyKeypadMinus", "-", "-", ""},
	{"KeyKeypadPlus", "+", "+", ""},
	{"KeyKeypadEnter", "\n", "\n", ""},
	{"KeyKeypad0", "0", "0", ""},
	{"KeyKeypad1", "1", "1", ""},
	{"KeyKeypad2", "2", "2", ""},
	{"KeyKeypad3", "3", "3", ""},
	{"KeyKeypad4", "4", "4", ""},
	{"KeyKeypad5", "5", "5", ""},
	{"KeyKeypad6", "6", "6", ""},
	{"KeyKeypad7", "7", "7", ""},
	{"KeyKeypad8", "8", "8", ""},
	{"KeyKeypad9", "9", "9", ""},
	{"KeyKeypadDelete", ",", ",", ""},
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[genlayout] error: %s\n", err.Error())
	os.Exit(1)
}

// encodeTable converts the UTF-8 strings selected by column to CP437.
func encodeTable(layout []keyMapping, column func(keyMapping) string) ([]keyMapping, error) {
	enc := charmap.CodePage437.NewEncoder()

	encoded := make([]keyMapping, 0, len(layout))
	for _, m := range layout {
		s := column(m)
		if s == "" {
			continue
		}

		cp437, err := enc.String(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %q has no CP437 encoding", m.key, s)
		}
		encoded = append(encoded, keyMapping{key: m.key, normal: cp437})
	}

	return encoded, nil
}

func genLayoutFile(w io.Writer, varName string, layout []keyMapping) error {
	var buf bytes.Buffer

	fmt.Fprint(&buf, "// Code generated by genlayout; DO NOT EDIT.\n\n")
	fmt.Fprint(&buf, "package layout\n\n")
	fmt.Fprint(&buf, "import \"zuckeros/device/input/keyboard\"\n\n")
	fmt.Fprintf(&buf, "var %s = Layout{\n", varName)

	columns := []struct {
		field  string
		column func(keyMapping) string
	}{
		{"Normal", func(m keyMapping) string { return m.normal }},
		{"Shift", func(m keyMapping) string { return m.shift }},
		{"AltGr", func(m keyMapping) string { return m.altGr }},
	}

	for _, col := range columns {
		entries, err := encodeTable(layout, col.column)
		if err != nil {
			return err
		}

		fmt.Fprintf(&buf, "%s: [keyboard.NumKeyCodes]string{\n", col.field)
		for _, e := range entries {
			fmt.Fprintf(&buf, "keyboard.%s: %+q,\n", e.key, e.normal)
		}
		fmt.Fprint(&buf, "},\n")
	}
	fmt.Fprint(&buf, "}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return err
	}

	_, err = w.Write(src)
	return err
}

func runTool() error {
	varName := flag.String("var-name", "german", "the name of the generated layout variable")
	output := flag.String("out", "-", "a file to write the generated layout or - to output to STDOUT")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "genlayout: generate CP437 keyboard layout tables\n\n")
		fmt.Fprint(os.Stderr, "Usage: genlayout [options]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 {
		return errors.New("unexpected arguments")
	}

	if *output == "-" {
		return genLayoutFile(os.Stdout, *varName, germanLayout)
	}

	fOut, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer fOut.Close()

	return genLayoutFile(fOut, *varName, germanLayout)
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
