// pmmsim exercises the physical memory manager on the host. The metadata
// pages that the manager writes to are backed by an anonymous mapping so the
// same code that runs in the kernel can be profiled and debugged as a normal
// process.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"zuckeros/internal/physmem"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/kfmt"
	"zuckeros/kernel/mem"
	"zuckeros/kernel/mem/pmm"
)

var typeNames = map[string]limine.MemoryEntryType{
	"usable":      limine.MemUsable,
	"reserved":    limine.MemReserved,
	"acpi":        limine.MemAcpiReclaimable,
	"acpi-nvs":    limine.MemAcpiNVS,
	"bad":         limine.MemBad,
	"bootloader":  limine.MemBootloaderReclaimable,
	"kernel":      limine.MemKernelAndModules,
	"framebuffer": limine.MemFramebuffer,
}

// defaultMemoryMap resembles the map reported by qemu for a 128M machine.
var defaultMemoryMap = []*limine.MemoryMapEntry{
	{Base: 0x0, Length: 0x9fc00, Type: limine.MemUsable},
	{Base: 0x9fc00, Length: 0x400, Type: limine.MemReserved},
	{Base: 0xf0000, Length: 0x10000, Type: limine.MemReserved},
	{Base: 0x100000, Length: 0x7ee0000, Type: limine.MemUsable},
	{Base: 0x7fe0000, Length: 0x20000, Type: limine.MemReserved},
	{Base: 0xfffc0000, Length: 0x40000, Type: limine.MemReserved},
}

// regionList collects memory map entries specified as base:length:type.
type regionList []*limine.MemoryMapEntry

func (l *regionList) String() string {
	var parts []string
	for _, e := range *l {
		parts = append(parts, fmt.Sprintf("0x%x:0x%x:%s", e.Base, e.Length, e.Type))
	}
	return strings.Join(parts, ",")
}

func (l *regionList) Set(v string) error {
	fields := strings.Split(v, ":")
	if len(fields) != 3 {
		return fmt.Errorf("region %q: expected base:length:type", v)
	}

	base, err := strconv.ParseUint(fields[0], 0, 64)
	if err != nil {
		return fmt.Errorf("region %q: invalid base: %w", v, err)
	}

	length, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return fmt.Errorf("region %q: invalid length: %w", v, err)
	}

	kind, ok := typeNames[fields[2]]
	if !ok {
		return fmt.Errorf("region %q: unknown type %q", v, fields[2])
	}

	*l = append(*l, &limine.MemoryMapEntry{Base: base, Length: length, Type: kind})
	return nil
}

type options struct {
	memmap    regionList
	allocs    int
	freeEvery int
	runs      int
	strict    bool
	verbose   bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	var opts options

	fs := flag.NewFlagSet("pmmsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.memmap, "region", "a memory map entry as base:length:type; may be repeated (default: qemu 128M map)")
	fs.IntVar(&opts.allocs, "allocs", 1024, "number of pages to allocate; -1 allocates until memory is exhausted")
	fs.IntVar(&opts.freeEvery, "free-every", 2, "free every n-th allocated page before reallocating; 0 disables freeing")
	fs.IntVar(&opts.runs, "runs", 1, "number of times to repeat the simulation on the same arena")
	fs.BoolVar(&opts.strict, "strict", false, "enable page state checks")
	fs.BoolVar(&opts.verbose, "v", false, "print the allocator log output")
	fs.Usage = func() {
		fmt.Fprint(stderr, "pmmsim: run the physical memory manager against a simulated memory map\n\n")
		fmt.Fprint(stderr, "Usage: pmmsim [options]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if len(opts.memmap) == 0 {
		opts.memmap = defaultMemoryMap
	}

	if opts.runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1; got %d", opts.runs)
	}

	return &opts, nil
}

// workload is the outcome of a simulation run.
type workload struct {
	allocated, freed, reallocated int
}

func runWorkload(m *pmm.Manager, opts *options) (workload, error) {
	var (
		res   workload
		pages []uint64
		seen  = make(map[uint64]struct{})
	)

	for opts.allocs < 0 || len(pages) < opts.allocs {
		addr, err := m.Alloc()
		if err == pmm.ErrOutOfMemory {
			break
		} else if err != nil {
			return res, err
		}

		if _, dup := seen[addr]; dup {
			return res, fmt.Errorf("page 0x%x allocated twice", addr)
		}
		if status := m.CheckPage(addr); status != pmm.PageUsed {
			return res, fmt.Errorf("allocated page 0x%x reported as %s", addr, status)
		}

		seen[addr] = struct{}{}
		pages = append(pages, addr)
	}
	res.allocated = len(pages)

	if opts.freeEvery <= 0 {
		return res, nil
	}

	for i := 0; i < len(pages); i += opts.freeEvery {
		if err := m.Free(pages[i]); err != nil {
			return res, fmt.Errorf("free 0x%x: %s", pages[i], err.Message)
		}
		res.freed++
	}

	for res.reallocated < res.freed {
		if _, err := m.Alloc(); err != nil {
			return res, fmt.Errorf("realloc: %s", err.Message)
		}
		res.reallocated++
	}

	return res, nil
}

// simulate initializes a fresh manager whose metadata lives at hhdmOffset,
// runs the workload and prints the resulting statistics.
func simulate(memmap []*limine.MemoryMapEntry, hhdmOffset uintptr, opts *options, stdout io.Writer) error {
	var m pmm.Manager
	if err := m.Init(memmap, hhdmOffset); err != nil {
		return err
	}
	m.SetStrict(opts.strict)

	total, free := m.Stats()
	fmt.Fprintf(stdout, "before: %d/%d pages free\n", free, total)

	res, err := runWorkload(&m, opts)
	if err != nil {
		return err
	}

	total, free = m.Stats()
	fmt.Fprintf(stdout, "allocated %d, freed %d, reallocated %d pages\n", res.allocated, res.freed, res.reallocated)
	fmt.Fprintf(stdout, "after: %d/%d pages free\n", free, total)
	m.PrintMemoryMap(stdout)

	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		kfmt.SetLogLevel(kfmt.LevelDebug)
		kfmt.SetOutputSink(stderr)
		defer kfmt.SetOutputSink(nil)
	}

	memmap := []*limine.MemoryMapEntry(opts.memmap)
	metaEntry, metaPages, kErr := pmm.MetadataPlacement(memmap)
	if kErr != nil {
		return kErr
	}

	arena, kErr := physmem.New(mem.Size(metaPages) * mem.PageSize)
	if kErr != nil {
		return kErr
	}
	defer arena.Close()

	fmt.Fprintf(stdout, "metadata: %d pages at 0x%x\n", metaPages, metaEntry.Base)
	for i := 1; i <= opts.runs; i++ {
		if i > 1 {
			arena.Reset()
		}

		fmt.Fprintf(stdout, "run %d\n", i)
		if err = simulate(memmap, arena.HHDMOffset(metaEntry.Base), opts, stdout); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "[pmmsim] error: %s\n", err.Error())
		os.Exit(1)
	}
}
