// Package parse implements the parse command, which extracts fatal error
// reports from console logs.
package parse

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/clktmr/arm64fatal/fatal"
	"github.com/clktmr/arm64fatal/internal/clilog"
	"github.com/clktmr/arm64fatal/report"
)

const usageString = `Extract fatal error reports from console logs.

Usage: %s [flags] [logfile...]

Reads stdin if no logfile is given. Exits with status 1 if any report was found.

`

var (
	flags = flag.NewFlagSet("parse", flag.ExitOnError)

	regs  = flags.Bool("regs", false, "print saved registers")
	group = flags.Bool("group", false, "print each distinct fault once, with its count")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "parse")
	flags.PrintDefaults()
}

func Main(args []string) {
	log := clilog.New()
	flags.Usage = usage
	flags.Parse(args[1:])

	type input struct {
		name string
		r    io.Reader
	}
	var inputs []input
	if flags.NArg() == 0 {
		inputs = append(inputs, input{"stdin", os.Stdin})
	}
	for _, name := range flags.Args() {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		inputs = append(inputs, input{name, f})
	}

	var all []report.Report
	for _, in := range inputs {
		reports, err := report.Parse(in.r)
		if err != nil {
			log.Fatalf("%s: %v", in.name, err)
		}
		if !*group {
			writeReports(os.Stdout, in.name, reports, *regs)
		}
		all = append(all, reports...)
	}
	if *group {
		writeGroups(os.Stdout, all)
	}

	if len(all) > 0 {
		os.Exit(1)
	}
}

func writeReports(w io.Writer, name string, reports []report.Report, regs bool) {
	for _, r := range reports {
		fmt.Fprintf(w, "%s:%d: [%02x] %s\n", name, r.Line, r.Fingerprint(), r.Summary())
		if regs && r.ESF != nil {
			writeRegs(w, r.ESF)
		}
	}
}

func writeRegs(w io.Writer, esf *fatal.ESF) {
	saved := fatal.SavedRegs()
	for i := 0; i < len(saved); i += 2 {
		a, _ := esf.Reg(saved[i])
		b, _ := esf.Reg(saved[i+1])
		fmt.Fprintf(w, "\t%-4s 0x%016x  %-4s 0x%016x\n", label(saved[i]), a, label(saved[i+1]), b)
	}
}

func label(reg int) string {
	return "x" + strconv.Itoa(reg) + ":"
}

func writeGroups(w io.Writer, reports []report.Report) {
	counts := make(map[report.Key]int)
	first := make(map[report.Key]report.Report)
	for _, r := range reports {
		k := r.Key()
		if counts[k] == 0 {
			first[k] = r
		}
		counts[k]++
	}

	keys := maps.Keys(counts)
	slices.SortFunc(keys, func(a, b report.Key) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(first[a].Line, first[b].Line)
	})
	for _, k := range keys {
		r := first[k]
		fmt.Fprintf(w, "%5d  [%02x] %s\n", counts[k], r.Fingerprint(), r.Summary())
	}
}
