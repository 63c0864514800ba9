// Package decode implements the decode command, which prints the fields of
// exception syndrome register values.
package decode

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/clktmr/arm64fatal/esr"
	"github.com/clktmr/arm64fatal/internal/clilog"
)

const usageString = `Decode ESR_ELx values.

Usage: %s [flags] <value>...

Values are parsed as Go integer literals, e.g. 0x96000045.

`

var (
	flags = flag.NewFlagSet("decode", flag.ExitOnError)

	list = flags.Bool("list", false, "list all exception classes with a description")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "decode")
	flags.PrintDefaults()
}

func Main(args []string) {
	log := clilog.New()
	flags.Usage = usage
	flags.Parse(args[1:])

	if *list {
		writeClasses(os.Stdout)
		return
	}
	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(1)
	}

	for _, arg := range flags.Args() {
		v, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			log.Fatalf("decode %s: %v", arg, err)
		}
		describe(os.Stdout, esr.Syndrome(v))
	}
}

func describe(w io.Writer, s esr.Syndrome) {
	il := 0
	if s.IL() {
		il = 1
	}
	fmt.Fprintf(w, "%#016x: EC %#02x IL %d ISS %#07x\n", uint64(s), uint8(s.Class()), il, s.ISS())
	if text, ok := esr.Classify(s); ok {
		fmt.Fprintf(w, "\t%s\n", text)
	}
}

func writeClasses(w io.Writer) {
	for _, c := range esr.Classes() {
		text, _ := c.Description()
		fmt.Fprintf(w, "%#06b  %s\n", uint8(c), text)
	}
}
