package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/clktmr/arm64fatal/tools/decode"
	"github.com/clktmr/arm64fatal/tools/parse"
	"github.com/clktmr/arm64fatal/tools/run"
)

const usageString = `fatalgo is a tool for reading aarch64 fatal error reports.

Usage:

	%s <command> [arguments]

The commands are:

	decode   decode exception syndrome register values
	parse    extract fatal error reports from console logs
	run      run a kernel image in an emulator and check for fatal errors
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "decode":
		decode.Main(flag.Args())
	case "parse":
		parse.Main(flag.Args())
	case "run":
		run.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
