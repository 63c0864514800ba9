// Package run implements the run command, which executes a kernel image in an
// emulator and fails if the kernel reports a fatal error.
package run

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aymanbagabas/go-pty"
	"github.com/buildkite/shellwords"
	"github.com/sirupsen/logrus"

	"github.com/clktmr/arm64fatal/internal/clilog"
	"github.com/clktmr/arm64fatal/report"
)

const usageString = `Run a kernel image in an emulator and watch its console for fatal errors.

Usage: %s [flags] <image>

Exits with status 1 if a fatal error was reported or a test failed, and with
status 2 on timeout.

`

var (
	flags = flag.NewFlagSet("run", flag.ExitOnError)

	configPath = flags.String("config", "fatalgo.toml", "configuration file")
	command    = flags.String("command", "", "emulator command, overrides config")
	timeout    = flags.Duration("timeout", 0, "kill the emulator after this duration, overrides config")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "run")
	flags.PrintDefaults()
}

func Main(args []string) {
	log := clilog.New()
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := loadConfig(*configPath, !set["config"])
	if err != nil {
		log.Fatalln("config:", err)
	}
	if set["command"] {
		cfg.Command = *command
	}
	if set["timeout"] {
		cfg.Timeout = *timeout
	}

	argv, err := shellwords.Split(cfg.Command)
	if err != nil {
		log.Fatalln("command:", err)
	}
	if len(argv) == 0 {
		log.Fatalln("command: empty")
	}
	argv = append(argv, flags.Arg(0))

	code, console, err := runImage(argv, cfg, log)
	if err != nil {
		log.Fatalln(err)
	}

	reports, err := report.Parse(bytes.NewReader(console))
	if err != nil {
		log.Warnln("parse console:", err)
	}
	for _, r := range reports {
		log.Errorf("fatal error [%02x]: %s", r.Fingerprint(), r.Summary())
	}
	os.Exit(code)
}

func runImage(argv []string, cfg Config, log logrus.FieldLogger) (code int, console []byte, err error) {
	p, err := pty.New()
	if err != nil {
		return 0, nil, fmt.Errorf("open pty: %w", err)
	}
	defer p.Close()

	cmd := p.Command(argv[0], argv[1:]...)
	if err = cmd.Start(); err != nil {
		return 0, nil, fmt.Errorf("start command: %w", err)
	}

	var once sync.Once
	kill := func() {
		once.Do(func() {
			if err := processGroupKill(cmd.Process); err != nil {
				log.Warnln(err)
			}
			// Unblock the reader, the pty may stay open in orphaned children.
			time.AfterFunc(time.Second, func() { p.Close() })
		})
	}

	sigintr := make(chan os.Signal, 1)
	signal.Notify(sigintr, os.Interrupt)
	defer signal.Stop(sigintr)
	done := make(chan struct{})
	defer close(done)
	go killOnSignal(sigintr, done, kill)

	var timedOut atomic.Bool
	if cfg.Timeout > 0 {
		t := time.AfterFunc(cfg.Timeout, func() {
			timedOut.Store(true)
			kill()
		})
		defer t.Stop()
	}

	code, console = scan(p, os.Stdout, func() {
		time.AfterFunc(cfg.Drain, kill)
	})
	cmd.Wait()

	if timedOut.Load() && code == 0 {
		log.Errorf("timeout after %v", cfg.Timeout)
		code = 2
	}
	return code, console, nil
}

// killOnSignal calls kill on the first signal. It returns without calling
// kill once done is closed.
func killOnSignal(sig <-chan os.Signal, done <-chan struct{}, kill func()) {
	select {
	case <-sig:
		kill()
	case <-done:
	}
}

// scan copies console output from r to w and returns everything read. It
// calls done once a fatal error or test result was seen. The returned code is
// 1 if the kernel failed.
func scan(r io.Reader, w io.Writer, done func()) (code int, console []byte) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	exiting := false
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(w, line)
		buf.WriteString(line)
		buf.WriteByte('\n')
		if exiting {
			continue
		}
		switch {
		case report.Detect(line), line == "FAIL":
			code = 1
			fallthrough
		case line == "PASS":
			exiting = true
			done()
		}
	}
	return code, buf.Bytes()
}
