// Package report parses fatal error reports from console logs.
//
// Lines may be prefixed by a severity tag (`E: `) or a full log header
// (`[00:00:00.000,000] <err> os: `), and may end in CRLF as is common for
// serial consoles. Unrelated lines are skipped.
package report

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sigurn/crc8"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/clktmr/arm64fatal/esr"
	"github.com/clktmr/arm64fatal/fatal"
)

var ErrMalformed = errors.New("malformed report line")

// Report is a fatal error report read back from a log.
type Report struct {
	Line int // line number of the first line of the report

	// Syndrome registers, only valid if SysRegs is true.
	SysRegs    bool
	Syndrome   esr.Syndrome
	FaultAddr  uint64
	ReturnAddr uint64
	Cause      string

	ESF *fatal.ESF // nil if no frame was dumped
}

// Key identifies reports of the same fault: the same exception class at the
// same instruction and data address.
type Key struct {
	Class      esr.Class
	ReturnAddr uint64
	FaultAddr  uint64
}

func (r *Report) Key() Key {
	return Key{r.Syndrome.Class(), r.ReturnAddr, r.FaultAddr}
}

var crcTable = crc8.MakeTable(crc8.CRC8)

// Fingerprint is a short checksum of Key, meant for humans to tell repeated
// faults apart in a long log.
func (r *Report) Fingerprint() uint8 {
	var b [17]byte
	b[0] = byte(r.Syndrome.Class())
	binary.BigEndian.PutUint64(b[1:], r.ReturnAddr)
	binary.BigEndian.PutUint64(b[9:], r.FaultAddr)
	return crc8.Checksum(b[:], crcTable)
}

// Summary returns a single line description of the report.
func (r *Report) Summary() string {
	if !r.SysRegs {
		return "no syndrome registers"
	}
	cause := r.Cause
	if cause == "" {
		cause = fmt.Sprintf("exception class %#02x", r.Syndrome.Class())
	}
	return fmt.Sprintf("%s at %#016x, fault address %#016x", cause, r.ReturnAddr, r.FaultAddr)
}

// Prefixes which end a report. The first two are printed by the Go runtime,
// the last by kernels printing their fatal error banner.
var terminators = []string{"fatal error:", "panic:", ">>> "}

type parser struct {
	reports []Report
	cur     *Report
	lineno  int
}

// Parse reads all reports from r.
func Parse(r io.Reader) ([]Report, error) {
	var p parser
	noCR := runes.Remove(runes.Predicate(func(r rune) bool { return r == '\r' }))
	scanner := bufio.NewScanner(transform.NewReader(r, noCR))
	for scanner.Scan() {
		p.lineno++
		if err := p.parseLine(message(scanner.Text())); err != nil {
			return p.reports, fmt.Errorf("line %d: %w", p.lineno, err)
		}
	}
	p.flush()
	return p.reports, scanner.Err()
}

// message strips the log header from line.
func message(line string) string {
	if i := strings.Index(line, "<err> "); i >= 0 {
		rest := line[i+len("<err> "):]
		if j := strings.Index(rest, ": "); j >= 0 {
			return rest[j+2:]
		}
		return rest
	}
	if rest, ok := strings.CutPrefix(line, "E: "); ok {
		return rest
	}
	return line
}

// Detect reports whether line belongs to a fatal error report or ends one.
func Detect(line string) bool {
	msg := message(strings.TrimSuffix(line, "\r"))
	for _, label := range []string{fatal.LabelESR, fatal.LabelFAR, fatal.LabelELR} {
		if strings.HasPrefix(msg, label) {
			return true
		}
	}
	for _, t := range terminators {
		if strings.HasPrefix(msg, t) {
			return true
		}
	}
	return isDumpLine(msg)
}

func (p *parser) flush() {
	if p.cur != nil {
		p.reports = append(p.reports, *p.cur)
		p.cur = nil
	}
}

func (p *parser) begin() *Report {
	p.flush()
	p.cur = &Report{Line: p.lineno}
	return p.cur
}

func (p *parser) current() *Report {
	if p.cur == nil {
		return p.begin()
	}
	return p.cur
}

func (p *parser) parseLine(msg string) error {
	switch {
	case strings.HasPrefix(msg, fatal.LabelESR):
		v, err := parseHex(msg[len(fatal.LabelESR):])
		if err != nil {
			return err
		}
		r := p.cur
		if r == nil || r.SysRegs || r.ESF != nil {
			r = p.begin()
		}
		r.SysRegs = true
		r.Syndrome = esr.Syndrome(v)

	case strings.HasPrefix(msg, fatal.LabelFAR):
		v, err := parseHex(msg[len(fatal.LabelFAR):])
		if err != nil {
			return err
		}
		p.current().FaultAddr = v

	case strings.HasPrefix(msg, fatal.LabelELR):
		v, err := parseHex(msg[len(fatal.LabelELR):])
		if err != nil {
			return err
		}
		p.current().ReturnAddr = v

	case isDumpLine(msg):
		return p.parseDump(msg)

	default:
		for _, t := range terminators {
			if strings.HasPrefix(msg, t) {
				p.flush()
				return nil
			}
		}
		if _, ok := esr.Lookup(msg); ok && p.cur != nil && p.cur.SysRegs && p.cur.ESF == nil {
			p.cur.Cause = msg
		}
	}
	return nil
}

func isDumpLine(msg string) bool {
	if !strings.HasPrefix(msg, "x") {
		return false
	}
	fields := strings.Fields(msg)
	if len(fields) < 2 || !strings.HasSuffix(fields[0], ":") {
		return false
	}
	_, err := strconv.Atoi(fields[0][1 : len(fields[0])-1])
	return err == nil && strings.HasPrefix(fields[1], "0x")
}

func (p *parser) parseDump(msg string) error {
	fields := strings.Fields(msg)
	if len(fields) != 4 {
		return ErrMalformed
	}
	var regs [2]int
	var vals [2]uint64
	for i := range regs {
		label, val := fields[2*i], fields[2*i+1]
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(label, "x"), ":"))
		if err != nil {
			return ErrMalformed
		}
		v, err := parseHex(val)
		if err != nil {
			return err
		}
		regs[i], vals[i] = n, v
	}

	r := p.current()
	if regs[0] == 0 && r.ESF != nil {
		r = p.begin()
	}
	if r.ESF == nil {
		r.ESF = new(fatal.ESF)
	}
	for i := range regs {
		if !r.ESF.SetReg(regs[i], vals[i]) {
			return fmt.Errorf("x%d not in frame: %w", regs[i], ErrMalformed)
		}
	}
	return nil
}

func parseHex(s string) (uint64, error) {
	digits, ok := strings.CutPrefix(strings.TrimSpace(s), "0x")
	if !ok {
		return 0, ErrMalformed
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	return v, nil
}
