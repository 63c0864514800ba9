package run

import (
	"errors"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is read from a TOML file, e.g.
//
//	command = "qemu-system-aarch64 -M virt -cpu cortex-a53 -nographic -kernel"
//	timeout = "1m"
type Config struct {
	// Command runs the emulator. The image path is appended as last argument.
	Command string `toml:"command"`

	// Timeout kills the emulator if no fatal error or test result was seen.
	// Zero disables the timeout.
	Timeout time.Duration `toml:"timeout"`

	// Drain is how long output is still read after the first line of a
	// fatal error, so the whole report is captured.
	Drain time.Duration `toml:"drain"`
}

var defaultConfig = Config{
	Command: "qemu-system-aarch64 -M virt -cpu cortex-a53 -m 128M -nographic -kernel",
	Timeout: 0,
	Drain:   500 * time.Millisecond,
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error if optional is set.
func loadConfig(path string, optional bool) (Config, error) {
	cfg := defaultConfig
	_, err := toml.DecodeFile(path, &cfg)
	if optional && errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	return cfg, err
}
