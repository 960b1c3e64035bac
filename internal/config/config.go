// Package config defines the bridge's CLI surface and layered
// JSON/YAML/TOML configuration, parsed via github.com/alecthomas/kong
// plus the kong-toml/kong-yaml loaders.
package config

// LogConfig controls the structured and raw loggers.
type LogConfig struct {
	Level   string `help:"Log level: trace, debug, info, warn, error." enum:"trace,debug,info,warn,error" default:"info"`
	File    string `help:"Also write structured logs to this file; console logs then all go to stderr."`
	RawFile string `help:"Write a hex dump of every LK201 wire byte to this file." name:"raw-log-file"`
}

// CLI is the bridge's full command-line and file-configuration
// surface.
type CLI struct {
	Serial SerialConfig `embed:"" prefix:"serial."`
	Log    LogConfig    `embed:"" prefix:"log."`

	Config ConfigCommand `cmd:"" help:"Manage the configuration file."`

	Run RunCommand `cmd:"" default:"1" help:"Run the bridge (default)."`
}

// SerialConfig selects and configures the UART connecting the bridge
// to the host terminal.
type SerialConfig struct {
	Device string `help:"Path to the UART device connected to the host." default:"/dev/ttyUSB0"`
	Baud   int    `help:"Baud rate; LK201 convention is 4800." default:"4800"`
}

// RunCommand is the bridge's default, always-on operating mode: open
// the configured UART and run the event loop until terminated. It
// starts no BLE HID source of its own.
type RunCommand struct{}
