package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the server flags from args.
//
// Flags:
//
//	-a               server address in format [host]:[port]
//	-driver          storage driver (sqlite3, pgx, memory)
//	-d               database DSN
//	-unslash-rounds  slash stripping rounds applied by the host on body writes
//	-c/-config       json file path with configs
//	-option-key      builder option key
//	-feature         capability flag name
//	-wrapper-class   display wrapper class
//	-no-wrapper-class render the wrapper without a class attribute
//	-escape-factor   backslash multiplication factor
//	-dedup-window    snapshots inspected by the deduplicator
//	-import-key      option bundle key used by importers
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-log-level       zerolog level
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("page-builder", flag.ContinueOnError)

	var serverAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Storage driver (sqlite3, pgx, memory)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.IntVar(&cfg.Storage.DB.UnslashRounds, "unslash-rounds", 0, "Slash stripping rounds applied on body writes")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.BuilderOptionKey, "option-key", "", "Builder option key")
	fs.StringVar(&cfg.App.FeatureName, "feature", "", "Capability flag name")
	fs.StringVar(&cfg.App.WrapperClass, "wrapper-class", "", "Display wrapper class")
	fs.BoolVar(&cfg.App.NoWrapperClass, "no-wrapper-class", false, "Render the wrapper without a class")
	fs.IntVar(&cfg.App.EscapeFactor, "escape-factor", 0, "Backslash multiplication factor")
	fs.IntVar(&cfg.App.DedupWindow, "dedup-window", 0, "Snapshots inspected by the deduplicator")
	fs.StringVar(&cfg.App.ImportOptionsKey, "import-key", "", "Option bundle key used by importers")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return cfg, nil
}

// String returns host:port, or an empty string when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h" or from nanoseconds.
type Duration time.Duration
