package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// routeList collects repeated -route flags. It implements flag.Value.
type routeList []Route

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver name (pgx, sqlite3)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-prefix wire token prefix
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-blacklist comma-separated block-rule path fragments
//	-whitelist comma-separated allow-rule path fragments
//	-route upstream route as prefix=target (repeatable)
//	-debug-bypass enable the debug bypass header
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var databaseDriver string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenPrefix string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var blacklist string
	var whitelist string
	var routes routeList
	var debugBypass bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&databaseDriver, "driver", "", "Database driver (pgx, sqlite3)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenPrefix, "token-prefix", "", "Wire token prefix")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&blacklist, "blacklist", "", "Comma-separated block-rule path fragments")
	flag.StringVar(&whitelist, "whitelist", "", "Comma-separated allow-rule path fragments")
	flag.Var(&routes, "route", "Upstream route as prefix=target (repeatable)")
	flag.BoolVar(&debugBypass, "debug-bypass", false, "Enable the debug bypass header (testing only)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenPrefix:   tokenPrefix,
			TokenDuration: tokenDuration,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Gateway: Gateway{
			Blacklist:   splitRuleList(blacklist),
			Whitelist:   splitRuleList(whitelist),
			Routes:      routes,
			DebugBypass: debugBypass,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// splitRuleList splits a comma-separated rule list, dropping empty entries.
func splitRuleList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	rules := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	return rules
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// String returns the routes in their compact "prefix=target" comma-joined form.
func (l *routeList) String() string {
	parts := make([]string, 0, len(*l))
	for _, r := range *l {
		parts = append(parts, r.Prefix+"="+r.Target)
	}
	return strings.Join(parts, ",")
}

// Set parses a single "prefix=target" pair and appends it to the list.
func (l *routeList) Set(s string) error {
	var r Route
	if err := r.UnmarshalText([]byte(s)); err != nil {
		return err
	}

	*l = append(*l, r)
	return nil
}
