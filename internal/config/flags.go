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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a document store listen address in format [host]:[port]
//	-s document store URL the client connects to
//	-d cache DSN
//	-c/-config json or yaml file path with configs
//	-token bearer token
//	-author-email blog owner email (client side)
//	-owner-email blog owner email (store side)
//	-log-file client log file
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-probe-interval connectivity probe interval
//	-probe-failures consecutive probe failures before going offline
//	-resync-interval degraded engine resync interval
//	-indexes comma separated composite indexes
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var storeAddress string
	var cacheDSN string
	var configPath string
	var token string
	var authorEmail string
	var ownerEmail string
	var logFile string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var probeInterval time.Duration
	var probeFailures int
	var resyncInterval time.Duration
	var indexes string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&storeAddress, "s", "", "Document store URL")
	flag.StringVar(&cacheDSN, "d", "", "Cache DSN")
	flag.StringVar(&configPath, "c", "", "Config file path")
	flag.StringVar(&configPath, "config", "", "Config file path (alias)")
	flag.StringVar(&token, "token", "", "Bearer token")
	flag.StringVar(&authorEmail, "author-email", "", "Blog author email")
	flag.StringVar(&ownerEmail, "owner-email", "", "Blog owner email enforced by the store")
	flag.StringVar(&logFile, "log-file", "", "Client log file")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	flag.IntVar(&probeFailures, "probe-failures", 0, "Consecutive probe failures before going offline")
	flag.DurationVar(&resyncInterval, "resync-interval", 0, "Degraded engine resync interval")
	flag.StringVar(&indexes, "indexes", "", "Comma separated composite indexes")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Token:       token,
			AuthorEmail: authorEmail,
			LogFile:     logFile,
		},
		Storage: Storage{
			Cache: Cache{DSN: cacheDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			OwnerEmail:     ownerEmail,
			Indexes:        splitList(indexes),
		},
		Adapter: Adapter{
			HTTPAddress:    storeAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			ProbeInterval:         probeInterval,
			ProbeFailureThreshold: probeFailures,
			ResyncInterval:        resyncInterval,
		},
		FilePath: configPath,
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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
