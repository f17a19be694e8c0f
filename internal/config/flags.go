// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// defaultAPIPrefix is appended to bare host:port addresses.
const defaultAPIPrefix = "/api/v1"

// APIAddress holds the API base URL. It implements the flag.Value
// interface and accepts either a full URL or a "host:port" pair.
type APIAddress struct {
	URL string
}

// String returns the normalised URL, or "" when unset.
func (a *APIAddress) String() string {
	return a.URL
}

// Set parses s. A "host:port" pair becomes "http://host:port/api/v1";
// a URL must carry a scheme and a host.
func (a *APIAddress) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("empty api address")
	}

	if !strings.Contains(s, "://") {
		host, portStr, err := net.SplitHostPort(s)
		if err != nil {
			return errors.New("need address in a form `host:port` or a URL")
		}
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return errors.New("port number is an integer in 1..65535")
		}
		if host != "localhost" && net.ParseIP(host) == nil {
			return errors.New("incorrect IP-address provided")
		}
		a.URL = "http://" + net.JoinHostPort(host, portStr) + defaultAPIPrefix
		return nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid api address: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("api address scheme must be http or https")
	}
	if u.Host == "" {
		return errors.New("api address must include a host")
	}

	a.URL = strings.TrimRight(u.String(), "/")
	return nil
}

// parseFlags parses args as the process command line.
//
// Flags:
//
//	-a api address (URL or host:port)
//	-request-timeout request timeout (e.g., "15s")
//	-d SQLite session database path
//	-f JSON session file path
//	-log-file log file path
//	-loose-role-match substring role matching in the menu
//	-session-check-interval session watcher interval (e.g., "30s")
//	-cache-ttl reference cache TTL (e.g., "5m")
//	-cache-size reference cache size
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("sim-sekolah", flag.ContinueOnError)

	var apiAddress APIAddress
	var requestTimeout time.Duration
	var databaseDSN string
	var sessionFile string
	var logFile string
	var looseRoleMatch bool
	var sessionCheckInterval time.Duration
	var cacheTTL time.Duration
	var cacheSize int
	var jsonConfigPath string

	fs.Var(&apiAddress, "a", "API address: URL or host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.StringVar(&databaseDSN, "d", "", "SQLite session database path")
	fs.StringVar(&sessionFile, "f", "", "JSON session file path")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.BoolVar(&looseRoleMatch, "loose-role-match", false, "Substring role matching in the menu")
	fs.DurationVar(&sessionCheckInterval, "session-check-interval", 0, "Session watcher interval (e.g., 30s)")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Reference cache TTL (e.g., 5m)")
	fs.IntVar(&cacheSize, "cache-size", 0, "Reference cache size")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogFile:        logFile,
			LooseRoleMatch: looseRoleMatch,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Files: Files{SessionFile: sessionFile},
		},
		Adapter: Adapter{
			Address:        apiAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SessionCheckInterval: sessionCheckInterval,
			CacheTTL:             cacheTTL,
			CacheSize:            cacheSize,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
