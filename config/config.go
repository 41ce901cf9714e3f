// Package config parses the emulator's command line.
package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"time"
)

type Config struct {
	Addr          string
	DBUrl         string
	APIKey        string
	AdminPassword string
	TokenSecret   string
	TokenTTL      time.Duration
	Debug         bool
}

func ParseFlags() (cfg Config, err error) {
	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	flag.StringVar(&cfg.DBUrl, "db-url", "pulse-emulator.sqlite", "path to SQLite3 DB file (default pulse-emulator.sqlite)")
	flag.StringVar(&cfg.APIKey, "api-key", "", "bearer API key SDK clients must send")
	flag.StringVar(&cfg.AdminPassword, "admin-password", "", "password of the 'admin' user on the admin API")
	flag.StringVar(&cfg.TokenSecret, "token-secret", "", "secret key for admin token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 3600, "admin token TTL in seconds (default 3600)")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	switch {
	case cfg.APIKey == "":
		err = errors.New("missing parameter -api-key")
	case cfg.AdminPassword == "":
		err = errors.New("missing parameter -admin-password")
	case cfg.TokenSecret == "":
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() string {
	host, port, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return "http://" + cfg.Addr
	}
	if host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
