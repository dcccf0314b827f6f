// Package config loads the settings of both executables from the
// environment, after reading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nanoncore/ont-cleaner/drivers/snmp"
	"github.com/nanoncore/ont-cleaner/store"
	"github.com/nanoncore/ont-cleaner/types"
)

const (
	DefaultMongoPort      = 27017
	DefaultSSHPort        = 22
	DefaultSSHTimeout     = 30 * time.Second
	DefaultConnectTimeout = 60 * time.Second
	DefaultSNMPPort       = 161
	DefaultSNMPTimeout    = 5 * time.Second
	DefaultLogFile        = "olt_ont_cleaner.log"
	DefaultLogLevel       = "info"
	DefaultViewerAddr     = "0.0.0.0:5717"
)

// Config is everything read from the environment at startup
type Config struct {
	Mongo  store.MongoConfig
	Device types.EquipmentConfig

	LogFile    string
	LogLevel   string
	ViewerAddr string
}

// Load reads files (default ".env") into the environment without overriding
// variables already set, then builds a Config. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, types.NewError(types.ErrInvalidFormat, "load "+f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment
func FromEnv() (*Config, error) {
	r := &reader{}

	cfg := &Config{
		Mongo: store.MongoConfig{
			Host:     os.Getenv("MONGO_HOST"),
			Port:     r.int("MONGO_PORT", DefaultMongoPort),
			Username: os.Getenv("MONGO_USERNAME"),
			Password: os.Getenv("MONGO_PASSWORD"),
		},
		Device: types.EquipmentConfig{
			Name:           os.Getenv("SSH_HOST"),
			Vendor:         types.VendorGeneric,
			Address:        os.Getenv("SSH_HOST"),
			Port:           r.int("SSH_PORT", DefaultSSHPort),
			Username:       os.Getenv("SSH_USER"),
			Password:       os.Getenv("SSH_PASSWORD"),
			Timeout:        r.duration("SSH_TIMEOUT", DefaultSSHTimeout),
			ConnectTimeout: r.duration("SSH_CONNECT_TIMEOUT", DefaultConnectTimeout),
			SNMP: types.SNMPConfig{
				Community:   os.Getenv("SNMP_COMMUNITY"),
				Port:        r.int("SNMP_PORT", DefaultSNMPPort),
				ONTCountOID: lookup("SNMP_ONT_COUNT_OID", snmp.DefaultONTCountOID),
				Timeout:     r.duration("SNMP_TIMEOUT", DefaultSNMPTimeout),
			},
		},
		LogFile:    lookup("LOG_FILE", DefaultLogFile),
		LogLevel:   lookup("LOG_LEVEL", DefaultLogLevel),
		ViewerAddr: lookup("VIEWER_ADDR", DefaultViewerAddr),
	}

	if r.err != nil {
		return nil, r.err
	}

	cfg.Device.Verbose = strings.EqualFold(cfg.LogLevel, "debug") || strings.EqualFold(cfg.LogLevel, "trace")
	return cfg, nil
}

// LogSettings returns LOG_LEVEL and LOG_FILE with their defaults. It lets a
// caller log a failed Load.
func LogSettings() (level, file string) {
	return lookup("LOG_LEVEL", DefaultLogLevel), lookup("LOG_FILE", DefaultLogFile)
}

// ValidateStore checks the settings the viewer needs
func (c *Config) ValidateStore() error {
	if c.Mongo.Host == "" {
		return missing("MONGO_HOST")
	}
	if c.Mongo.Port < 1 || c.Mongo.Port > 65535 {
		return types.NewError(types.ErrInvalidFormat, "MONGO_PORT", fmt.Errorf("port %d out of range", c.Mongo.Port))
	}
	return nil
}

// ValidateCleaner checks the settings the cleaner needs: the store and the device
func (c *Config) ValidateCleaner() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}
	switch {
	case c.Device.Address == "":
		return missing("SSH_HOST")
	case c.Device.Username == "":
		return missing("SSH_USER")
	case c.Device.Port < 1 || c.Device.Port > 65535:
		return types.NewError(types.ErrInvalidFormat, "SSH_PORT", fmt.Errorf("port %d out of range", c.Device.Port))
	}
	return nil
}

func missing(name string) error {
	return types.NewError(types.ErrInvalidFormat, name, errors.New("not set"))
}

func lookup(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

// reader keeps the first parse error so FromEnv reads like a list of fields
type reader struct {
	err error
}

func (r *reader) int(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, err)
		return def
	}
	return n
}

func (r *reader) duration(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// bare numbers are seconds
		if n, convErr := strconv.Atoi(v); convErr == nil {
			return time.Duration(n) * time.Second
		}
		r.fail(name, err)
		return def
	}
	return d
}

func (r *reader) fail(name string, err error) {
	if r.err == nil {
		r.err = types.NewError(types.ErrInvalidFormat, name, err)
	}
}
