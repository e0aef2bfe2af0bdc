// Package settings names the runtime settings kept in the environment and
// loads the host configuration file
package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// keys for settings saved in the environment
const (
	Background = "background" // background color, 0xRRGGBBAA
	Foreground = "foreground" // drawing and text color
	Sleep      = "sleep"      // milliseconds the host should wait before the next step
	Tracing    = "tracing"    // is tracing on
)

// Config holds the host settings, read from an INI style file
//
//	[server]
//	listen = :8080
//	programs = ./programs
//	[runtime]
//	step_limit = 1000000
type Config struct {
	sections map[string]map[string]string
}

// Defaults returns the configuration used when no file is given
func Defaults() *Config {
	return &Config{sections: map[string]map[string]string{
		"server": {
			"listen":   ":8080",
			"programs": ".",
		},
		"storage": {
			"database": "edubasic.db",
		},
		"runtime": {
			"step_limit":  "1000000",
			"run_timeout": "30s",
		},
		"log": {
			"level": "warn",
		},
	}}
}

// Load reads a configuration file over the defaults
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if len(path) == 0 {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	defer f.Close()

	if err := cfg.Read(f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Read merges settings from rdr, later values win
func (c *Config) Read(rdr io.Reader) error {
	scanner := bufio.NewScanner(rdr)
	section := ""
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// skip blank lines and comments
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if c.sections[section] == nil {
				c.sections[section] = make(map[string]string)
			}
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 || section == "" {
			return fmt.Errorf("line %d: expected key = value inside a [section]", lineNum)
		}
		c.sections[section][strings.ToLower(strings.TrimSpace(parts[0]))] = strings.TrimSpace(parts[1])
	}

	return scanner.Err()
}

// Set changes a single value, flags use this to override the file
func (c *Config) Set(section, key, value string) {
	section = strings.ToLower(section)
	if c.sections[section] == nil {
		c.sections[section] = make(map[string]string)
	}
	c.sections[section][strings.ToLower(key)] = value
}

// String returns a value, def when it is not set
func (c *Config) String(section, key, def string) string {
	if v, ok := c.sections[strings.ToLower(section)][strings.ToLower(key)]; ok {
		return v
	}
	return def
}

// Int returns a value as an int, def when missing or malformed
func (c *Config) Int(section, key string, def int) int {
	v, err := strconv.Atoi(c.String(section, key, ""))
	if err != nil {
		return def
	}
	return v
}

// Duration returns a value as a time.Duration, def when missing or malformed
func (c *Config) Duration(section, key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(c.String(section, key, ""))
	if err != nil {
		return def
	}
	return v
}
