// Package config loads the dirsentry INI configuration file.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "directory_monitor.ini"

// DirectoryCheck is one monitored directory. Threshold stays a string here:
// a bad threshold abandons only its own check at evaluation time, so the
// loader must not reject the whole file over it.
type DirectoryCheck struct {
	Name      string
	Path      string
	Threshold string
}

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// EmailConfig holds notification addressing.
type EmailConfig struct {
	Recipients []string
}

// Config is the full parsed configuration for one run.
type Config struct {
	Directories []DirectoryCheck
	Email       EmailConfig
	SMTP        SMTPConfig
}

// Load reads and validates the configuration file at path. Directory checks
// are returned in file order. Any missing section or required key is an
// error; the caller must not run checks on a partial configuration.
func Load(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config

	for _, sec := range f.Sections() {
		if !strings.HasPrefix(sec.Name(), "directory:") {
			continue
		}
		name := strings.TrimPrefix(sec.Name(), "directory:")
		if name == "" {
			return nil, fmt.Errorf("config %s: directory section has no name", path)
		}
		for _, key := range []string{"path", "threshold"} {
			if !sec.HasKey(key) {
				return nil, fmt.Errorf("config %s: [%s] missing key %q", path, sec.Name(), key)
			}
		}
		cfg.Directories = append(cfg.Directories, DirectoryCheck{
			Name:      name,
			Path:      sec.Key("path").String(),
			Threshold: sec.Key("threshold").String(),
		})
	}

	email, err := f.GetSection("email")
	if err != nil {
		return nil, fmt.Errorf("config %s: missing [email] section", path)
	}
	if !email.HasKey("recipients") {
		return nil, fmt.Errorf("config %s: [email] missing key %q", path, "recipients")
	}
	for _, r := range strings.Split(email.Key("recipients").String(), ",") {
		if r = strings.TrimSpace(r); r != "" {
			cfg.Email.Recipients = append(cfg.Email.Recipients, r)
		}
	}
	if len(cfg.Email.Recipients) == 0 {
		return nil, fmt.Errorf("config %s: [email] recipients is empty", path)
	}

	smtp, err := f.GetSection("smtp")
	if err != nil {
		return nil, fmt.Errorf("config %s: missing [smtp] section", path)
	}
	for _, key := range []string{"host", "port", "username", "password"} {
		if !smtp.HasKey(key) {
			return nil, fmt.Errorf("config %s: [smtp] missing key %q", path, key)
		}
	}
	port, err := smtp.Key("port").Int()
	if err != nil {
		return nil, fmt.Errorf("config %s: [smtp] port: %w", path, err)
	}
	cfg.SMTP = SMTPConfig{
		Host:     smtp.Key("host").String(),
		Port:     port,
		Username: smtp.Key("username").String(),
		Password: smtp.Key("password").String(),
		UseTLS:   smtp.Key("useTLS").MustBool(false),
	}

	return &cfg, nil
}
