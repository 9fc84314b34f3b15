package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Load builds the configuration from the environment and validates it.
// Every malformed variable is reported, not just the first.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// envVar is the parsed form of a field's env, envAlt, default and
// required tags.
type envVar struct {
	name, alt, fallback string
	required            bool
}

func envVarOf(f reflect.StructField) (envVar, bool) {
	name, ok := f.Tag.Lookup("env")
	if !ok || name == "" {
		return envVar{}, false
	}
	return envVar{
		name:     name,
		alt:      f.Tag.Get("envAlt"),
		fallback: f.Tag.Get("default"),
		required: f.Tag.Get("required") == "true",
	}, true
}

// resolve returns the raw value for the variable. Empty counts as unset.
func (e envVar) resolve() (string, error) {
	for _, key := range []string{e.name, e.alt} {
		if key == "" {
			continue
		}
		if v := os.Getenv(key); v != "" {
			return v, nil
		}
	}
	if e.required {
		return "", fmt.Errorf("required environment variable %s is not set", e.name)
	}
	return e.fallback, nil
}

// loadStruct fills tagged fields of v, descending into nested structs.
func loadStruct(v reflect.Value) error {
	var errs []error
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f, fv := t.Field(i), v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if f.Type.Kind() == reflect.Struct {
			errs = append(errs, loadStruct(fv))
			continue
		}
		ev, ok := envVarOf(f)
		if !ok {
			continue
		}
		raw, err := ev.resolve()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if raw == "" {
			continue
		}
		if err := decode(fv, raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s=%q: %w", ev.name, raw, err))
		}
	}
	return errors.Join(errs...)
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	stringsType  = reflect.TypeOf([]string(nil))
)

// decode converts raw into the field's type. Lists are comma-separated.
func decode(fv reflect.Value, raw string) error {
	switch {
	case fv.Type() == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		fv.SetInt(int64(d))
	case fv.Type() == stringsType:
		var list []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		fv.Set(reflect.ValueOf(list))
	case fv.Kind() == reflect.String:
		fv.SetString(raw)
	case fv.CanInt():
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case fv.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// rule is one validation check; msg is reported when ok is false.
type rule struct {
	ok  bool
	msg string
}

func positive(d time.Duration, name string) rule {
	return rule{d > 0, name + " must be positive"}
}

func atLeastOne(n int, name string) rule {
	return rule{n > 0, name + " must be positive"}
}

// Validate reports every rule the configuration breaks.
func (c *Config) Validate() error {
	s, u, ses, db := c.Server, c.Upload, c.Session, c.Database
	rules := []rule{
		{s.Port > 0 && s.Port <= 65535, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", s.Port)},
		{s.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative"},
		{s.WriteTimeout >= 0, "SERVER_WRITE_TIMEOUT must be non-negative"},
		positive(s.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT"),
		positive(s.RequestTimeout, "SERVER_REQUEST_TIMEOUT"),

		{u.MaxFileSize > 0, "UPLOAD_MAX_FILE_SIZE must be positive"},
		atLeastOne(u.MaxConcurrent, "UPLOAD_MAX_CONCURRENT"),
		positive(u.MaxWaitTime, "UPLOAD_MAX_WAIT_TIME"),
		positive(u.Timeout, "UPLOAD_TIMEOUT"),

		positive(ses.TTL, "SESSION_TTL"),
		positive(ses.SweepInterval, "SESSION_SWEEP_INTERVAL"),
		atLeastOne(ses.Max, "SESSION_MAX"),
		{ses.CookieName != "", "SESSION_COOKIE_NAME must not be empty"},

		{!c.Rate.Enabled || c.Rate.RequestsPerMinute > 0,
			"RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled"},
		{!c.Security.RequireAPIKey || len(c.Security.APIKeys) > 0,
			"REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth"},
		{slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Logging.Level)),
			fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)},
		{slices.Contains([]string{"text", "json"}, strings.ToLower(c.Logging.Format)),
			fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)},
	}

	// The query source is only checked when it is switched on.
	if db.Enabled() {
		rules = append(rules,
			atLeastOne(db.MaxConns, "DB_MAX_CONNS"),
			rule{db.MinConns >= 0, "DB_MIN_CONNS must be non-negative"},
			rule{db.MaxConns >= db.MinConns,
				fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", db.MaxConns, db.MinConns)},
			rule{strings.TrimSpace(db.Query) != "", "DB_PROSPECT_QUERY must not be empty when DATABASE_URL is set"},
			positive(db.QueryTimeout, "DB_QUERY_TIMEOUT"),
		)
	}

	var failed []string
	for _, r := range rules {
		if !r.ok {
			failed = append(failed, r.msg)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(failed, "\n  - "))
}

// String returns a safe string representation of the config for logging.
// The database URL and API keys are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Upload: {MaxFileSize: %d, MaxConcurrent: %d}, ",
		c.Upload.MaxFileSize, c.Upload.MaxConcurrent))
	b.WriteString(fmt.Sprintf("Session: {TTL: %s, Max: %d}, ", c.Session.TTL, c.Session.Max))
	if c.Database.Enabled() {
		b.WriteString(fmt.Sprintf("Database: {URL: [MASKED], MaxConns: %d}, ", c.Database.MaxConns))
	} else {
		b.WriteString("Database: {disabled}, ")
	}
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute))
	b.WriteString(fmt.Sprintf("Security: {RequireAPIKey: %v, APIKeys: %d}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys)))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
