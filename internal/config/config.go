// Package config loads and validates the roster service's YAML
// configuration, following the teacher's environment-suffixed
// drop_in_config.<env>.yaml convention.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config is the top-level roster service configuration.
type Config struct {
	DatabaseDSN string `yaml:"databaseDSN" validate:"required"`
	RedisURL    string `yaml:"redisURL" validate:"required"`
	LogLevel    string `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`

	// PediatricDoctorRule is an RRULE string describing which calendar
	// dates raise mw_outpatient demand (§4.12); expanded per-month by
	// internal/calendar.ExpandPediatricDates before reaching the loader.
	PediatricDoctorRule string `yaml:"pediatricDoctorRule" validate:"omitempty"`

	SolverPrimaryBudgetSeconds    int `yaml:"solverPrimaryBudgetSeconds" validate:"omitempty,min=1"`
	SolverRelaxationBudgetSeconds int `yaml:"solverRelaxationBudgetSeconds" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv finds and loads the configuration file for env ("dev",
// "prod", ...), searching the working directory then the user's home
// directory.
func LoadWithEnv(env string) (*Config, error) {
	path, err := findConfigFile(env)
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates a configuration file at an explicit
// path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs struct-tag validation and then checks PediatricDoctorRule
// parses as a valid RRULE, the way the teacher's config validates its
// RotaOverride.RRule fields.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if cfg.PediatricDoctorRule != "" {
		if _, err := rrule.StrToRRule(cfg.PediatricDoctorRule); err != nil {
			return fmt.Errorf("invalid rrule for pediatricDoctorRule: %w", err)
		}
	}

	return nil
}

func findConfigFile(env string) (string, error) {
	name := fmt.Sprintf("roster_config.%s.yaml", env)

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("config file %s not found in working directory or home directory", name)
}
