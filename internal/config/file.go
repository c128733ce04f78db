package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/seqcalc/internal/errors"
	"github.com/agbru/seqcalc/internal/sequence"
)

// FileConfig is the YAML configuration file. Absent keys leave the
// corresponding setting untouched.
type FileConfig struct {
	N          *uint64 `yaml:"n"`
	Kind       *string `yaml:"kind"`
	Algo       *string `yaml:"algo"`
	Timeout    *string `yaml:"timeout"`
	LastDigits *int    `yaml:"last_digits"`

	Program struct {
		Limit   *int    `yaml:"limit"`
		BreakAt *int    `yaml:"break_at"`
		Pattern *string `yaml:"pattern"`
	} `yaml:"program"`

	Output struct {
		Calculate *bool   `yaml:"calculate"`
		Verbose   *bool   `yaml:"verbose"`
		Details   *bool   `yaml:"details"`
		Quiet     *bool   `yaml:"quiet"`
		File      *string `yaml:"file"`
		NoColor   *bool   `yaml:"no_color"`
	} `yaml:"output"`

	Server struct {
		Addr *string `yaml:"addr"`
	} `yaml:"server"`

	Logging struct {
		Level *string `yaml:"level"`
	} `yaml:"logging"`

	Calibration struct {
		Auto           *bool   `yaml:"auto"`
		SplitThreshold *uint64 `yaml:"split_threshold"`
		Profile        *string `yaml:"profile"`
	} `yaml:"calibration"`

	timeout time.Duration
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected so typos surface as errors.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read config %s: %v", path, err)
	}
	return parseFile(path, data)
}

func parseFile(path string, data []byte) (*FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("failed to parse config %s: %v", path, err)
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return nil, apperrors.NewConfigError("config %s: invalid timeout %q", path, *fc.Timeout)
		}
		fc.timeout = d
	}
	return &fc, nil
}

// apply copies file values into cfg for every flag not set on the command
// line.
func (fc *FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	set := func(names ...string) bool { return isFlagSetAny(fs, names...) }

	if fc.N != nil && !set("n") {
		cfg.N = *fc.N
	}
	if fc.Kind != nil && !set("kind") {
		cfg.Kind = kindOf(*fc.Kind)
	}
	if fc.Algo != nil && !set("algo") {
		cfg.Algo = *fc.Algo
	}
	if fc.Timeout != nil && !set("timeout") {
		cfg.Timeout = fc.timeout
	}
	if fc.LastDigits != nil && !set("last-digits") {
		cfg.LastDigits = *fc.LastDigits
	}
	if fc.Program.Limit != nil && !set("limit") {
		cfg.Limit = *fc.Program.Limit
	}
	if fc.Program.BreakAt != nil && !set("break-at") {
		cfg.BreakAt = *fc.Program.BreakAt
	}
	if fc.Program.Pattern != nil && !set("pattern") {
		cfg.Pattern = *fc.Program.Pattern
	}
	if fc.Output.Calculate != nil && !set("calculate", "c") {
		cfg.ShowValue = *fc.Output.Calculate
	}
	if fc.Output.Verbose != nil && !set("verbose", "v") {
		cfg.Verbose = *fc.Output.Verbose
	}
	if fc.Output.Details != nil && !set("details", "d") {
		cfg.Details = *fc.Output.Details
	}
	if fc.Output.Quiet != nil && !set("quiet", "q") {
		cfg.Quiet = *fc.Output.Quiet
	}
	if fc.Output.File != nil && !set("output", "o") {
		cfg.OutputFile = *fc.Output.File
	}
	if fc.Output.NoColor != nil && !set("no-color") {
		cfg.NoColor = *fc.Output.NoColor
	}
	if fc.Server.Addr != nil && !set("addr") {
		cfg.Addr = *fc.Server.Addr
	}
	if fc.Logging.Level != nil && !set("log-level") {
		cfg.LogLevel = *fc.Logging.Level
	}
	if fc.Calibration.Auto != nil && !set("auto-calibrate") {
		cfg.AutoCalibrate = *fc.Calibration.Auto
	}
	if fc.Calibration.SplitThreshold != nil && !set("split-threshold") {
		cfg.SplitThreshold = *fc.Calibration.SplitThreshold
	}
	if fc.Calibration.Profile != nil && !set("calibration-profile") {
		cfg.CalibrationProfile = *fc.Calibration.Profile
	}
}

func kindOf(s string) sequence.Kind {
	return sequence.Kind(strings.ToLower(strings.TrimSpace(s)))
}

