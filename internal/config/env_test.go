package config

import (
	"io"
	"testing"
	"time"

	"github.com/agbru/seqcalc/internal/sequence"
)

// Environment tests use t.Setenv and therefore do not run in parallel.

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SEQCALC_N", "15")
	t.Setenv("SEQCALC_KIND", "fac")
	t.Setenv("SEQCALC_TIMEOUT", "1m")
	t.Setenv("SEQCALC_QUIET", "yes")
	t.Setenv("SEQCALC_BREAK_AT", "11")

	cfg, err := ParseConfig("seqcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != 15 || cfg.Kind != sequence.KindFactorial || cfg.Timeout != time.Minute || !cfg.Quiet || cfg.BreakAt != 11 {
		t.Errorf("environment not applied: %+v", cfg)
	}
}

func TestEnvOverrides_FlagsWin(t *testing.T) {
	t.Setenv("SEQCALC_N", "15")
	t.Setenv("SEQCALC_QUIET", "true")

	cfg, err := ParseConfig("seqcalc", []string{"-n", "7", "-q=false"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != 7 || cfg.Quiet {
		t.Errorf("flags should take precedence: N=%d Quiet=%v", cfg.N, cfg.Quiet)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("SEQCALC_N", "many")
	t.Setenv("SEQCALC_VERBOSE", "perhaps")

	cfg, err := ParseConfig("seqcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.N != DefaultN || cfg.Verbose {
		t.Errorf("invalid values should be ignored: %+v", cfg)
	}
}

func TestParseBoolEnv(t *testing.T) {
	cases := map[string]bool{"TRUE": true, "1": true, "yes": true, "false": false, "0": false, "No": false}
	for in, want := range cases {
		if got := parseBoolEnv(in, !want); got != want {
			t.Errorf("parseBoolEnv(%q) = %v, want %v", in, got, want)
		}
	}
	if !parseBoolEnv("maybe", true) {
		t.Error("unrecognized values should return the default")
	}
}

func TestEnvOverrides_SplitThreshold(t *testing.T) {
	t.Setenv("SEQCALC_SPLIT_THRESHOLD", "1024")

	cfg, err := ParseConfig("seqcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.SplitThreshold != 1024 {
		t.Errorf("SplitThreshold = %d, want 1024", cfg.SplitThreshold)
	}

	cfg, err = ParseConfig("seqcalc", []string{"--split-threshold", "64"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.SplitThreshold != 64 {
		t.Errorf("flag should win: SplitThreshold = %d", cfg.SplitThreshold)
	}
}
