package tui

import (
	"math/big"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLoadHistory_KeepsNewestWithinLimit(t *testing.T) {
	h := newLoadHistory(3)
	for _, v := range []float64{10, 20, 30, 40} {
		h.Add(v)
	}
	if got := h.Samples(); !slices.Equal(got, []float64{20, 30, 40}) {
		t.Errorf("Samples() = %v, want [20 30 40]", got)
	}
	if h.Latest() != 40 {
		t.Errorf("Latest() = %f, want 40", h.Latest())
	}
}

func TestLoadHistory_ClampsSamples(t *testing.T) {
	h := newLoadHistory(4)
	h.Add(-5)
	h.Add(140)
	if got := h.Samples(); !slices.Equal(got, []float64{0, 100}) {
		t.Errorf("Samples() = %v, want [0 100]", got)
	}
}

func TestLoadHistory_SetLimit(t *testing.T) {
	h := newLoadHistory(5)
	for v := range 5 {
		h.Add(float64(v))
	}

	h.SetLimit(2)
	if got := h.Samples(); !slices.Equal(got, []float64{3, 4}) {
		t.Errorf("after shrink Samples() = %v, want [3 4]", got)
	}

	h.SetLimit(10)
	h.Add(5)
	if h.Len() != 3 || h.Limit() != 10 {
		t.Errorf("after grow Len=%d Limit=%d, want 3 and 10", h.Len(), h.Limit())
	}

	h.SetLimit(0)
	if h.Limit() != 1 || h.Latest() != 5 {
		t.Errorf("zero limit should keep one sample: Limit=%d Latest=%f", h.Limit(), h.Latest())
	}
}

func TestLoadHistory_Clear(t *testing.T) {
	h := newLoadHistory(3)
	h.Add(50)
	h.Clear()
	if h.Len() != 0 || h.Latest() != 0 {
		t.Errorf("expected empty history, got %v", h.Samples())
	}
}

func TestScaleToPeak(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", nil, []float64{}},
		{"all zero", []float64{0, 0}, []float64{0, 0}},
		{"peak last", []float64{2, 4, 8}, []float64{25, 50, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scaleToPeak(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("scaleToPeak(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlockLine(t *testing.T) {
	if got := blockLine(nil); got != "" {
		t.Errorf("blockLine(nil) = %q, want empty", got)
	}
	if got := blockLine([]float64{0, 50, 100, -10, 250}); got != "▁▄█▁█" {
		t.Errorf("blockLine = %q, want %q", got, "▁▄█▁█")
	}
}

// The printed values of the default program are 1 2 5 13 34 89 233 610.
func TestBitsLine_DefaultProgram(t *testing.T) {
	var bits []float64
	for _, v := range []int64{1, 2, 5, 13, 34, 89, 233, 610} {
		bits = append(bits, float64(big.NewInt(v).BitLen()))
	}
	// 1 2 3 4 6 7 8 10 bits against a peak of 10.
	if got := bitsLine(bits, 0); got != "▁▂▃▃▅▅▆█" {
		t.Errorf("bitsLine = %q, want %q", got, "▁▂▃▃▅▅▆█")
	}
	if got := bitsLine(bits, 3); got != "▅▆█" {
		t.Errorf("bitsLine with width 3 = %q, want %q", got, "▅▆█")
	}
}

func TestDotPlot_Empty(t *testing.T) {
	if dotPlot(nil, 2, 10, 2) != nil {
		t.Error("expected nil for no values")
	}
	if dotPlot([]float64{50}, 2, 0, 2) != nil {
		t.Error("expected nil for zero width")
	}
}

func TestDotPlot_RightAlignedAndSpread(t *testing.T) {
	rows := dotPlot([]float64{100}, 2, 3, 1)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	runes := []rune(rows[0])
	if len(runes) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(runes))
	}
	if runes[0] != brailleBlank || runes[1] != brailleBlank {
		t.Errorf("left cells should be blank, got %q", rows[0])
	}
	// A full value sits on the top dot row of both columns of the last cell.
	if want := brailleBlank | 0x01 | 0x08; runes[2] != want {
		t.Errorf("last cell = %U, want %U", runes[2], want)
	}
}

func TestDotPlot_DropsOldestPoints(t *testing.T) {
	// Width 1 holds a single point spread over two columns.
	rows := dotPlot([]float64{100, 0}, 2, 1, 1)
	if want := string(brailleBlank | 0x40 | 0x80); rows[0] != want {
		t.Errorf("expected only the newest point on the bottom row, got %q", rows[0])
	}
}

func TestDotPlot_RowCount(t *testing.T) {
	rows := dotPlot([]float64{0, 25, 50, 75, 100}, 2, 8, 3)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if utf8.RuneCountInString(r) != 8 {
			t.Errorf("row %q should be 8 cells wide", r)
		}
	}
	if strings.Trim(strings.Join(rows, ""), string(brailleBlank)) == "" {
		t.Error("expected some dots to be plotted")
	}
}
