package tui

// blockRunes are the eight levels of a one-row sparkline, lowest first.
var blockRunes = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleBlank is the empty braille cell; dots are OR-ed onto it.
const brailleBlank rune = 0x2800

// brailleDots holds the bit of each dot in a 2x4 braille cell, by column
// then row.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

// loadHistory keeps the latest load percentages, oldest first.
type loadHistory struct {
	samples []float64
	limit   int
}

func newLoadHistory(limit int) *loadHistory {
	return &loadHistory{limit: max(limit, 1)}
}

// Add records a sample clamped to 0..100 and drops the oldest ones beyond
// the limit.
func (h *loadHistory) Add(pct float64) {
	h.samples = append(h.samples, clampPercent(pct))
	h.trim()
}

// SetLimit changes how many samples are kept. Shrinking keeps the newest.
func (h *loadHistory) SetLimit(n int) {
	h.limit = max(n, 1)
	h.trim()
}

func (h *loadHistory) trim() {
	if extra := len(h.samples) - h.limit; extra > 0 {
		h.samples = append(h.samples[:0], h.samples[extra:]...)
	}
}

// Latest returns the newest sample, or 0 before the first one.
func (h *loadHistory) Latest() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

func (h *loadHistory) Samples() []float64 { return h.samples }
func (h *loadHistory) Len() int           { return len(h.samples) }
func (h *loadHistory) Limit() int         { return h.limit }
func (h *loadHistory) Clear()             { h.samples = h.samples[:0] }

// scaleToPeak maps values onto 0..100 against the largest one. An all-zero
// series stays at zero.
func scaleToPeak(values []float64) []float64 {
	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	out := make([]float64, len(values))
	if peak == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / peak * 100
	}
	return out
}

// blockLine renders percentages as one block rune each.
func blockLine(values []float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = blockRunes[int(clampPercent(v)/100*7)]
	}
	return string(runes)
}

// bitsLine renders the bit lengths of printed values relative to the
// largest so far, keeping the last width of them.
func bitsLine(bits []float64, width int) string {
	if width > 0 && len(bits) > width {
		bits = bits[len(bits)-width:]
	}
	return blockLine(scaleToPeak(bits))
}

// dotPlot draws percentages as braille dots, right aligned, each point
// spread over spread dot columns. Points that do not fit are dropped from
// the left.
func dotPlot(values []float64, spread, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	cols, height := width*2, rows*4
	spread = min(max(spread, 1), cols)

	visible := min(len(values), cols/spread)
	values = values[len(values)-visible:]
	offset := cols - visible*spread

	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, width)
		for c := range cells[r] {
			cells[r][c] = brailleBlank
		}
	}
	for i, v := range values {
		y := height - 1 - int(clampPercent(v)/100*float64(height-1))
		for dx := range spread {
			x := offset + i*spread + dx
			cells[y/4][x/2] |= brailleDots[x%2][y%4]
		}
	}

	out := make([]string, rows)
	for r, row := range cells {
		out[r] = string(row)
	}
	return out
}
