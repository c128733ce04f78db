package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders how long a calculation or a program run
// took. Durations under a microsecond, including zero, read "< 1µs"; under a
// millisecond they are whole microseconds, under a second whole
// milliseconds, and longer runs are rounded to the millisecond.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
