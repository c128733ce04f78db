package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"fac-iter", "fib-iter"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"_seqcalc_completions", "complete -F _seqcalc_completions seqcalc", "fac-iter fib-iter all", "--kind)", "fib fac", "--break-at"}},
		{"zsh", []string{"#compdef seqcalc", "algorithms=(fac-iter fib-iter all)", "'(-c --calculate)'{-c,--calculate}'[Display the calculated value]'", "{-o,--output}'[Output file path]:file:_files"}},
		{"fish", []string{"complete -c seqcalc -f", "-l algo", "-xa 'fac-iter fib-iter all'", "-s o -l output", "-rF"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("GenerateCompletion(%q) error: %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script should contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "powershell", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("expected an unsupported shell error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerateCompletion_WriteError(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(failingWriter{}, "bash", nil); err == nil {
		t.Error("expected the write error to be returned")
	}
}

func TestZshArgEntry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		flag FlagCompletion
		want string
	}{
		{FlagCompletion{Short: "n", Help: "Index", ValueName: "number"}, "        '-n[Index]:number:'"},
		{FlagCompletion{Long: "repl", Help: "REPL"}, "        '--repl[REPL]'"},
		{FlagCompletion{Long: "kind", Help: "Kind", Values: []string{"fib", "fac"}, ValueName: "kind"}, "        '--kind[Kind]:kind:(fib fac)'"},
	}
	for _, tt := range tests {
		if got := zshArgEntry(tt.flag); got != tt.want {
			t.Errorf("zshArgEntry(%+v) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}
