package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one flag for the completion generators.
type FlagCompletion struct {
	Long      string   // name without "--"
	Short     string   // name without "-"
	Help      string
	Values    []string // static suggestions; nil for booleans
	ValueName string   // value label; empty for booleans
	IsFile    bool
	IsAlgo    bool // values come from the algorithm list
}

// takesValue reports whether the flag consumes an argument.
func (f FlagCompletion) takesValue() bool {
	return f.ValueName != "" || f.IsFile || f.IsAlgo || len(f.Values) > 0
}

// flagRegistry lists every flag completed by the generated scripts.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Index to compute", ValueName: "number"},
	{Long: "kind", Help: "Sequence to compute", Values: []string{"fib", "fac"}, ValueName: "kind"},
	{Long: "algo", Help: "Algorithm to use", IsAlgo: true, ValueName: "algorithm"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "last-digits", Help: "Compute only the last K digits", ValueName: "digits"},
	{Long: "run", Help: "Run the demonstration program"},
	{Long: "limit", Help: "Upper bound of the demonstration loop", ValueName: "number"},
	{Long: "break-at", Help: "Index at which the loop breaks", ValueName: "number"},
	{Long: "pattern", Help: "Print pattern of the demonstration program", ValueName: "pattern"},
	{Long: "calculate", Short: "c", Help: "Display the calculated value"},
	{Long: "verbose", Short: "v", Help: "Display the full value"},
	{Long: "details", Short: "d", Help: "Show digits, bits and memory"},
	{Long: "quiet", Short: "q", Help: "Print only the result"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "repl", Help: "Start the interactive REPL"},
	{Long: "tui", Help: "Replay the program in a terminal viewer"},
	{Long: "serve", Help: "Start the HTTP server"},
	{Long: "addr", Help: "HTTP listen address", ValueName: "address"},
	{Long: "config", Help: "YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "calibrate", Help: "Calibrate the fac-split parallel threshold"},
	{Long: "auto-calibrate", Help: "Quick calibration when no profile exists"},
	{Long: "split-threshold", Help: "Parallel threshold of fac-split", ValueName: "number"},
	{Long: "calibration-profile", Help: "Calibration profile path", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: The destination of the script.
//   - shell: "bash", "zsh" or "fish".
//   - algorithms: The registered algorithm names.
//
// Returns:
//   - error: An error if the shell is unsupported or the write fails.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algorithms)
	case "zsh":
		script = zshCompletion(algorithms)
	case "fish":
		script = fishCompletion(algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion(algorithms []string) string {
	var opts []string
	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		var patterns []string
		if f.Long != "" {
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}
		opts = append(opts, patterns...)

		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, patterns...)
		case f.IsAlgo:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"${algorithms}\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(patterns, "|"))
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(patterns, "|"), strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for seqcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_seqcalc_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _seqcalc_completions seqcalc
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())
}

func zshCompletion(algorithms []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef seqcalc

# Zsh completion script for seqcalc
# Place this file in a directory listed in $fpath

_seqcalc() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_seqcalc "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))
}

func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		suffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, suffix)
}

func fishCompletion(algorithms []string) string {
	lines := []string{
		"# Fish completion script for seqcalc",
		"# Add this to ~/.config/fish/completions/seqcalc.fish",
		"",
		"complete -c seqcalc -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c seqcalc"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		if f.Long != "" {
			parts = append(parts, "-l "+f.Long)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsAlgo:
			parts = append(parts, fmt.Sprintf("-xa '%s all'", strings.Join(algorithms, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.takesValue():
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
