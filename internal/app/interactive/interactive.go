package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MOYARU/storyscan/internal/app/output"
	"github.com/MOYARU/storyscan/internal/app/scan"
	"github.com/MOYARU/storyscan/internal/app/ui"
	"github.com/MOYARU/storyscan/internal/checks/registry"
	"github.com/MOYARU/storyscan/internal/config"
	msges "github.com/MOYARU/storyscan/internal/messages"
	"github.com/MOYARU/storyscan/internal/report"
)

// Shell is the line-oriented prompt started when storyscan runs without a
// feed argument.
type Shell struct {
	in         io.Reader
	out        io.Writer
	policyPath string
	palette    ui.Palette
}

func NewShell(in io.Reader, out io.Writer, policyPath string) *Shell {
	if policyPath == "" {
		policyPath = config.DefaultPolicyPath
	}
	return &Shell{in: in, out: out, policyPath: policyPath, palette: ui.PaletteFor(out)}
}

// Run reads commands until exit, EOF or ctx is canceled.
func (s *Shell) Run(ctx context.Context, banner string) {
	ui.PrintGradientAsciiArt(s.out)
	if banner != "" {
		fmt.Fprintln(s.out, banner)
	}
	fmt.Fprintln(s.out, s.palette.Paint(ui.ColorGray, msges.GetUIMessage("InteractiveWelcome")))

	sc := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.palette.Paint(ui.ColorGray, "storyscan > "))
		if !sc.Scan() || ctx.Err() != nil {
			fmt.Fprintln(s.out)
			return
		}
		if s.Execute(ctx, sc.Text()) {
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(ctx context.Context, input string) bool {
	parts, err := splitArgs(input)
	if err != nil {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, err.Error()))
		return false
	}
	if len(parts) == 0 {
		return false
	}

	command, args := parts[0], parts[1:]
	switch command {
	case "exit", "quit":
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorGray, msges.GetUIMessage("InteractiveExit")))
		return true
	case "clear", "cls":
		fmt.Fprint(s.out, "\033[H\033[2J")
	case "help":
		s.printHelp()
	case "scan":
		s.handleScan(ctx, command, args)
	case "checks":
		output.PrintChecks(s.out, registry.DefaultChecks())
	case "policy":
		s.handlePolicy(args)
	default:
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, msges.GetUIMessage("InteractiveErrorUnknown", command)))
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, s.palette.Paint(ui.ColorWhite, msges.GetUIMessage("InteractiveHelp")))
	for _, line := range []string{
		"  scan <feed> [--json] [--html] [--workers N] [--tenant \"NAME\"]",
		"  checks",
		"  policy show | set <key> <value>",
		"  policy set redaction_patterns \"<regex>\" ...",
		"  help",
		"  clear / cls",
		"  exit / quit",
	} {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorGray, line))
	}
}

func (s *Shell) handleScan(ctx context.Context, command string, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, msges.GetUIMessage("InteractiveErrorFeed", command)))
		return
	}

	opts, err := parseScanFlags(args[1:])
	if err != nil {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, err.Error()))
		return
	}
	opts.ConfigPath = s.policyPath
	opts.Out = s.out

	if err := scan.RunScan(ctx, args[0], opts); err != nil {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, msges.GetUIMessage("InteractiveScanFailed", err)))
	}
}

// flag parsing helper
func parseScanFlags(args []string) (scan.Options, error) {
	var opts scan.Options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			opts.JSONOutput = true
		case "--html":
			opts.HTMLOutput = true
		case "--workers":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--workers requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return opts, fmt.Errorf("--workers must be integer >= 1")
			}
			opts.Workers = n
			i++
		case "--tenant":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--tenant requires a value")
			}
			opts.Tenant = args[i+1]
			i++
		default:
			return opts, fmt.Errorf("unknown flag: %s", args[i])
		}
	}
	return opts, nil
}

func (s *Shell) handlePolicy(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, "Usage: policy show | set <key> <value>"))
		return
	}

	switch args[0] {
	case "show":
		p, err := config.LoadPolicy(s.policyPath)
		if err != nil {
			fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, err.Error()))
			return
		}
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorGreen, fmt.Sprintf("Policy (%s):", s.policyPath)))
		fmt.Fprintf(s.out, " - workers: %d\n", p.Workers)
		fmt.Fprintf(s.out, " - log_level: %s\n", p.LogLevel)
		fmt.Fprintf(s.out, " - log_file: %s\n", p.LogFile)
		fmt.Fprintf(s.out, " - redact_output: %v\n", p.RedactOutput)
		fmt.Fprintf(s.out, " - redaction_patterns: %s\n", strings.Join(p.RedactionPatterns, ", "))
		fmt.Fprintf(s.out, " - disabled_checks: %s\n", strings.Join(p.DisabledChecks, ", "))
		fmt.Fprintf(s.out, " - serve_addr: %s\n", p.ServeAddr)
		fmt.Fprintf(s.out, " - fail_under: %.1f\n", p.FailUnder)
	case "set":
		if len(args) < 3 {
			fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, "Usage: policy set <key> <value>"))
			return
		}
		if err := updatePolicyKey(s.policyPath, args[1], args[2:]); err != nil {
			fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, msges.GetUIMessage("PolicyUpdateFailed", err)))
			return
		}
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorGreen, msges.GetUIMessage("PolicyUpdated", args[1], s.policyPath)))
	default:
		fmt.Fprintln(s.out, s.palette.Paint(ui.ColorRed, "Unknown policy command: "+args[0]))
	}
}

// updatePolicyKey sets one policy key. Most keys take the arguments joined
// by spaces; redaction_patterns takes one pattern per argument.
func updatePolicyKey(path, key string, values []string) error {
	p, err := config.LoadPolicy(path)
	if err != nil {
		return err
	}
	value := strings.Join(values, " ")
	switch key {
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("workers must be integer >= 1")
		}
		p.Workers = n
	case "log_level":
		p.LogLevel = strings.ToLower(strings.TrimSpace(value))
	case "log_file":
		p.LogFile = strings.TrimSpace(value)
	case "redact_output":
		b, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return fmt.Errorf("redact_output must be true/false")
		}
		p.RedactOutput = b
	case "disabled_checks":
		p.DisabledChecks = splitList(value)
	case "redaction_patterns":
		var patterns []string
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				patterns = append(patterns, v)
			}
		}
		if _, rejected := report.NewSanitizer(patterns); len(rejected) > 0 {
			return fmt.Errorf("invalid redaction pattern: %s", strings.Join(rejected, ", "))
		}
		p.RedactionPatterns = patterns
	case "serve_addr":
		p.ServeAddr = strings.TrimSpace(value)
	case "fail_under":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 10 {
			return fmt.Errorf("fail_under must be a number between 0 and 10")
		}
		p.FailUnder = f
	default:
		return fmt.Errorf("unknown policy key: %s", key)
	}
	return config.SavePolicy(path, p)
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// splitArgs splits a command line on spaces. Single or double quotes group
// words into one argument and may produce an empty one.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
