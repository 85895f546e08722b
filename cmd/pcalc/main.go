package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/npillmayer/parsec/internal/calc"
	"github.com/npillmayer/parsec/parser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// flags overriding the config file
type flags struct {
	config  string
	trace   string
	lexer   string
	timeout time.Duration
	tree    bool
}

func main() {
	var f flags
	rootCmd := &cobra.Command{
		Use:           "pcalc",
		Short:         "Calculator built with parser combinators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&f.config, "config", "", "config file (TOML or YAML)")
	rootCmd.PersistentFlags().StringVar(&f.trace, "trace", "", "trace level [Debug|Info|Error]")
	rootCmd.PersistentFlags().StringVar(&f.lexer, "lexer", "", "lexer [combinator|lexmachine]")
	rootCmd.PersistentFlags().DurationVar(&f.timeout, "timeout", 0, "timeout for a single evaluation")
	rootCmd.PersistentFlags().BoolVar(&f.tree, "tree", false, "display the AST of every input")

	evalCmd := &cobra.Command{
		Use:   "eval [input]",
		Short: "Evaluate input given as arguments or on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd, &f)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				input = string(data)
			}
			v, err := s.eval(input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd, &f)
			if err != nil {
				return err
			}
			return s.repl()
		},
	}
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replCmd)

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// session is a calculator together with its settings.
type session struct {
	cfg  *Config
	calc *calc.Calculator
}

func setup(cmd *cobra.Command, f *flags) (*session, error) {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return nil, err
	}
	fl := cmd.Flags()
	if fl.Changed("trace") {
		cfg.Trace = f.trace
	}
	if fl.Changed("lexer") {
		cfg.Lexer = f.lexer
	}
	if fl.Changed("timeout") {
		cfg.Timeout.Duration = f.timeout
	}
	if fl.Changed("tree") {
		cfg.Tree = f.tree
	}
	level := tracing.TraceLevelFromString(cfg.Trace)
	for _, key := range []string{"parsec.pcalc", "parsec.calc", "parsec.parser", "parsec.scanner"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", cfg.Trace)
	kind, err := calc.ParseLexerKind(cfg.Lexer)
	if err != nil {
		return nil, err
	}
	opts := []calc.Option{calc.WithLexer(kind), calc.WithSourceName("input")}
	if level == tracing.LevelDebug {
		opts = append(opts, calc.WithHook(parser.TraceHook()))
	}
	c, err := calc.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create calculator: %w", err)
	}
	for name, v := range cfg.Vars {
		c.Define(name, v)
	}
	return &session{cfg: cfg, calc: c}, nil
}

func (s *session) eval(input string) (float64, error) {
	if s.cfg.Tree {
		if err := s.tree(input); err != nil {
			return 0, err
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout.Duration)
	defer cancel()
	return s.calc.EvalContext(ctx, input)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  =",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
