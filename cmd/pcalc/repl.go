package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/parsec/internal/calc"
	"github.com/pterm/pterm"
)

// repl starts interactive mode.
func (s *session) repl() error {
	rl, err := readline.New(s.cfg.Prompt)
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to pcalc, using the " + s.calc.Lexer().String() + " lexer")
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := s.execute(line); quit {
			break
		}
	}
	println("Good bye!")
	return nil
}

// execute runs a command or evaluates a line of input. It returns true if
// the session should end.
func (s *session) execute(line string) bool {
	if !strings.HasPrefix(line, ":") {
		if v, err := s.eval(line); err != nil {
			pterm.Error.Println(err.Error())
		} else {
			pterm.Info.Println(formatValue(v))
		}
		return false
	}
	cmd, arg, _ := strings.Cut(line[1:], " ")
	switch cmd {
	case "quit", "q":
		return true
	case "vars":
		s.printVars()
	case "tree":
		if err := s.tree(arg); err != nil {
			pterm.Error.Println(err.Error())
		}
	default:
		pterm.Error.Println("unknown command :" + cmd)
	}
	return false
}

func (s *session) printVars() {
	data := pterm.TableData{{"Name", "Value"}}
	s.calc.Globals().Tags().Each(func(name string, tag *calc.Tag) {
		data = append(data, []string{name, formatValue(tag.Value)})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// tree displays the AST of input as a tree on the terminal.
func (s *session) tree(input string) error {
	prog, err := s.calc.Parse(input)
	if err != nil {
		return err
	}
	ll := leveledProgram(prog)
	tracer().Debugf("|ll| = %d", len(ll))
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Render()
}

func leveledProgram(prog calc.Program) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: "program"}}
	for _, stmt := range prog {
		switch st := stmt.(type) {
		case calc.Let:
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "let " + st.Name})
			ll = leveledExpr(st.X, ll, 2)
		case calc.ExprStmt:
			ll = leveledExpr(st.X, ll, 1)
		}
	}
	return ll
}

func leveledExpr(x calc.Expr, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: exprLabel(x)})
	for _, op := range x.Operands() {
		ll = leveledExpr(op, ll, level+1)
	}
	return ll
}

func exprLabel(x calc.Expr) string {
	switch e := x.(type) {
	case calc.Unary:
		return e.Op
	case calc.Binary:
		return e.Op
	case calc.Call:
		return e.Fn + "()"
	}
	return x.String()
}
