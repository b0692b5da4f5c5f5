// Command yahaha runs D programs (.yahaha files) and hosts an interactive
// prompt. The interpreter core is I/O-free; this binary supplies the
// standard builtins, renders errors with source locations, and maps
// failures to exit codes: 0 on success, 1 on parse or runtime error, 2 on
// usage errors.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/yahaha-lang/yahaha"
)

const (
	appName     = "yahaha"
	historyFile = ".yahaha_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = "yahaha REPL\nCtrl+C clears the input, Ctrl+D exits. Type :quit to exit."

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	args := os.Args[1:]
	switch {
	case len(args) == 0:
		os.Exit(runREPL())
	case args[0] == "-h" || args[0] == "--help" || args[0] == "help":
		usage()
		os.Exit(0)
	case len(args) == 1:
		os.Exit(runFile(args[0]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s <file.yahaha>    Run a program.
  %s                  Start the REPL.

`, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func runFile(file string) int {
	srcBytes, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	src := string(srcBytes)

	prog, err := yahaha.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, yahaha.WrapErrorWithName(err, file, src))
		return 1
	}

	ip := yahaha.NewRuntime(os.Stdin, os.Stdout)
	if _, err := ip.Exec(prog); err != nil {
		fmt.Fprintln(os.Stderr, yahaha.WrapErrorWithName(err, file, src))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// repl accumulates prompt lines in pending until they parse as a complete
// program, then executes them against a persistent interpreter. Ctrl+C
// (liner's abort error) discards whatever is pending instead of killing
// the process.
type repl struct {
	ip      *yahaha.Interpreter
	term    *liner.State
	pending []string
}

func runREPL() int {
	r := &repl{
		ip:   yahaha.NewRuntime(os.Stdin, os.Stdout),
		term: liner.NewLiner(),
	}
	r.term.SetCtrlCAborts(true)
	r.loadHistory()
	defer func() {
		r.saveHistory()
		r.term.Close()
	}()

	fmt.Println(banner)
	for {
		line, err := r.term.Prompt(r.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			r.pending = nil
			continue
		}
		if err != nil {
			// Ctrl+D or a dead terminal ends the session.
			fmt.Println()
			return 0
		}
		if done := r.feed(line); done {
			return 0
		}
	}
}

func (r *repl) prompt() string {
	if len(r.pending) > 0 {
		return promptCont
	}
	return promptMain
}

// feed consumes one prompt line. It reports true when the session should
// end (the :quit command).
func (r *repl) feed(line string) bool {
	if len(r.pending) == 0 {
		switch cmd := strings.TrimSpace(line); {
		case cmd == "":
			return false
		case cmd == ":quit":
			return true
		case strings.HasPrefix(cmd, ":"):
			fmt.Println("unknown command. Type :quit to exit.")
			return false
		}
	}

	r.pending = append(r.pending, line)
	src := strings.Join(r.pending, "\n")

	prog, err := yahaha.Parse(src)
	if err != nil {
		var pe *yahaha.ParseError
		if errors.As(err, &pe) && pe.AtEOF {
			// Unterminated construct: keep collecting lines.
			return false
		}
		r.pending = nil
		fmt.Fprintln(os.Stderr, red(yahaha.WrapErrorWithName(err, "<repl>", src).Error()))
		return false
	}

	r.pending = nil
	r.term.AppendHistory(strings.Join(strings.Fields(src), " "))

	v, err := r.ip.Exec(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(yahaha.WrapErrorWithName(err, "<repl>", src).Error()))
		return false
	}
	fmt.Println(blue(yahaha.FormatValue(v)))
	return false
}

// History lives in the user's home directory; no home, no history.

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func (r *repl) loadHistory() {
	path := historyPath()
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	_, _ = r.term.ReadHistory(f)
	_ = f.Close()
}

func (r *repl) saveHistory() {
	path := historyPath()
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	_, _ = r.term.WriteHistory(f)
	_ = f.Close()
}
