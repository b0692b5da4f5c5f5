// runtime.go — the standard host builtins.
//
// The core knows nothing about I/O; this file is the reference host
// wiring. NewRuntime returns an interpreter whose global environment
// carries the builtins programs expect: print, println, assert, readInt,
// readReal, readString. All of them go through the same RegisterBuiltin
// hook available to any embedder.
package yahaha

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NewRuntime returns an interpreter with the standard builtins registered,
// reading from in and writing to out.
func NewRuntime(in io.Reader, out io.Writer) *Interpreter {
	ip := NewInterpreter()
	words := bufio.NewScanner(in)
	words.Split(bufio.ScanWords)

	// next yields the next whitespace-delimited input token.
	next := func() (string, error) {
		if !words.Scan() {
			if err := words.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return words.Text(), nil
	}

	ip.RegisterBuiltin("print", func(args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if a.Tag == VTStr {
				parts[i] = a.Data.(string)
			} else {
				parts[i] = FormatValue(a)
			}
		}
		if _, err := io.WriteString(out, strings.Join(parts, " ")); err != nil {
			return Empty, err
		}
		return Empty, nil
	})

	ip.RegisterBuiltin("println", func(args []Value) (Value, error) {
		if len(args) != 0 {
			return Empty, &RuntimeError{Kind: ErrNumArgs, Msg: fmt.Sprintf("expected 0 arguments, got %d", len(args))}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return Empty, err
		}
		return Empty, nil
	})

	ip.RegisterBuiltin("assert", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Empty, &RuntimeError{Kind: ErrNumArgs, Msg: fmt.Sprintf("expected 1 argument, got %d", len(args))}
		}
		v := args[0]
		if v.Tag != VTBool {
			return Empty, &RuntimeError{Kind: ErrTypeMismatch, Msg: fmt.Sprintf("assert expects a bool, found %s", v.Type())}
		}
		if !v.Data.(bool) {
			return Empty, &RuntimeError{Kind: ErrDefault, Msg: "assertion failed"}
		}
		return Empty, nil
	})

	ip.RegisterBuiltin("readInt", func(args []Value) (Value, error) {
		if len(args) != 0 {
			return Empty, &RuntimeError{Kind: ErrNumArgs, Msg: fmt.Sprintf("expected 0 arguments, got %d", len(args))}
		}
		w, err := next()
		if err != nil {
			return Empty, fmt.Errorf("readInt: %v", err)
		}
		n, err := strconv.ParseInt(w, 10, 64)
		if err != nil {
			return Empty, fmt.Errorf("readInt: %q is not an integer", w)
		}
		return Int(n), nil
	})

	ip.RegisterBuiltin("readReal", func(args []Value) (Value, error) {
		if len(args) != 0 {
			return Empty, &RuntimeError{Kind: ErrNumArgs, Msg: fmt.Sprintf("expected 0 arguments, got %d", len(args))}
		}
		w, err := next()
		if err != nil {
			return Empty, fmt.Errorf("readReal: %v", err)
		}
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return Empty, fmt.Errorf("readReal: %q is not a real", w)
		}
		return Real(f), nil
	})

	ip.RegisterBuiltin("readString", func(args []Value) (Value, error) {
		if len(args) != 0 {
			return Empty, &RuntimeError{Kind: ErrNumArgs, Msg: fmt.Sprintf("expected 0 arguments, got %d", len(args))}
		}
		w, err := next()
		if err != nil {
			return Empty, fmt.Errorf("readString: %v", err)
		}
		return Str(w), nil
	})

	return ip
}
