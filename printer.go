// printer.go — deterministic source rendering for ASTs and values.
//
// FormatProgram prints a parsed program back to D source such that
// re-parsing yields an equivalent AST. Parenthesization is derived from
// node precedence, so grouping parens from the original source are not
// preserved verbatim, only their effect. "loop" sugar prints in its
// desugared "while true loop" form.
package yahaha

import (
	"strconv"
	"strings"
)

// FormatProgram renders prog as D source text.
func FormatProgram(prog *Program) string {
	var b strings.Builder
	writeStmts(&b, prog.Stmts, 0)
	return b.String()
}

func writeStmts(b *strings.Builder, stmts []Stmt, indent int) {
	for _, s := range stmts {
		writeStmt(b, s, indent)
	}
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("    ")
	}
}

func writeStmt(b *strings.Builder, s Stmt, indent int) {
	writeIndent(b, indent)
	switch st := s.(type) {
	case *Decl:
		b.WriteString("var ")
		b.WriteString(st.Name)
		if st.Init != nil {
			b.WriteString(" := ")
			b.WriteString(formatExpr(st.Init, 0))
		}

	case *Assign:
		b.WriteString(formatExpr(st.Target, 0))
		b.WriteString(" := ")
		b.WriteString(formatExpr(st.Value, 0))

	case *ExprStmt:
		b.WriteString(formatExpr(st.X, 0))

	case *If:
		b.WriteString("if ")
		b.WriteString(formatExpr(st.Cond, 0))
		b.WriteString(" then\n")
		writeStmts(b, st.Then, indent+1)
		if len(st.Else) > 0 {
			writeIndent(b, indent)
			b.WriteString("else\n")
			writeStmts(b, st.Else, indent+1)
		}
		writeIndent(b, indent)
		b.WriteString("end")

	case *While:
		b.WriteString("while ")
		b.WriteString(formatExpr(st.Cond, 0))
		b.WriteString(" loop\n")
		writeStmts(b, st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end")

	case *For:
		b.WriteString("for ")
		b.WriteString(st.Name)
		b.WriteString(" in ")
		b.WriteString(formatExpr(st.Iter, 0))
		if st.Hi != nil {
			b.WriteString(" .. ")
			b.WriteString(formatExpr(st.Hi, 0))
		}
		b.WriteString(" loop\n")
		writeStmts(b, st.Body, indent+1)
		writeIndent(b, indent)
		b.WriteString("end")
	}
	b.WriteString(";\n")
}

// exprPrec mirrors the parser's binding powers. Literals and delimited
// forms never need parens; function literals almost always do, since a
// trailing "=> expr" body would swallow any operator to the right.
func exprPrec(e Expr) int {
	switch ex := e.(type) {
	case *Binary:
		bp, _ := lbp(binaryTok(ex.Op))
		return bp
	case *Unary:
		return 50
	case *IsTest, *Call, *Index, *Member:
		return 55
	case *FuncLit:
		return 5
	default:
		return 100
	}
}

// binaryTok maps an operator spelling back to its token type for lbp.
func binaryTok(op string) TokenType {
	switch op {
	case "and":
		return AND
	case "or":
		return OR
	case "xor":
		return XOR
	case "=":
		return EQ
	case "/=":
		return NEQ
	case "<":
		return LESS
	case "<=":
		return LESS_EQ
	case ">":
		return GREATER
	case ">=":
		return GREATER_EQ
	case "+":
		return PLUS
	case "-":
		return MINUS
	case "*":
		return MULT
	default:
		return DIV
	}
}

// formatExpr renders e, parenthesizing when its precedence is below what
// the surrounding context requires.
func formatExpr(e Expr, minPrec int) string {
	s := formatExprBare(e)
	if exprPrec(e) < minPrec {
		return "(" + s + ")"
	}
	return s
}

func formatExprBare(e Expr) string {
	switch ex := e.(type) {
	case *Ident:
		return ex.Name
	case *BoolLit:
		return strconv.FormatBool(ex.Value)
	case *IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case *RealLit:
		return formatRealLit(ex.Value)
	case *StringLit:
		return "\"" + ex.Value + "\""

	case *ArrayLit:
		parts := make([]string, len(ex.Elems))
		for i, el := range ex.Elems {
			parts[i] = formatExpr(el, 0)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case *TupleLit:
		parts := make([]string, len(ex.Entries))
		for i, en := range ex.Entries {
			if en.Key != "" {
				parts[i] = en.Key + " := " + formatExpr(en.Value, 0)
			} else {
				parts[i] = formatExpr(en.Value, 0)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case *FuncLit:
		head := "func(" + strings.Join(ex.Params, ", ") + ")"
		if len(ex.Body) == 1 {
			if es, ok := ex.Body[0].(*ExprStmt); ok {
				return head + " => " + formatExpr(es.X, 0)
			}
		}
		var b strings.Builder
		b.WriteString(head)
		b.WriteString(" is\n")
		writeStmts(&b, ex.Body, 1)
		b.WriteString("end")
		return b.String()

	case *Index:
		return formatExpr(ex.X, 55) + "[" + formatExpr(ex.Key, 0) + "]"

	case *Call:
		parts := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			parts[i] = formatExpr(a, 0)
		}
		return formatExpr(ex.Fn, 55) + "(" + strings.Join(parts, ", ") + ")"

	case *Member:
		if ex.ByIndex {
			return formatExpr(ex.X, 55) + "." + strconv.FormatInt(ex.Index, 10)
		}
		return formatExpr(ex.X, 55) + "." + ex.Name

	case *Unary:
		if ex.Op == "not" {
			return "not " + formatExpr(ex.X, 50)
		}
		return ex.Op + formatExpr(ex.X, 50)

	case *Binary:
		p := exprPrec(ex)
		// left-associative: the right child needs strictly higher precedence
		return formatExpr(ex.L, p) + " " + ex.Op + " " + formatExpr(ex.R, p+1)

	case *IsTest:
		return formatExpr(ex.X, 55) + " is " + ex.What.String()
	}
	return "<?>"
}

// formatRealLit renders a float so it lexes back as a REAL: a decimal
// form with digits on both sides of the dot.
func formatRealLit(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatValue renders a runtime value for hosts: the REPL echo and the
// print builtin. Strings are quoted; nested values render recursively.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTEmpty:
		return "empty"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTReal:
		return formatRealLit(v.Data.(float64))
	case VTStr:
		return "\"" + v.Data.(string) + "\""
	case VTArray:
		xs := v.Data.([]Value)
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = FormatValue(x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTTuple:
		fs := v.Data.([]Field)
		parts := make([]string, len(fs))
		for i, f := range fs {
			if f.Name != "" {
				parts[i] = f.Name + " := " + FormatValue(f.Value)
			} else {
				parts[i] = FormatValue(f.Value)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case VTFun:
		return "<func>"
	case VTBuiltin:
		return "<builtin " + v.Data.(*Builtin).Name + ">"
	default:
		return "<unknown>"
	}
}
