package grammar

import "github.com/splc-lang/splc/internal/token"

// SPL builds the augmented grammar for the SPL source language, following
// the specification's reference grammar (§6) with one rewrite: a function
// definition's "{ BODY ; return ATOM }" is spelled out as FBODY/FALGO, so
// that ";" is not in FOLLOW(ALGO) and the SLR table has no shift/reduce
// conflict between "ALGO -> INSTR •" and "ALGO -> INSTR • ; ALGO". The
// rewritten rules accept the same sentences. Terminal
// names are the token kinds defined in internal/token, so that the
// parser driver's terminal identity (Token.TerminalName) lines up with
// this grammar's terminal set without any translation layer.
func SPL() *Grammar {
	id := string(token.IDENT)
	num := string(token.NUMBER)
	str := string(token.STRING)

	b := NewBuilder("S'")

	b.Rule("S'").N("SPL_PROG").End()

	b.Rule("SPL_PROG").
		T("glob").T("{").N("VARIABLES").T("}").
		T("proc").T("{").N("PROCDEFS").T("}").
		T("func").T("{").N("FUNCDEFS").T("}").
		T("main").T("{").N("MAINPROG").T("}").
		End()

	b.Rule("VARIABLES").Epsilon()
	b.Rule("VARIABLES").T(id).N("VARIABLES").End()

	b.Rule("PROCDEFS").Epsilon()
	b.Rule("PROCDEFS").N("PDEF").N("PROCDEFS").End()
	b.Rule("PDEF").T(id).T("(").N("PARAM").T(")").T("{").N("BODY").T("}").End()

	b.Rule("FUNCDEFS").Epsilon()
	b.Rule("FUNCDEFS").N("FDEF").N("FUNCDEFS").End()
	b.Rule("FDEF").T(id).T("(").N("PARAM").T(")").T("{").N("FBODY").T("}").End()
	b.Rule("FBODY").T("local").T("{").N("MAXTHREE").T("}").N("FALGO").End()
	b.Rule("FALGO").N("INSTR").T(";").T("return").N("ATOM").End()
	b.Rule("FALGO").N("INSTR").T(";").N("FALGO").End()

	b.Rule("PARAM").N("MAXTHREE").End()

	b.Rule("MAXTHREE").Epsilon()
	b.Rule("MAXTHREE").T(id).End()
	b.Rule("MAXTHREE").T(id).T(id).End()
	b.Rule("MAXTHREE").T(id).T(id).T(id).End()

	b.Rule("BODY").T("local").T("{").N("MAXTHREE").T("}").N("ALGO").End()

	b.Rule("MAINPROG").T("var").T("{").N("VARIABLES").T("}").N("ALGO").End()

	b.Rule("ALGO").N("INSTR").End()
	b.Rule("ALGO").N("INSTR").T(";").N("ALGO").End()

	b.Rule("INSTR").T("halt").End()
	b.Rule("INSTR").T("print").N("OUTPUT").End()
	b.Rule("INSTR").N("ASSIGN").End()
	b.Rule("INSTR").T(id).T("(").N("INPUT").T(")").End()
	b.Rule("INSTR").N("LOOP").End()
	b.Rule("INSTR").N("BRANCH").End()

	b.Rule("ASSIGN").T(id).T("=").T(id).T("(").N("INPUT").T(")").End()
	b.Rule("ASSIGN").T(id).T("=").N("TERM").End()

	b.Rule("INPUT").Epsilon()
	b.Rule("INPUT").N("ATOM").End()
	b.Rule("INPUT").N("ATOM").N("ATOM").End()
	b.Rule("INPUT").N("ATOM").N("ATOM").N("ATOM").End()

	b.Rule("OUTPUT").N("ATOM").End()
	b.Rule("OUTPUT").T(str).End()

	b.Rule("ATOM").T(id).End()
	b.Rule("ATOM").T(num).End()

	b.Rule("TERM").N("ATOM").End()
	b.Rule("TERM").T("(").N("UNOP").N("TERM").T(")").End()
	b.Rule("TERM").T("(").N("TERM").N("BINOP").N("TERM").T(")").End()

	b.Rule("UNOP").T("neg").End()
	b.Rule("UNOP").T("not").End()

	b.Rule("BINOP").T("eq").End()
	b.Rule("BINOP").T(">").End()
	b.Rule("BINOP").T("or").End()
	b.Rule("BINOP").T("and").End()
	b.Rule("BINOP").T("plus").End()
	b.Rule("BINOP").T("minus").End()
	b.Rule("BINOP").T("mult").End()
	b.Rule("BINOP").T("div").End()

	b.Rule("LOOP").T("while").N("TERM").T("{").N("ALGO").T("}").End()
	b.Rule("LOOP").T("do").T("{").N("ALGO").T("}").T("until").N("TERM").End()

	b.Rule("BRANCH").T("if").N("TERM").T("{").N("ALGO").T("}").End()
	b.Rule("BRANCH").T("if").N("TERM").T("{").N("ALGO").T("}").T("else").T("{").N("ALGO").T("}").End()

	return b.Build()
}
