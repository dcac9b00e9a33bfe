package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lexKinds(src string) []Kind {
	toks := lex(src)
	kinds := make([]Kind, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}

func lexNonTrivia(src string) []*Node {
	var out []*Node
	for _, t := range lex(src) {
		if !t.Kind.IsTrivia() {
			out = append(out, t)
		}
	}
	return out
}

func TestLexIntAndFloat(t *testing.T) {
	toks := lexNonTrivia("42 3.14 2e10 1.5e-3")
	require.Len(t, toks, 4)
	require.Equal(t, KindLitInt, toks[0].Kind)
	require.Equal(t, KindLitFloat, toks[1].Kind)
	require.Equal(t, KindLitFloat, toks[2].Kind)
	require.Equal(t, KindLitFloat, toks[3].Kind)
}

func TestLexNumberDoesNotSwallowRangeDots(t *testing.T) {
	toks := lexNonTrivia("123..456")
	require.Len(t, toks, 3)
	require.Equal(t, KindLitInt, toks[0].Kind)
	require.Equal(t, "123", toks[0].text)
	require.Equal(t, KindDotDot, toks[1].Kind)
	require.Equal(t, KindLitInt, toks[2].Kind)
}

func TestLexNumberDoesNotSwallowInclusiveRangeDots(t *testing.T) {
	toks := lexNonTrivia("0..=9")
	require.Len(t, toks, 3)
	require.Equal(t, KindLitInt, toks[0].Kind)
	require.Equal(t, KindDotDotEq, toks[1].Kind)
	require.Equal(t, KindLitInt, toks[2].Kind)
}

func TestLexStringAndCharLiterals(t *testing.T) {
	toks := lexNonTrivia(`"hello" 'a' "esc\"aped"`)
	require.Len(t, toks, 3)
	require.Equal(t, KindLitStr, toks[0].Kind)
	require.Equal(t, `"hello"`, toks[0].text)
	require.Equal(t, KindLitChar, toks[1].Kind)
	require.Equal(t, KindLitStr, toks[2].Kind)
	require.Equal(t, `"esc\"aped"`, toks[2].text)
}

func TestLexBacktickStringIsLitStr(t *testing.T) {
	toks := lexNonTrivia("`template`")
	require.Len(t, toks, 1)
	require.Equal(t, KindLitStr, toks[0].Kind)
}

func TestLexKeywordsVsIdents(t *testing.T) {
	toks := lexNonTrivia("let letter fn function")
	require.Len(t, toks, 4)
	require.Equal(t, KindKwLet, toks[0].Kind)
	require.Equal(t, KindIdent, toks[1].Kind, "a keyword prefix should not match a longer identifier")
	require.Equal(t, KindKwFn, toks[2].Kind)
	require.Equal(t, KindIdent, toks[3].Kind)
}

func TestLexLineCommentVsDocComment(t *testing.T) {
	toks := lex("// plain\n/// doc\n//! module doc\n")
	var kinds []Kind
	for _, tok := range toks {
		if tok.Kind != KindWhitespace {
			kinds = append(kinds, tok.Kind)
		}
	}
	require.Equal(t, []Kind{KindLineComment, KindDocComment, KindDocComment}, kinds)
}

func TestLexBlockCommentVsDocBlockComment(t *testing.T) {
	plain := lexNonTriviaIncludingComments("/* plain */")
	require.Equal(t, KindBlockComment, plain[0].Kind)

	doc := lexNonTriviaIncludingComments("/** doc */")
	require.Equal(t, KindDocBlockComment, doc[0].Kind)

	// `/**/` and `/***/` are not doc comments — disambiguated in blockComment.
	empty := lexNonTriviaIncludingComments("/**/")
	require.Equal(t, KindBlockComment, empty[0].Kind)
}

func lexNonTriviaIncludingComments(src string) []*Node {
	var out []*Node
	for _, t := range lex(src) {
		if t.Kind != KindWhitespace {
			out = append(out, t)
		}
	}
	return out
}

func TestLexMultiCharOperators(t *testing.T) {
	toks := lexNonTrivia(":: .. ..= => -> == != <= >= && || **")
	wantKinds := []Kind{
		KindColonColon, KindDotDot, KindDotDotEq, KindFatArrow, KindThinArrow,
		KindOpEq, KindOpNeq, KindOpLe, KindOpGe, KindOpAnd, KindOpOr, KindOpPow,
	}
	require.Equal(t, wantKinds, kindsOf(toks))
}

func kindsOf(nodes []*Node) []Kind {
	out := make([]Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind
	}
	return out
}

func TestLexSingleCharPunctuation(t *testing.T) {
	toks := lexNonTrivia("(){}[],:;.| ?#=+-*/%<>!&^")
	wantKinds := []Kind{
		KindLParen, KindRParen, KindLBrace, KindRBrace, KindLBracket, KindRBracket,
		KindComma, KindColon, KindSemicolon, KindDot, KindPipe, KindQuestion, KindHash,
		KindAssign, KindOpAdd, KindOpSub, KindOpMul, KindOpDiv, KindOpMod,
		KindOpLt, KindOpGt, KindOpNot, KindOpBitAnd, KindOpBitXor,
	}
	require.Equal(t, wantKinds, kindsOf(toks))
}

func TestLexUnrecognizedCharIsError(t *testing.T) {
	toks := lexNonTrivia("@")
	require.Len(t, toks, 1)
	require.Equal(t, KindError, toks[0].Kind)
}

func TestClassifyDetectsDefFileByLeadingModuleDecl(t *testing.T) {
	require.Equal(t, DialectDef, classify(`module "./foo";`))
	require.Equal(t, DialectDef, classify("module foo;"))
	require.Equal(t, DialectDef, classify("  \n  module\tfoo;"))
	require.Equal(t, DialectScript, classify("let x = 1;"))
	require.Equal(t, DialectScript, classify("fn module_helper() {}"), "module as a mid-text substring is not a declaration")
}
