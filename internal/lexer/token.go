package lexer

import (
	"fmt"

	"github.com/cwbudde/go-dws/internal/ident"
)

// Position identifies a location in a source file by line, column and
// byte offset. Line and Column are 1-based; Offset is 0-based.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p refers to a real location. A Position with
// Line <= 0 is the zero value and does not point anywhere in source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// maxTokenLiteralDisplay bounds how much of a token's literal is shown
// by Token.String before it is truncated with an ellipsis.
const maxTokenLiteralDisplay = 20

// Token is a single lexical token: its type, the exact source text it
// was scanned from, and where it starts.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// NewToken builds a Token from its parts.
func NewToken(tokenType TokenType, literal string, pos Position) Token {
	return Token{Type: tokenType, Literal: literal, Pos: pos}
}

// String renders the token for diagnostics, e.g. `IDENT("foo") at 1:5`
// or `EOF at 10:20`. Long literals are truncated.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
	literal := t.Literal
	if len(literal) > maxTokenLiteralDisplay {
		literal = literal[:maxTokenLiteralDisplay] + "..."
	}
	return fmt.Sprintf("%s(%q) at %s", t.Type, literal, t.Pos)
}

// keywords maps the normalized (lowercased) spelling of every keyword
// to its token type. DWScript identifiers are case-insensitive, so
// "Begin", "BEGIN" and "begin" must all resolve to the same entry.
var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"nil":   NIL,

	"begin":    BEGIN,
	"end":      END,
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"case":     CASE,
	"of":       OF,
	"while":    WHILE,
	"repeat":   REPEAT,
	"until":    UNTIL,
	"for":      FOR,
	"to":       TO,
	"downto":   DOWNTO,
	"step":     STEP,
	"do":       DO,
	"break":    BREAK,
	"continue": CONTINUE,
	"exit":     EXIT,
	"with":     WITH,
	"asm":      ASM,

	"var":            VAR,
	"const":          CONST,
	"type":           TYPE,
	"record":         RECORD,
	"array":          ARRAY,
	"set":            SET,
	"enum":           ENUM,
	"flags":          FLAGS,
	"resourcestring": RESOURCESTRING,
	"namespace":      NAMESPACE,
	"unit":           UNIT,
	"uses":           USES,
	"program":        PROGRAM,
	"library":        LIBRARY,
	"implementation": IMPLEMENTATION,
	"initialization": INITIALIZATION,
	"finalization":   FINALIZATION,

	"class":       CLASS,
	"object":      OBJECT,
	"interface":   INTERFACE,
	"implements":  IMPLEMENTS,
	"function":    FUNCTION,
	"procedure":   PROCEDURE,
	"constructor": CONSTRUCTOR,
	"destructor":  DESTRUCTOR,
	"method":      METHOD,
	"property":    PROPERTY,
	"virtual":     VIRTUAL,
	"override":    OVERRIDE,
	"abstract":    ABSTRACT,
	"sealed":      SEALED,
	"static":      STATIC,
	"final":       FINAL,
	"new":         NEW,
	"inherited":   INHERITED,
	"reintroduce": REINTRODUCE,
	"operator":    OPERATOR,
	"helper":      HELPER,
	"partial":     PARTIAL,
	"lazy":        LAZY,
	"index":       INDEX,

	"try":     TRY,
	"except":  EXCEPT,
	"raise":   RAISE,
	"finally": FINALLY,
	"on":      ON,

	"not": NOT,
	"and": AND,
	"or":  OR,
	"xor": XOR,

	"is":   IS,
	"as":   AS,
	"in":   IN,
	"div":  DIV,
	"mod":  MOD,
	"shl":  SHL,
	"shr":  SHR,
	"sar":  SAR,
	"impl": IMPL,

	"inline":     INLINE,
	"external":   EXTERNAL,
	"forward":    FORWARD,
	"overload":   OVERLOAD,
	"deprecated": DEPRECATED,
	"readonly":   READONLY,
	"export":     EXPORT,
	"register":   REGISTER,
	"pascal":     PASCAL,
	"cdecl":      CDECL,
	"safecall":   SAFECALL,
	"stdcall":    STDCALL,
	"fastcall":   FASTCALL,
	"reference":  REFERENCE,

	"private":   PRIVATE,
	"protected": PROTECTED,
	"public":    PUBLIC,
	"published": PUBLISHED,
	"strict":    STRICT,

	"read":        READ,
	"write":       WRITE,
	"default":     DEFAULT,
	"description": DESCRIPTION,

	"old":        OLD,
	"require":    REQUIRE,
	"ensure":     ENSURE,
	"invariants": INVARIANTS,

	"async":    ASYNC,
	"await":    AWAIT,
	"lambda":   LAMBDA,
	"implies":  IMPLIES,
	"empty":    EMPTY,
	"implicit": IMPLICIT,
	"explicit": EXPLICIT,
}

// LookupIdent classifies literal as a keyword token type, or IDENT if
// it names none, matched case-insensitively.
func LookupIdent(literal string) TokenType {
	if tt, ok := keywords[ident.Normalize(literal)]; ok {
		return tt
	}
	return IDENT
}

// GetKeywordLiteral returns the canonical (lowercase) spelling of a
// keyword token type, or "" if tt is not a keyword.
func GetKeywordLiteral(tt TokenType) string {
	for literal, kwType := range keywords {
		if kwType == tt {
			return literal
		}
	}
	return ""
}
