package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/visibility"
)

// Program is a small, dependency-free rule for field conditions.
//
// Supported forms:
//   - truthiness: `intro.campusName`
//   - comparisons: `systemDetails.installationType == "terceirizado"`, `!=`
//   - set membership: `intro.ambientesCobertos has "labs"`
//   - composition: `&&`, `||`, `!` and parentheses
//
// Identifiers are dot paths into visibility.Context.Values (step.field).
// A parsed Program can be run many times.
type Program struct {
	source string
	root   node
}

// Parse compiles rule into a Program.
func Parse(rule string) (*Program, error) {
	trimmed := strings.TrimSpace(rule)
	prog := &Program{source: trimmed}
	if trimmed == "" {
		return prog, nil
	}
	tokens, err := scan(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", p.tokens[p.pos].raw)
	}
	prog.root = root
	return prog, nil
}

// Source returns the trimmed rule text.
func (p *Program) Source() string { return p.source }

// Run evaluates the program against ctx.
func (p *Program) Run(ctx visibility.Context) (bool, error) {
	if p == nil || p.root == nil {
		return true, nil
	}
	return p.root.eval(ctx)
}

// Compile turns a rule into a schema.Condition. Parse errors surface here;
// evaluation errors at run time hide the field.
func Compile(rule string) (schema.Condition, error) {
	prog, err := Parse(rule)
	if err != nil {
		return nil, err
	}
	if prog.root == nil {
		return nil, nil
	}
	return func(answers schema.Answers) bool {
		ok, err := prog.Run(visibility.ContextFor(answers))
		return err == nil && ok
	}, nil
}

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokHas
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func scan(input string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokRParen, raw: ")"})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokNeq, raw: "!="})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokNot, raw: "!"})
			i++
		case ch == '=' || ch == '&' || ch == '|':
			if i+1 >= len(input) || input[i+1] != ch {
				return nil, fmt.Errorf("visibility/expr: unexpected %q; use %q", string(ch), string([]byte{ch, ch}))
			}
			kind := map[byte]tokenKind{'=': tokEq, '&': tokAnd, '|': tokOr}[ch]
			tokens = append(tokens, token{kind: kind, raw: input[i : i+2]})
			i += 2
		case ch == '"' || ch == '\'':
			value, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokString, raw: value})
			i = next
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()!=&|\"'", rune(input[i])) {
				i++
			}
			tokens = append(tokens, classifyWord(input[start:i]))
		}
	}
	return tokens, nil
}

func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	escaped := false
	for i := start + 1; i < len(input); i++ {
		c := input[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			body := input[start+1 : i]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return "", 0, fmt.Errorf("visibility/expr: invalid string literal: %w", err)
			}
			return value, i + 1, nil
		}
	}
	return "", 0, errors.New("visibility/expr: unterminated string literal")
}

func classifyWord(raw string) token {
	switch strings.ToLower(raw) {
	case "true", "false":
		return token{kind: tokBool, raw: strings.ToLower(raw)}
	case "null", "nil":
		return token{kind: tokNull, raw: "null"}
	case "has":
		return token{kind: tokHas, raw: "has"}
	}
	if c := raw[0]; (c >= '0' && c <= '9') || c == '-' || c == '+' {
		return token{kind: tokNumber, raw: raw}
	}
	return token{kind: tokIdent, raw: raw}
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(tokOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left, right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(tokAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left, right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.match(tokNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.match(tokLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(tokRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.pos >= len(p.tokens) {
		return nil, errors.New("visibility/expr: empty expression")
	}
	tok := p.tokens[p.pos]
	if tok.kind != tokIdent {
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", tok.raw)
	}
	p.pos++

	for _, op := range []tokenKind{tokEq, tokNeq, tokHas} {
		if !p.match(op) {
			continue
		}
		lit, err := p.literal()
		if err != nil {
			return nil, err
		}
		if op == tokHas && lit.kind != tokString && lit.kind != tokNumber {
			return nil, fmt.Errorf("visibility/expr: 'has' expects a string or number, got %q", lit.raw)
		}
		return compareNode{path: tok.raw, op: op, lit: lit}, nil
	}
	return truthyNode{path: tok.raw}, nil
}

func (p *parser) literal() (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, errors.New("visibility/expr: missing literal")
	}
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.kind {
	case tokString, tokNumber, tokBool, tokNull:
		return tok, nil
	case tokIdent:
		// Bare words are read as strings: `installationType == local`.
		return token{kind: tokString, raw: tok.raw}, nil
	default:
		return token{}, fmt.Errorf("visibility/expr: expected literal, got %q", tok.raw)
	}
}

type node interface {
	eval(ctx visibility.Context) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type truthyNode struct{ path string }

func (n truthyNode) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.path)
	return truthy(value), nil
}

type compareNode struct {
	path string
	op   tokenKind
	lit  token
}

func (n compareNode) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.path)

	if n.op == tokHas {
		for _, item := range asList(value) {
			if coerceString(item) == n.lit.raw {
				return true, nil
			}
		}
		return false, nil
	}

	equal, err := n.equal(value)
	if err != nil {
		return false, err
	}
	if n.op == tokNeq {
		return !equal, nil
	}
	return equal, nil
}

func (n compareNode) equal(value any) (bool, error) {
	// A multi-choice answer equals a scalar only when it holds exactly that
	// one element.
	if list, ok := value.([]any); ok {
		switch len(list) {
		case 0:
			value = nil
		case 1:
			value = list[0]
		default:
			return false, nil
		}
	}

	switch n.lit.kind {
	case tokNull:
		return value == nil || value == "", nil
	case tokBool:
		got, _ := coerceBool(value)
		return got == (n.lit.raw == "true"), nil
	case tokNumber:
		want, err := strconv.ParseFloat(n.lit.raw, 64)
		if err != nil {
			return false, fmt.Errorf("visibility/expr: invalid number literal %q", n.lit.raw)
		}
		got, ok := coerceNumber(value)
		return ok && got == want, nil
	default:
		return coerceString(value) == n.lit.raw, nil
	}
}

func lookup(ctx visibility.Context, path string) (any, bool) {
	return lookupPath(ctx.Values, strings.TrimSpace(path))
}

func lookupPath(values map[string]any, path string) (any, bool) {
	if len(values) == 0 || path == "" {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}
	var current any = values
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[strings.TrimSpace(part)]; !ok {
			return nil, false
		}
	}
	return current, true
}

func asList(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
