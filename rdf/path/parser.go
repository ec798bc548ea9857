package path

import (
	"fmt"

	"github.com/wbrown/janus-rdfquery/rdf"
)

// Parser builds path expressions from SPARQL property path syntax
type Parser struct {
	tokens []Token
	pos    int
	ns     *rdf.Namespaces
}

// Parse parses a property path such as "ex:knows+/^ex:member|(a/rdfs:subClassOf*)".
// Qualified names are resolved through ns; a nil ns means rdf.DefaultNamespaces().
func Parse(input string, ns *rdf.Namespaces) (Expr, error) {
	tokens, err := NewLexer(input).Lex()
	if err != nil {
		return nil, err
	}
	if ns == nil {
		ns = rdf.DefaultNamespaces()
	}

	p := &Parser{tokens: tokens, ns: ns}
	expr, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("%w: unexpected %s", ErrUnsupportedPath, tok)
	}
	return expr, nil
}

// MustParse is like Parse but panics on error
func MustParse(input string, ns *rdf.Namespaces) Expr {
	expr, err := Parse(input, ns)
	if err != nil {
		panic(err)
	}
	return expr
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// alternative := sequence ('|' sequence)*
func (p *Parser) parseAlternative() (Expr, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	choices := []Expr{first}
	for p.peek().Type == TokenPipe {
		p.next()
		e, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		choices = append(choices, e)
	}
	if len(choices) == 1 {
		return first, nil
	}
	return NewAlternative(choices...)
}

// sequence := element ('/' element)*
func (p *Parser) parseSequence() (Expr, error) {
	first, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	steps := []Expr{first}
	for p.peek().Type == TokenSlash {
		p.next()
		e, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		steps = append(steps, e)
	}
	if len(steps) == 1 {
		return first, nil
	}
	return NewSequence(steps...)
}

// element := '^'? primary ('?' | '*' | '+')*
func (p *Parser) parseElement() (Expr, error) {
	inverse := false
	if p.peek().Type == TokenCaret {
		p.next()
		inverse = true
	}

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if inverse {
		pred, ok := expr.(*Predicate)
		if !ok {
			return nil, fmt.Errorf("%w: inverse paths only work for IRIs, got %s", ErrUnsupportedPath, expr)
		}
		expr, err = NewInverse(pred.IRI)
		if err != nil {
			return nil, err
		}
	}

	for {
		switch p.peek().Type {
		case TokenQuestion:
			p.next()
			expr, err = NewZeroOrOne(expr)
		case TokenStar:
			p.next()
			expr, err = NewZeroOrMore(expr)
		case TokenPlus:
			p.next()
			expr, err = NewOneOrMore(expr)
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// primary := IRI | name | '(' alternative ')'
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenIRI:
		return NewPredicate(rdf.NewIRI(tok.Value))
	case TokenName:
		if tok.Value == "a" {
			return NewPredicate(rdf.RDFType)
		}
		term, err := p.ns.Parse(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedPath, err)
		}
		return NewPredicate(term)
	case TokenLeftParen:
		expr, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRightParen {
			return nil, fmt.Errorf("%w: expected ')' but got %s", ErrUnsupportedPath, closing)
		}
		return expr, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s", ErrUnsupportedPath, tok)
	}
}
