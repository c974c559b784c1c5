package calculator

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Token is one accepted input of a program: either a number operand or a
// symbol naming an operation, constant, or variable.
type Token struct {
	kind TokenKind
	num  float64
	sym  string
}

// TokenKind is the tag of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota

	TokenNumber // operand
	TokenSymbol // operation, constant, or variable name
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNumber:
		return "Number"
	case TokenSymbol:
		return "Symbol"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Number creates a number token.
func Number(v float64) Token {
	return Token{kind: TokenNumber, num: v}
}

// Symbol creates a symbol token.
func Symbol(s string) Token {
	return Token{kind: TokenSymbol, sym: s}
}

// Kind returns the token's tag.
func (t Token) Kind() TokenKind {
	return t.kind
}

// Number returns the token's value and whether it is a number token.
func (t Token) Number() (float64, bool) {
	return t.num, t.kind == TokenNumber
}

// Symbol returns the token's symbol and whether it is a symbol token.
func (t Token) Symbol() (string, bool) {
	return t.sym, t.kind == TokenSymbol
}

func (t Token) String() string {
	switch t.kind {
	case TokenNumber:
		return strconv.FormatFloat(t.num, 'g', -1, 64)
	case TokenSymbol:
		return t.sym
	default:
		return "<none>"
	}
}

// MarshalJSON encodes a number token as a JSON number and a symbol token as a
// JSON string. JSON has no infinities or NaN, so those numbers are encoded as
// an object such as {"number":"+Inf"}.
func (t Token) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case TokenNumber:
		if math.IsInf(t.num, 0) || math.IsNaN(t.num) {
			return json.Marshal(nonfinite{Number: strconv.FormatFloat(t.num, 'g', -1, 64)})
		}
		return json.Marshal(t.num)
	case TokenSymbol:
		return json.Marshal(t.sym)
	default:
		return nil, errors.New("calculator: cannot marshal empty token")
	}
}

// nonfinite is the encoding of a number token that JSON cannot represent.
type nonfinite struct {
	Number string `json:"number"`
}

// UnmarshalJSON decodes a JSON number or string, or the object encoding of a
// non-finite number, into a token.
func (t *Token) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Symbol(s)
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var n nonfinite
		if err := json.Unmarshal(b, &n); err != nil {
			return &TokenError{Text: string(b)}
		}
		v, err := strconv.ParseFloat(n.Number, 64)
		if err != nil || !(math.IsInf(v, 0) || math.IsNaN(v)) {
			return &TokenError{Text: string(b)}
		}
		*t = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return &TokenError{Text: string(b)}
	}
	*t = Number(v)
	return nil
}

// TokenError is an error decoding a serialized token that is neither a number
// nor a string.
type TokenError struct {
	// Text is the undecodable value.
	Text string
}

func (err *TokenError) Error() string {
	return "invalid program token: " + err.Text
}

// Program is the ordered log of every token an engine has accepted. It is the
// only state of an engine that needs to be persisted; everything else is
// derived by replaying it.
type Program []Token

// Clone returns a copy of p that shares no storage with it.
func (p Program) Clone() Program {
	if p == nil {
		return nil
	}
	return append(make(Program, 0, len(p)), p...)
}

// Values returns the program as a list of float64 and string values, the
// form used by generic serializers.
func (p Program) Values() []interface{} {
	v := make([]interface{}, len(p))
	for i, t := range p {
		switch t.kind {
		case TokenNumber:
			v[i] = t.num
		case TokenSymbol:
			v[i] = t.sym
		}
	}
	return v
}

// ProgramOf builds a program from a list of values. Every value must be a
// string or a number of any Go numeric type.
func ProgramOf(values ...interface{}) (Program, error) {
	p := make(Program, 0, len(values))
	for _, v := range values {
		switch v := v.(type) {
		case string:
			p = append(p, Symbol(v))
		case float64:
			p = append(p, Number(v))
		case float32:
			p = append(p, Number(float64(v)))
		case int:
			p = append(p, Number(float64(v)))
		case int64:
			p = append(p, Number(float64(v)))
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, &TokenError{Text: string(v)}
			}
			p = append(p, Number(f))
		default:
			b, _ := json.Marshal(v)
			return nil, &TokenError{Text: string(b)}
		}
	}
	return p, nil
}

func (p Program) String() string {
	var b bytes.Buffer
	for i, t := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
