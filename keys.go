package calculator

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Key is a single key press scanned from text.
type Key struct {
	// Kind is the kind of key.
	Kind KeyKind
	// Text is the symbol or variable name of the key after aliases are
	// applied, or the literal text of a number.
	Text string
	// Value is the value of a number key.
	Value float64
	// Pos is the 1-based rune position of the start of the key.
	Pos int
}

// KeyKind is the kind of a Key.
type KeyKind int8

const (
	KeyNone KeyKind = iota

	// KeyNumber enters a number.
	KeyNumber
	// KeySymbol performs an operation or enters a variable.
	KeySymbol
	// KeyStore binds the variable named by Text to the displayed value,
	// written as →M or ->M.
	KeyStore
)

func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyNumber:
		return "Number"
	case KeySymbol:
		return "Symbol"
	case KeyStore:
		return "Store"
	default:
		return "KeyKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.Text + "@" + strconv.Itoa(k.Pos)
}

// Token returns the program token a key enters. Store keys enter no token.
func (k Key) Token() (Token, bool) {
	switch k.Kind {
	case KeyNumber:
		return Number(k.Value), true
	case KeySymbol:
		return Symbol(k.Text), true
	default:
		return Token{}, false
	}
}

// Operators contains the runes which are scanned as single-rune operation
// keys.
const Operators = "+-*/×÷−=±√"

// superscripts may continue an identifier, as in x² or sin⁻¹.
const superscripts = "²⁻¹"

type scanner struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	ctx  keyctx
	eof  bool
}

// ScanKeys scans src into keys. Keys are separated by whitespace where they
// would otherwise run together, e.g. "2 e" rather than "2e". Scanning stops at
// the first invalid key; the keys before it are returned with the error.
func ScanKeys(src io.RuneScanner, opts ...KeyOption) ([]Key, error) {
	var ctx keyctx
	for _, opt := range opts {
		ctx = opt.keyOption(ctx)
	}
	s := &scanner{src: src, rune: 1, ctx: ctx}
	var keys []Key
	for {
		k, err := s.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return keys, nil
			}
			return keys, err
		}
		if k.Kind == KeyNone {
			return keys, nil
		}
		keys = append(keys, k)
	}
}

// ScanKeysString is a shortcut to scan keys from a string.
func ScanKeysString(src string, opts ...KeyOption) ([]Key, error) {
	return ScanKeys(strings.NewReader(src), opts...)
}

// readRune reads a rune from the src and updates the scanner's position info.
func (s *scanner) readRune() (r rune, err error) {
	r, sz, err := s.src.ReadRune()
	if sz > 0 {
		s.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the scanner's position
// info. Panics if unreading returns an error.
func (s *scanner) unreadRune() {
	if err := s.src.UnreadRune(); err != nil {
		panic(err)
	}
	s.rune--
}

// next scans the next key. At the end of the input, the result is a KeyNone
// key with a nil error.
func (s *scanner) next() (Key, error) {
	if s.eof {
		return Key{}, io.EOF
	}
	defer s.buf.Reset()
	k := Key{Pos: s.rune}
	for {
		r, err := s.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.eof = true
				return Key{}, nil
			}
			return k, err
		}
		switch {
		case unicode.IsSpace(r):
			k.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			s.unreadRune()
			if err := s.scanNum(); err != nil {
				return k, err
			}
			k.Text = s.buf.String()
			v, err := strconv.ParseFloat(k.Text, 64)
			if err != nil {
				// Only range errors are possible here; ParseFloat still
				// gives the correctly signed infinity.
				var nerr *strconv.NumError
				if !errors.As(err, &nerr) || !errors.Is(nerr.Err, strconv.ErrRange) {
					return k, s.error("number")
				}
			}
			k.Kind = KeyNumber
			k.Value = v
			return k, nil
		case r == '_', unicode.IsLetter(r):
			s.unreadRune()
			if err := s.scanIdent(); err != nil {
				return k, err
			}
			k.Kind = KeySymbol
			k.Text = s.ctx.alias(s.buf.String())
			return k, nil
		case r == '→':
			return s.store(k)
		case r == '-':
			// -> is the ASCII spelling of →.
			r, err := s.readRune()
			if err == nil {
				if r == '>' {
					return s.store(k)
				}
				s.unreadRune()
			} else if !errors.Is(err, io.EOF) {
				return k, err
			}
			k.Kind = KeySymbol
			k.Text = s.ctx.alias("-")
			return k, nil
		default:
			if strings.ContainsRune(Operators, r) {
				k.Kind = KeySymbol
				k.Text = s.ctx.alias(string(r))
				return k, nil
			}
			// Write the rune so that it shows up in the error message.
			s.buf.WriteRune(r)
			return k, s.error("")
		}
	}
}

// store scans the variable name following a store arrow.
func (s *scanner) store(k Key) (Key, error) {
	r, err := s.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			s.eof = true
			return k, s.error("store")
		}
		return k, err
	}
	if r != '_' && !unicode.IsLetter(r) {
		s.buf.WriteRune(r)
		return k, s.error("store")
	}
	s.unreadRune()
	if err := s.scanIdent(); err != nil {
		return k, err
	}
	k.Kind = KeyStore
	k.Text = s.buf.String()
	return k, nil
}

func (s *scanner) scanNum() error {
	var dig, dot, e, le, ed bool
	for {
		r, err := s.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if unicode.IsSpace(r) {
			s.unreadRune()
			break
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new key, as it is an operation.
			if !le {
				s.unreadRune()
				break
			}
			le = false
			s.buf.WriteRune(r)
			continue
		}
		if strings.ContainsRune(Operators, r) || r == '→' {
			s.unreadRune()
			break
		}
		s.buf.WriteRune(r)
		switch r {
		case '.':
			if dot || e {
				return s.error("number")
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return s.error("number")
			}
			e = true
			le = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			return s.error("number")
		}
	}
	if (!dig && !ed) || (e && !ed) {
		return s.error("number")
	}
	return nil
}

func (s *scanner) scanIdent() error {
	for {
		r, err := s.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The caller unreads the rune that decides ident scanning
				// before calling scanIdent, so we have scanned at least one.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune(superscripts, r):
			s.buf.WriteRune(r)
		default:
			s.unreadRune()
			return nil
		}
	}
}

func (s *scanner) error(kind string) error {
	return &LexError{
		Text: s.buf.String(),
		Kind: kind,
		Col:  s.rune,
	}
}

// LexError indicates an invalid key. It implements InputError.
type LexError struct {
	// Text is the key the scanner was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of key the scanner was scanning. This may be
	// "number", "store", or the empty string (if a key kind hadn't been
	// decided).
	Kind string
	// Col is the total number of runes scanned up to and including this
	// error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid key at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " key at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

// InputError is an error with position information. Every error resulting
// from invalid key text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the rune that caused the error.
	Pos() int
}

var _ InputError = (*LexError)(nil)
