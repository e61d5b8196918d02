package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/gnolang/tcalc/internal/builtin"
	"github.com/gnolang/tcalc/internal/compiler"
	"github.com/gnolang/tcalc/internal/lexer"
	"github.com/gnolang/tcalc/internal/rule"
	"github.com/gnolang/tcalc/internal/token"
)

// DefaultMaxSteps bounds a single ParseNext call.
const DefaultMaxSteps = 10000

// Session holds one conversation with the calculator: its rule library,
// the previous answer and the step count of the last call.
//
// A Session is not safe for concurrent use.
type Session struct {
	logger   *zap.Logger
	base     []rule.Rule
	lib      *rule.Library
	prev     token.Sequence
	maxSteps int
	dump     bool
	steps    int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for step dumps and rule registration.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxSteps sets the step budget of each call.
func WithMaxSteps(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// WithDumpSteps enables step logging from the start.
func WithDumpSteps(on bool) Option {
	return func(s *Session) { s.dump = on }
}

// WithRules registers extra rules after the built-in ones. They survive
// Reset.
func WithRules(rules ...rule.Rule) Option {
	return func(s *Session) { s.base = append(s.base, rules...) }
}

// NewSession returns a session with the built-in rules and no previous
// answer.
func NewSession(opts ...Option) *Session {
	s := &Session{
		logger:   zap.NewNop(),
		base:     builtin.Rules(),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lib = rule.NewLibrary(s.base...)
	return s
}

// ParseNext lexes text and either registers it as a rule, when it has the
// form "pattern = replacement", or evaluates it. A definition yields an
// empty sequence.
func (s *Session) ParseNext(text string) (token.Sequence, error) {
	seq, err := lexer.Lex(text)
	if err != nil {
		return token.Sequence{}, err
	}
	if pat, repl, ok := lexer.Definition(seq); ok {
		s.steps = 0
		_, err := s.Define(pat, repl)
		return token.Sequence{}, err
	}
	return s.ParseTokens(seq)
}

// ParseTokens reduces seq to normal form. Input that starts with an infix
// operator continues from the previous answer. The result becomes the new
// previous answer unless the reduction fails.
func (s *Session) ParseTokens(seq token.Sequence) (token.Sequence, error) {
	if seq.IsEmpty() {
		s.steps = 0
		return seq, nil
	}
	if op, ok := seq.At(0).(token.Symbol); ok && !s.prev.IsEmpty() && s.lib.IsInfix(op) {
		seq = s.continued().Concat(seq)
	}

	r := &reducer{lib: s.lib, limit: s.maxSteps, logger: s.logger, dump: s.dump}
	out, err := r.Reduce(seq)
	s.steps = r.steps
	if err != nil {
		if errors.Is(err, ErrBudgetExceeded) {
			return out, &BudgetError{Steps: r.steps, Limit: s.maxSteps, Workspace: out}
		}
		return out, err
	}
	s.prev = out
	return out, nil
}

// continued returns the previous answer as the left operand of new input.
// An answer left as several tokens is parenthesized so the new operator
// cannot bind into it.
func (s *Session) continued() token.Sequence {
	if s.prev.Len() == 1 {
		return s.prev
	}
	toks := append([]token.Token{token.Symbol("(")}, s.prev.Tokens()...)
	return token.NewSequence(append(toks, token.Symbol(")"))...)
}

// Define compiles and registers a user rule. A malformed definition leaves
// the library untouched.
func (s *Session) Define(pat, repl token.Sequence) (rule.Rule, error) {
	r, err := compiler.Compile(pat, repl)
	if err != nil {
		return nil, err
	}
	s.Register(r)
	return r, nil
}

// Register appends r to the session's library.
func (s *Session) Register(r rule.Rule) {
	s.lib.Register(r)
	s.logger.Debug("rule registered", zap.String("rule", r.Name()))
}

// Rules returns the session's rules in registration order.
func (s *Session) Rules() []rule.Rule { return s.lib.Rules() }

// Previous returns the previous answer.
func (s *Session) Previous() token.Sequence { return s.prev }

// LastStepCount returns the steps taken by the most recent call.
func (s *Session) LastStepCount() int { return s.steps }

// SetDumpSteps toggles logging of every intermediate workspace.
func (s *Session) SetDumpSteps(on bool) { s.dump = on }

// Reset forgets user rules and the previous answer.
func (s *Session) Reset() {
	s.lib = rule.NewLibrary(s.base...)
	s.prev = token.Sequence{}
	s.steps = 0
}
