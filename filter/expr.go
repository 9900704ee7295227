package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind tells what a compiled expression is used for
type Kind int

const (
	// Projection expressions transform the response data into any value
	Projection Kind = iota
	// Predicate expressions decide whether an entry is kept
	Predicate
)

func (k Kind) String() string {
	if k == Predicate {
		return "predicate"
	}
	return "projection"
}

// Program is a compiled expression. It is safe for concurrent use.
type Program struct {
	expression string
	kind       Kind
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables an LRU cache of compiled programs holding up to size entries.
// A size of zero or less leaves caching disabled.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if cache, err := lru.New[string, *Program](size); err == nil {
			c.cache = cache
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles expressions evaluated against API response data
type Compiler struct {
	helpers map[string]any
	cache   *lru.Cache[string, *Program]
}

// NewCompiler creates a new expr-based compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{helpers: createHelperFunctions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles a projection expression. The response data is bound to
// "data".
func (c *Compiler) Compile(expression string) (*Program, error) {
	return c.compile(expression, Projection)
}

// CompilePredicate compiles a boolean expression evaluated once per entry.
// The entry is bound to "it" and "key"; the fields of object entries are
// also available directly.
func (c *Compiler) CompilePredicate(expression string) (*Program, error) {
	return c.compile(expression, Predicate)
}

func (c *Compiler) compile(expression string, kind Kind) (*Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	cacheKey := kind.String() + ":" + expression
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cached, nil
		}
	}

	options := []expr.Option{
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(),
	}
	if kind == Predicate {
		options = append(options, expr.AsBool())
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	p := &Program{
		expression: expression,
		kind:       kind,
		program:    program,
		helpers:    c.helpers,
	}
	if c.cache != nil {
		c.cache.Add(cacheKey, p)
	}
	return p, nil
}

// Clear removes all cached programs
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached programs
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Expression returns the original expression
func (p *Program) Expression() string {
	return p.expression
}

// Kind returns what the program was compiled for
func (p *Program) Kind() Kind {
	return p.kind
}

// Run evaluates a projection against the whole response data
func (p *Program) Run(data any) (any, error) {
	env := p.environment(1)
	env["data"] = data

	out, err := expr.Run(p.program, env)
	if err != nil {
		return nil, &EvaluationError{
			Expression: p.expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}
	return out, nil
}

// Match evaluates a predicate against one entry
func (p *Program) Match(key string, item any) (bool, error) {
	fields, _ := item.(map[string]any)

	env := p.environment(len(fields) + 2)
	for k, v := range fields {
		if _, helper := p.helpers[k]; !helper {
			env[k] = v
		}
	}
	env["it"] = item
	env["key"] = key

	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: p.expression,
			Key:        key,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: p.expression,
			Key:        key,
			Reason:     "expression did not return a boolean",
		}
	}
	return matched, nil
}

func (p *Program) environment(extra int) map[string]any {
	env := make(map[string]any, len(p.helpers)+extra)
	maps.Copy(env, p.helpers)
	return env
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Statistics helpers. Decoded JSON numbers are float64.
	funcs["ratio"] = func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b
	}
	funcs["percent"] = func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		return a / b * 100
	}

	// Timestamps in responses are unix seconds
	funcs["fromUnix"] = func(ts float64) time.Time {
		return time.Unix(int64(ts), 0)
	}
	funcs["daysSince"] = func(ts float64) int {
		return int(time.Since(time.Unix(int64(ts), 0)).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) float64 {
		return float64(time.Now().AddDate(0, 0, -days).Unix())
	}

	// Case-insensitive variants of the contains and startsWith operators
	funcs["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["istartsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper

	funcs["now"] = time.Now
	return funcs
}
