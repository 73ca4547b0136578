// Package cel registers a CEL-based checking engine under
// urn:openscap:check-system:cel. A check's content-name is itself the CEL
// expression source (content-refs' href is unused by this engine; CEL
// checks are fully inline); the expression is compiled against an
// environment built from the check's resolved value bindings and the
// policy's host context, then evaluated to a boolean that maps to a
// pass/fail verdict.
package cel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/cel-go/cel"

	"github.com/berise/openscap/internal/domain/binding"
	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
)

// CheckSystemCEL is the check-system URI this engine registers under.
const CheckSystemCEL = "urn:openscap:check-system:cel"

// maxExpressionLength is the maximum allowed length for a CEL expression.
const maxExpressionLength = 1024

// maxCostBudget is the CEL runtime cost limit, preventing a pathological
// expression from consuming unbounded evaluator time.
const maxCostBudget = 100_000

// maxNestingDepth is the maximum allowed parenthesis/bracket nesting depth.
const maxNestingDepth = 50

// evalTimeout bounds a single CEL evaluation.
const evalTimeout = 5 * time.Second

// interruptCheckFreq is how often (in comprehension iterations) context
// cancellation is checked during evaluation.
const interruptCheckFreq = 100

// HostContext supplies the fixed host-context variables ("platform",
// "hostname") a CEL check may reference alongside its value bindings. A
// policy.Policy implementing these two methods satisfies this interface
// without this package importing the policy package.
type HostContext interface {
	Platform() string
	Hostname() string
}

// Engine compiles and evaluates CEL checks, caching compiled programs by a
// hash of the expression text and the set of binding names it was compiled
// against (the environment's variable declarations depend on both). Not
// safe for concurrent use, matching the single-threaded evaluation model.
type Engine struct {
	cache map[uint64]cel.Program
}

// NewEngine returns an Engine with an empty compile cache.
func NewEngine() *Engine {
	return &Engine{cache: make(map[uint64]cel.Program)}
}

// RegisterOn registers this Engine as the evaluator for CheckSystemCEL.
func (e *Engine) RegisterOn(reg *engine.Registry) {
	reg.RegisterEvaluator(CheckSystemCEL, e.Evaluate)
}

// Evaluate implements engine.Evaluator. The content-name is the CEL
// expression; href is unused.
func (e *Engine) Evaluate(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
	expr := contentName
	if expr == "" {
		return result.NotChecked, nil
	}
	if err := validateExpression(expr); err != nil {
		return result.Error, nil
	}

	prg, err := e.compile(expr, bindings)
	if err != nil {
		return result.Error, nil
	}

	activation := buildActivation(bindings, user)
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	out, _, err := prg.ContextEval(ctx, activation)
	if err != nil {
		return result.Error, nil
	}
	boolResult, ok := out.Value().(bool)
	if !ok {
		return result.Error, nil
	}
	if boolResult {
		return result.Pass, nil
	}
	return result.Fail, nil
}

func (e *Engine) compile(expr string, bindings []binding.Binding) (cel.Program, error) {
	key := cacheKey(expr, bindings)
	if prg, ok := e.cache[key]; ok {
		return prg, nil
	}

	env, err := buildEnv(bindings)
	if err != nil {
		return nil, fmt.Errorf("cel: environment build failed: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel: compilation failed: %w", issues.Err())
	}
	prg, err := env.Program(ast,
		cel.EvalOptions(cel.OptOptimize),
		cel.CostLimit(maxCostBudget),
		cel.InterruptCheckFrequency(interruptCheckFreq),
	)
	if err != nil {
		return nil, fmt.Errorf("cel: program creation failed: %w", err)
	}
	e.cache[key] = prg
	return prg, nil
}

func cacheKey(expr string, bindings []binding.Binding) uint64 {
	var sb strings.Builder
	sb.WriteString(expr)
	for _, b := range bindings {
		sb.WriteByte('|')
		sb.WriteString(b.Name)
	}
	return xxhash.Sum64String(sb.String())
}

func buildEnv(bindings []binding.Binding) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, 2+len(bindings))
	opts = append(opts,
		cel.Variable("platform", cel.StringType),
		cel.Variable("hostname", cel.StringType),
	)
	for _, b := range bindings {
		opts = append(opts, cel.Variable(b.Name, cel.DynType))
	}
	opts = append(opts, celFunctions()...)
	return cel.NewEnv(opts...)
}

func buildActivation(bindings []binding.Binding, user any) map[string]any {
	activation := map[string]any{"platform": "", "hostname": ""}
	if hc, ok := user.(HostContext); ok {
		activation["platform"] = hc.Platform()
		activation["hostname"] = hc.Hostname()
	}
	for _, b := range bindings {
		activation[b.Name] = convertLiteral(b)
	}
	return activation
}

// convertLiteral resolves a binding's effective value (a profile set-value
// override takes precedence over the resolved instance literal, mirroring
// tailor.EffectiveValue) and converts it to the Go type its declared
// ValueType implies.
func convertLiteral(b binding.Binding) any {
	literal := b.Literal
	if b.SetValue != nil {
		literal = *b.SetValue
	}
	switch b.ValueType {
	case model.ValueNumber:
		if f, err := strconv.ParseFloat(literal, 64); err == nil {
			return f
		}
		return 0.0
	case model.ValueBoolean:
		if v, err := strconv.ParseBool(literal); err == nil {
			return v
		}
		return false
	default:
		return literal
	}
}

// validateExpression enforces the same safety limits used for authored
// content validation (expression length, nesting depth), so a malformed
// check cannot stall or crash evaluation.
func validateExpression(expr string) error {
	if len(expr) > maxExpressionLength {
		return fmt.Errorf("cel: expression too long: %d characters (max %d)", len(expr), maxExpressionLength)
	}
	if expr == "" {
		return errors.New("cel: expression is empty")
	}
	return validateNesting(expr)
}

func validateNesting(expr string) error {
	var depth, maxDepth int
	for _, ch := range expr {
		switch ch {
		case '(', '[', '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')', ']', '}':
			depth--
		}
	}
	if maxDepth > maxNestingDepth {
		return fmt.Errorf("cel: expression nesting too deep: %d levels (max %d)", maxDepth, maxNestingDepth)
	}
	return nil
}
