// Package service drives the outer rule-evaluation loop (spec.md §4.7): for
// each rule reachable from a policy's benchmark, in depth-first order, fire
// start reporters, check selection and applicability, pick and evaluate a
// check, and append the resulting rule-result(s).
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/berise/openscap/internal/ctxkey"
	"github.com/berise/openscap/internal/domain/applicability"
	"github.com/berise/openscap/internal/domain/dispatch"
	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/policy"
	"github.com/berise/openscap/internal/domain/result"
)

var tracer = otel.Tracer("github.com/berise/openscap/internal/service")

// Evaluator drives policy evaluation against a fixed engine registry and
// applicability engine. It holds no per-run state; every method takes the
// policy to evaluate explicitly.
type Evaluator struct {
	Registry      *engine.Registry
	Applicability *applicability.Engine
	Extra         applicability.Extra
	Log           *slog.Logger
}

// NewEvaluator constructs an Evaluator. log may be nil, in which case
// slog.Default() is used.
func NewEvaluator(reg *engine.Registry, appl *applicability.Engine, extra applicability.Extra, log *slog.Logger) *Evaluator {
	if log == nil {
		log = slog.Default()
	}
	return &Evaluator{Registry: reg, Applicability: appl, Extra: extra, Log: log}
}

// EvaluateAll visits every rule in p's selection map, in the order recorded
// there (spec.md §5: depth-first benchmark order with stable profile-select
// order), and appends rule-results to p.Results. A fatal reporter/evaluator
// abort stops the walk and returns the wrapping error; results accumulated
// before the abort remain on p at the caller's discretion (spec.md §5, §7).
func (e *Evaluator) EvaluateAll(ctx context.Context, p *policy.Policy) error {
	ctx, span := tracer.Start(ctx, "openscap.evaluate_all",
		trace.WithAttributes(attribute.String("openscap.profile_id", p.ProfileID)))
	defer span.End()

	ctx = context.WithValue(ctx, ctxkey.LoggerKey{}, e.Log.With("profile_id", p.ProfileID))

	for _, ruleID := range p.Selection.Order() {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, ok := p.Model.GetItemByID(ruleID)
		if !ok {
			continue
		}
		rule, ok := item.(model.Rule)
		if !ok {
			continue
		}
		if err := e.evaluateRule(ctx, p, rule); err != nil {
			if errors.Is(err, engine.ErrFatal) {
				span.RecordError(err)
				return err
			}
			return err
		}
	}
	return nil
}

// evaluateRule implements spec.md §4.7 for a single rule.
func (e *Evaluator) evaluateRule(ctx context.Context, p *policy.Policy, rule model.Rule) error {
	_, span := tracer.Start(ctx, "openscap.evaluate_rule",
		trace.WithAttributes(attribute.String("openscap.rule_id", rule.ID())))
	defer span.End()

	if err := e.Registry.ReportStart(rule, p); err != nil {
		return err
	}

	if !p.Selection.Selected(rule.ID()) {
		return e.appendAndReport(p, newResult(rule, result.NotSelected, "", nil, nil))
	}

	applicable, err := e.Applicability.Applicable(rule, p.Model, e.Extra)
	if err != nil {
		e.loggerFromContext(ctx).Warn("applicability check failed", "rule_id", rule.ID(), "error", err)
		return err
	}
	if !applicable {
		return e.appendAndReport(p, newResult(rule, result.NotApplicable, "", nil, nil))
	}

	complex, simple, ok := dispatch.PickForRule(rule, p.Profile, e.Registry)
	if !ok {
		return e.appendAndReport(p, newResult(rule, result.NotChecked, dispatch.MsgNoCandidateCheck, nil, nil))
	}

	if complex != nil {
		verdict, evaluated, err := dispatch.EvaluateComplex(rule.ID(), *complex, p.Model, p.Profile, e.Registry, p)
		if err != nil {
			return err
		}
		return e.appendAndReport(p, newResult(rule, verdict, "", nil, evaluated))
	}

	outcomes, err := dispatch.EvaluateSimple(rule.ID(), *simple, p.Model, p.Profile, e.Registry, p)
	if err != nil {
		return err
	}
	for _, outcome := range outcomes {
		if err := e.appendAndReport(p, newResult(rule, outcome.Verdict, outcome.Message, outcome.Check, nil)); err != nil {
			return err
		}
	}
	return nil
}

// appendAndReport records rr on p and fires the output reporter against a
// stable copy, avoiding any aliasing hazard from p.Results reallocating on
// a later append.
func (e *Evaluator) appendAndReport(p *policy.Policy, rr result.RuleResult) error {
	p.AppendResult(rr)
	return e.Registry.ReportOutput(&rr, p)
}

// loggerFromContext returns the per-run logger stashed by EvaluateAll, or
// e.Log if ctx carries none (e.g. evaluateRule invoked directly in a test).
func (e *Evaluator) loggerFromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxkey.LoggerKey{}).(*slog.Logger); ok {
		return log
	}
	return e.Log
}

func newResult(rule model.Rule, verdict result.Verdict, message string, check *model.Check, complexCheck *model.ComplexCheck) result.RuleResult {
	return result.RuleResult{
		RuleID:       rule.ID(),
		Verdict:      verdict,
		Weight:       rule.Weight(),
		Severity:     rule.Severity(),
		Role:         rule.Role(),
		Time:         time.Now().UTC(),
		Idents:       append([]string(nil), rule.Idents()...),
		Fixes:        append([]string(nil), rule.Fixes()...),
		Check:        check,
		ComplexCheck: complexCheck,
		Message:      message,
	}
}
