package calculation

import "github.com/rpgo/succession-calculator/internal/domain"

// Tracer is the append-only log of calculation steps, warnings and
// explanation keys threaded through every pipeline stage (C2). It is never
// shared between concurrent simulations: the orchestrator allocates one
// fresh Tracer per call to Simulate.
type Tracer struct {
	steps    []domain.CalculationStep
	warnings []domain.Warning
	keys     []domain.ExplanationKey
}

// NewTracer returns an empty Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Step appends one entry to the calculation trace. stepName should be the
// component name (e.g. "MatrimonialLiquidator"); description and
// resultSummary are short human-readable strings, not data dumps.
func (t *Tracer) Step(stepName, description, resultSummary string) {
	t.steps = append(t.steps, domain.CalculationStep{
		StepNumber:    len(t.steps) + 1,
		StepName:      stepName,
		Description:   description,
		ResultSummary: resultSummary,
	})
}

// Warn appends a non-fatal domain issue (§7 Inconsistency / LegalFlag). The
// engine never throws for these; they surface on SuccessionOutput.Warnings.
func (t *Tracer) Warn(severity domain.Severity, audience domain.Audience, category domain.Category, message string, keys ...domain.ExplanationKey) {
	t.warnings = append(t.warnings, domain.Warning{
		Severity:        severity,
		Audience:        audience,
		Category:        category,
		Message:         message,
		ExplanationKeys: keys,
	})
}

// Keys records global explanation keys that belong to GlobalMetrics rather
// than to one specific heir or warning.
func (t *Tracer) Keys(keys ...domain.ExplanationKey) {
	t.keys = append(t.keys, keys...)
}

// Steps returns the accumulated calculation trace, in execution order.
func (t *Tracer) Steps() []domain.CalculationStep { return t.steps }

// Warnings returns the accumulated warnings, in emission order.
func (t *Tracer) Warnings() []domain.Warning { return t.warnings }

// GlobalExplanationKeys returns the accumulated global explanation keys.
func (t *Tracer) GlobalExplanationKeys() []domain.ExplanationKey { return t.keys }
