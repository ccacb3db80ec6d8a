// Package generation implements the LLM recipe generation pipeline: prompt
// construction, a single model call, schema validation, and one bounded
// repair attempt. The pipeline never issues more than two model calls per
// request.
package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/domain/recipe"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// State is a pipeline run state. The retry contract is an explicit state
// machine rather than nested error handling so the two-call cap is
// independently testable.
type State string

const (
	StateNotStarted   State = "not_started"
	StateFirstAttempt State = "first_attempt"
	StateRepairing    State = "repairing"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// maxModelCalls caps outbound LLM calls per run. Both a cost control and a
// bounded-retry contract.
const maxModelCalls = 2

// ProfileContext carries the profile fields embedded into the prompt.
type ProfileContext struct {
	Goal                 string
	DietaryPreferences   string
	Allergies            string
	Dislikes             string
	PreferredIngredients string
	AvailableIngredients string
}

// Request carries the per-request generation parameters. MealNumber and
// TargetCalories are optional meal context supplied by auto-fill.
type Request struct {
	MealType             recipe.MealType
	AvailableTimeMinutes int
	AvailableIngredients string
	MealNumber           int
	TargetCalories       int
}

// Metrics receives pipeline observations. Implemented by the monitoring
// package with Prometheus counters; a nil Metrics is valid.
type Metrics interface {
	ModelCall()
	RepairAttempt()
	GenerationSucceeded()
	GenerationFailed()
}

// Pipeline generates recipes through an AIClient.
type Pipeline struct {
	client  outbound.AIClient
	metrics Metrics
	logger  *zap.Logger
}

// NewPipeline creates a generation pipeline.
func NewPipeline(client outbound.AIClient, metrics Metrics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		client:  client,
		metrics: metrics,
		logger:  logger.Named("generation"),
	}
}

// Run is a single generation attempt with its own state machine.
type Run struct {
	pipeline *Pipeline
	profile  ProfileContext
	request  Request
	state    State
	calls    int
}

// NewRun prepares a run; Execute drives it to completion.
func (p *Pipeline) NewRun(profile ProfileContext, req Request) *Run {
	return &Run{
		pipeline: p,
		profile:  profile,
		request:  req,
		state:    StateNotStarted,
	}
}

// Generate is the single-shot convenience wrapper around NewRun + Execute.
func (p *Pipeline) Generate(ctx context.Context, profile ProfileContext, req Request) (*Payload, error) {
	return p.NewRun(profile, req).Execute(ctx)
}

// State returns the run's current state.
func (r *Run) State() State {
	return r.state
}

// Calls returns how many model calls the run has issued.
func (r *Run) Calls() int {
	return r.calls
}

// Execute drives the run: FirstAttempt, then at most one Repairing pass.
// On failure no recipe data is returned and nothing has been persisted.
func (r *Run) Execute(ctx context.Context) (*Payload, error) {
	if r.state != StateNotStarted {
		return nil, errors.NewInternalError("generation run already executed")
	}

	r.state = StateFirstAttempt
	raw, err := r.callModel(ctx, buildPrompt(r.profile, r.request))
	if err != nil {
		r.fail()
		return nil, errors.NewExternalServiceError("LLM", err)
	}

	payload, parseErr := parsePayload(raw)
	if parseErr == nil {
		return r.succeed(payload), nil
	}

	r.state = StateRepairing
	if r.pipeline.metrics != nil {
		r.pipeline.metrics.RepairAttempt()
	}
	r.pipeline.logger.Warn("model output failed validation, repairing",
		zap.String("meal_type", string(r.request.MealType)),
		zap.Error(parseErr))

	repaired, err := r.callModel(ctx, buildCorrectionPrompt(raw))
	if err != nil {
		r.fail()
		return nil, errors.NewExternalServiceError("LLM", err)
	}

	payload, parseErr = parsePayload(repaired)
	if parseErr != nil {
		r.fail()
		r.pipeline.logger.Error("repair output failed validation",
			zap.String("meal_type", string(r.request.MealType)),
			zap.Error(parseErr))
		return nil, errors.NewGenerationFailedError(parseErr)
	}

	return r.succeed(payload), nil
}

func (r *Run) callModel(ctx context.Context, prompt string) (string, error) {
	if r.calls >= maxModelCalls {
		// Unreachable by construction; kept as a hard stop on the contract.
		return "", errors.NewInternalError("model call budget exceeded")
	}
	r.calls++
	if r.pipeline.metrics != nil {
		r.pipeline.metrics.ModelCall()
	}
	return r.pipeline.client.Complete(ctx, prompt)
}

func (r *Run) succeed(payload *Payload) *Payload {
	r.state = StateSucceeded
	if r.pipeline.metrics != nil {
		r.pipeline.metrics.GenerationSucceeded()
	}
	r.pipeline.logger.Info("recipe generated",
		zap.String("name", payload.Name),
		zap.String("meal_type", string(payload.MealType)),
		zap.Int("calls", r.calls))
	return payload
}

func (r *Run) fail() {
	r.state = StateFailed
	if r.pipeline.metrics != nil {
		r.pipeline.metrics.GenerationFailed()
	}
}
