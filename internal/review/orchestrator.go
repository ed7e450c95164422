package review

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/salesguard/internal/extract"
	"github.com/salesguard/internal/llm"
)

// Request is one review invocation. Image is an opaque encoded payload; the
// upload/compression collaborator owns its bytes.
type Request struct {
	Setup llm.Setup
	Image string
}

// WorkflowCaller is the provider surface a review needs.
type WorkflowCaller interface {
	HasCredentials() bool
	RunWorkflow(ctx context.Context, req llm.WorkflowRequest) (*llm.WorkflowReply, error)
}

// Orchestrator runs one scoring workflow. Unlike the combat flow it has no
// rich fallback synthesis: provider or parse failures surface as errors and
// the handler converts them to a coarse server error.
type Orchestrator struct {
	client     WorkflowCaller
	strategies []extract.Strategy
}

// NewOrchestrator creates a review orchestrator.
func NewOrchestrator(client WorkflowCaller, strategies []extract.Strategy) *Orchestrator {
	return &Orchestrator{client: client, strategies: strategies}
}

// Score reviews one screenshot. With no credentials configured it returns
// the fixed demo result without touching the network; that is a designed
// demo state, not an error path, and it must be reproducible byte for byte.
func (o *Orchestrator) Score(ctx context.Context, req Request) (*ReviewResult, error) {
	if !o.client.HasCredentials() {
		log.Info().Msg("no review credentials configured, serving demo result")
		return DemoResult(), nil
	}

	run := llm.BuildWorkflowRun(req.Setup, req.Image)
	reply, err := o.client.RunWorkflow(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("review workflow failed: %w", err)
	}

	var result ReviewResult
	if err := extract.Into(outputText(reply.Data.Outputs), o.strategies, &result); err != nil {
		return nil, fmt.Errorf("review workflow returned no parseable result: %w", err)
	}
	return &result, nil
}

// outputText picks the workflow's designated output field: result, then
// text, else an empty object.
func outputText(outputs map[string]interface{}) string {
	for _, key := range []string{"result", "text"} {
		if v, ok := outputs[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return "{}"
}
