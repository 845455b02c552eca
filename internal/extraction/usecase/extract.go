package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gtd-capture/internal/checklist"
	"gtd-capture/internal/conversation"
	"gtd-capture/internal/extraction"
	"gtd-capture/internal/interpreter"
	"gtd-capture/pkg/llmtransport"
)

// Extract runs the full capture pipeline: optimize oversized input, run
// one conversation against the model, interpret the reply and render the
// checklist lines. Identical inputs within the cache TTL are served from
// the result cache without a model call.
func (uc *implUseCase) Extract(ctx context.Context, input extraction.ExtractInput) (extraction.ExtractOutput, error) {
	raw := strings.TrimSpace(input.RawText)
	if raw == "" {
		return extraction.ExtractOutput{}, extraction.ErrEmptyInput
	}

	hint := input.InputType
	if hint == "" {
		hint = extraction.InputGeneral
	}

	key := cacheKey(raw, hint, input.Strict)
	if cached, ok := uc.cache.Get(key); ok {
		uc.l.Infof(ctx, "Extract: cache hit key=%s", key)
		cached.Cached = true
		return cached, nil
	}

	text, stats := uc.optimizer.Optimize(raw)
	if stats.Optimized {
		uc.l.Infof(ctx, "Extract: input optimized original=%d kept=%d omitted=%d",
			stats.OriginalChars, stats.KeptChars, stats.OmittedChars)
	}

	conv := uc.newConversation(input.Strict)
	conv.StartWithIntent(hint, text)

	start := time.Now()
	result, diags, err := conv.Finalize(ctx)
	if err != nil {
		return extraction.ExtractOutput{}, err
	}
	result.Elapsed = time.Since(start)
	result.OriginalText = raw

	uc.logDiagnostics(ctx, diags)
	uc.l.Infof(ctx, "Extract: success=%t actions=%d elapsed=%s transport=%s",
		result.Success, len(result.Actions), result.Elapsed, result.Transport)

	out := extraction.ExtractOutput{
		ID:     key,
		Result: result,
		Lines:  checklist.Format(result),
	}
	if result.Success {
		out.Schedule = uc.trySchedule(ctx, result.Actions)
	}

	uc.cache.Add(key, out)
	return out, nil
}

func (uc *implUseCase) newConversation(strict bool) *conversation.Manager {
	return conversation.New(uc.sender, conversation.Config{
		StrictJSON: strict || uc.cfg.StrictJSON,
		Inference: &llmtransport.InferenceConfig{
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
		},
	}, uc.l)
}

func (uc *implUseCase) logDiagnostics(ctx context.Context, diags []interpreter.Diagnostic) {
	for _, d := range diags {
		uc.l.Warnf(ctx, "Extract: %s: %s", d.Field, d.Message)
	}
}

// cacheKey derives a stable id for an extraction request.
func cacheKey(raw string, hint extraction.InputType, strict bool) string {
	seed := string(hint) + "|" + raw
	if strict {
		seed = "strict|" + seed
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}
