// Package authoring drafts quiz questions with a language model and
// converts model or hand-pasted drafts into bank questions.
package authoring

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/wifeymooc/quizkit/internal/llm"
	"github.com/wifeymooc/quizkit/internal/question"
)

// Input describes one batch of questions to draft.
type Input struct {
	// Topic is the subject or source text the questions draw on.
	Topic string

	// Kind restricts the batch to one draft kind. Empty asks for a mix.
	Kind question.Kind

	// Count is the number of questions requested. Zero uses Config.Count.
	Count int

	// Existing holds prompts already in the bank, listed so the model
	// does not repeat them.
	Existing []string
}

func (in Input) count(cfg Config) int {
	if in.Count > 0 {
		return in.Count
	}
	return cfg.Count
}

// Generator drafts questions for a topic.
type Generator interface {
	Generate(ctx context.Context, input Input) (*Result, error)
}

// LLMGenerator implements Generator with an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	importer *Importer
}

// New creates an LLMGenerator. rng drives option shuffling; nil uses a
// time-seeded source.
func New(provider llm.Provider, cfg Config, rng *rand.Rand) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg, importer: NewImporter(rng)}
}

// Generate asks the model for a batch of drafts and converts them. Drafts
// that fail conversion or validation are reported in Result.Skipped.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*Result, error) {
	if input.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if input.Kind != "" && !slices.Contains(DraftKinds, input.Kind) {
		return nil, fmt.Errorf("kind %q cannot be drafted", input.Kind)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, g.config)),
		Schema:      DraftsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	res, err := g.importer.Import(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if input.Kind != "" {
		res.Questions = slices.DeleteFunc(res.Questions, func(q question.Question) bool {
			if q.Kind() != input.Kind {
				res.Skipped = append(res.Skipped, fmt.Sprintf("%s draft does not match requested kind %s", q.Kind(), input.Kind))
				return true
			}
			return false
		})
	}
	return res, nil
}
