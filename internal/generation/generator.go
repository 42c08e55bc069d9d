package generation

import (
	"context"

	"proposalforge_backend/pkg/apperrors"
)

// Result is a finished generation: the provider text plus its
// deterministic quality score.
type Result struct {
	Text  string
	Score int
}

// Generator builds the prompt, calls the provider once and scores the
// returned text. Key selection: the caller's own key wins; the server-wide
// fallback key is an optional deployment setting.
type Generator struct {
	provider    Provider
	fallbackKey string
}

func NewGenerator(provider Provider, fallbackKey string) *Generator {
	return &Generator{
		provider:    provider,
		fallbackKey: fallbackKey,
	}
}

// Generate runs one generation round trip for the given options.
func (g *Generator) Generate(ctx context.Context, userKey string, o Options) (*Result, error) {
	apiKey := userKey
	if apiKey == "" {
		apiKey = g.fallbackKey
	}
	if apiKey == "" {
		return nil, apperrors.ErrMissingProviderKey
	}

	text, err := g.provider.Generate(ctx, apiKey, BuildPrompt(o))
	if err != nil {
		return nil, err
	}

	return &Result{
		Text:  text,
		Score: Score(text, o),
	}, nil
}
