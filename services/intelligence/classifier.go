package intelligence

import (
	"context"
	"fmt"
	"strings"
)

const routerPrompt = `You route messages for a Dubai tour operator that runs
desert activities (buggy, quad, safari) and water activities (jet ski,
flyboard, jet car). Given the previous domain and the user's message, answer
with exactly one word: desert, water, general, or clarify.`

// GeminiClassifier answers the router's classification fallback with a
// single domain word.
type GeminiClassifier struct {
	Generator TextGenerator
}

func (c *GeminiClassifier) Classify(ctx context.Context, lastDomain, text string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nlast_domain=%s\nuser_message=%s", routerPrompt, lastDomain, text)
	answer, err := c.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
