package intelligence

import (
	"context"
	"fmt"
	"strings"
)

const summaryPrompt = `Summarize the key booking details from this
conversation. Preserve: activity type, vehicle/package name, duration,
date/time, price, discount, any booking stages reached. Keep it concise
(2-3 sentences):`

// GeminiSummarizer condenses a transcript window into a short booking
// context note.
type GeminiSummarizer struct {
	Generator TextGenerator
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, transcript []string) (string, error) {
	if len(transcript) == 0 {
		return "", nil
	}
	prompt := fmt.Sprintf("%s\n\n%s\n\nSUMMARY:", summaryPrompt, strings.Join(transcript, "\n"))
	answer, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
