package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/plando/internal/summary"
)

const reviewerSystemPrompt = `You are a concise weekly planning coach. Output plain text only - no markdown, no code blocks. Be specific and brief.`

const reviewPromptTemplate = `Review this week's planned vs actual time log and output EXACTLY this format:

THEME: [2-4 word theme for the week]

WENT WELL: One sentence about the strongest follow-through.
SLIPPED: One sentence naming the task with the biggest plan/do gap.

NEXT WEEK:
- First concrete scheduling change.
- Second concrete scheduling change.

Notes on the data:
- "planned" is time blocked out in advance, "did" is time actually logged.
- "followed through" counts only time done in the planned slot for the same task.

Weekly data:
%s

Rules:
- Keep each line under 80 characters.
- Use durations and task names from the data.
- If nothing was planned, say so and suggest starting with two blocks.`

// Reviewer turns a week summary into a short LLM-written review.
type Reviewer struct {
	client Client
}

// NewReviewer creates a Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// ReviewWeek sends the summary to the LLM and returns its review.
func (r *Reviewer) ReviewWeek(ctx context.Context, s *summary.WeekSummary) (string, error) {
	if s == nil {
		return "", errors.New("nil summary")
	}

	prompt := fmt.Sprintf(reviewPromptTemplate, s.Text())

	return r.client.Chat(ctx, []Message{
		{Role: "system", Content: reviewerSystemPrompt},
		{Role: "user", Content: prompt},
	})
}
