package pulse

import (
	"context"
	"strconv"
	"sync"

	"github.com/pulselabs/pulse-go/model"
	"github.com/pulselabs/pulse-go/theme"
)

// Outcome is how a presentation ended.
type Outcome string

const (
	OutcomeSubmitted Outcome = "submitted"
	OutcomeDismissed Outcome = "dismissed"
)

// Presenter is the rendering boundary. The SDK hands it an immutable survey
// plus the fully resolved design tokens; the presenter drives the UI,
// records answers on the Presentation, and returns when the user submits or
// dismisses. Present must honor ctx cancellation.
type Presenter interface {
	Present(ctx context.Context, p *Presentation) Outcome
}

// Presentation is the mutable state of one on-screen survey: the collected
// answers. Survey and Theme are read-only.
type Presentation struct {
	Survey *model.Survey
	Theme  theme.Resolved

	mu      sync.Mutex
	answers map[string]string
}

func newPresentation(survey *model.Survey) *Presentation {
	return &Presentation{
		Survey:  survey,
		Theme:   theme.Resolve(survey.Theme),
		answers: map[string]string{},
	}
}

// Answer records a value for a question. Re-answering overwrites: last
// write wins.
func (p *Presentation) Answer(questionID, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers[questionID] = value
}

// AnswerRating records a rating, encoded as its integer in string form.
func (p *Presentation) AnswerRating(questionID string, rating int) {
	p.Answer(questionID, strconv.Itoa(rating))
}

// Answers snapshots the collected answers in survey question order.
// Questions never answered are omitted.
func (p *Presentation) Answers() []model.Answer {
	p.mu.Lock()
	defer p.mu.Unlock()

	answers := make([]model.Answer, 0, len(p.answers))
	for _, q := range p.Survey.Questions {
		if value, ok := p.answers[q.ID]; ok {
			answers = append(answers, model.Answer{QuestionID: q.ID, Value: value})
		}
	}
	return answers
}

// noopPresenter is used when the host never supplied a Presenter; it
// dismisses every survey immediately.
type noopPresenter struct{}

func (noopPresenter) Present(context.Context, *Presentation) Outcome {
	return OutcomeDismissed
}
