// pulse-demo exercises the SDK end to end against a running backend
// (usually pulse-emulator): it fires a trigger, prints the resolved design
// tokens, answers every question on the terminal, and submits.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/model"
	"github.com/pulselabs/pulse-go/pulse"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "survey backend base URL")
	apiKey := flag.String("api-key", "", "bearer API key")
	trigger := flag.String("trigger", "demo", "trigger to fire")
	userID := flag.String("user", "", "identify as this user id (anonymous if empty)")
	flag.Parse()

	log.SetLevel(log.DebugLevel)

	sdk := pulse.Configure(pulse.Config{
		APIKey:     *apiKey,
		BaseURL:    *baseURL,
		AppVersion: "demo",
		Presenter:  terminalPresenter{},
	})
	if *userID != "" {
		sdk.Identify(*userID, map[string]any{"source": "pulse-demo"})
	}

	survey := sdk.CheckTrigger(context.Background(), *trigger)
	if survey == nil {
		fmt.Println("no survey available for trigger", *trigger)
		return
	}
	fmt.Printf("survey %q (version %d): %s\n", survey.ID, survey.Version, survey.Title)

	sdk.ShowIfAvailable(*trigger)

	// ShowIfAvailable is fire-and-forget; keep the process alive until the
	// terminal presenter finishes.
	fmt.Println("press enter to quit")
	bufio.NewReader(os.Stdin).ReadString('\n')
}

type terminalPresenter struct{}

func (terminalPresenter) Present(ctx context.Context, p *pulse.Presentation) pulse.Outcome {
	t := p.Theme
	fmt.Printf("--- %s ---\n", p.Survey.Title)
	fmt.Printf("layout fullscreen=%v, card radius %.0f, padding %.0f\n",
		t.Fullscreen, t.CardCornerRadius, t.ContentPadding)
	fmt.Printf("primary %v (dark=%v), entrance %s over %s\n",
		t.Primary, t.Primary.IsDark(), t.Entrance, t.AnimationDuration)

	in := bufio.NewReader(os.Stdin)
	for _, q := range p.Survey.Questions {
		if ctx.Err() != nil {
			return pulse.OutcomeDismissed
		}

		fmt.Println(q.Text)
		if q.Type == model.QuestionMultipleChoice {
			for i, opt := range q.Options {
				fmt.Printf("  %d) %s\n", i+1, opt)
			}
		}
		if q.Placeholder != "" {
			fmt.Printf("  (%s)\n", q.Placeholder)
		}

		line, err := in.ReadString('\n')
		if err != nil {
			return pulse.OutcomeDismissed
		}
		p.Answer(q.ID, strings.TrimSpace(line))
	}
	return pulse.OutcomeSubmitted
}
