package pulse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/pulselabs/pulse-go/client"
	"github.com/pulselabs/pulse-go/model"
)

// backend is a scripted stand-in for the survey service.
type backend struct {
	survey      *model.Survey
	submissions chan client.SubmissionRequest
	checks      chan client.TriggerCheckRequest
}

func newBackend(survey *model.Survey) *backend {
	return &backend{
		survey:      survey,
		submissions: make(chan client.SubmissionRequest, 8),
		checks:      make(chan client.TriggerCheckRequest, 8),
	}
}

func (b *backend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/triggers-check", func(w http.ResponseWriter, r *http.Request) {
		var req client.TriggerCheckRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.checks <- req

		w.Header().Set("Content-Type", "application/json")
		if b.survey == nil {
			w.Write([]byte(`{"show":false}`))
			return
		}
		json.NewEncoder(w).Encode(client.TriggerCheckResponse{Show: true, Survey: b.survey})
	})
	mux.HandleFunc("/responses", func(w http.ResponseWriter, r *http.Request) {
		var req client.SubmissionRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.submissions <- req
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"received"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSurvey(theme *model.Theme) *model.Survey {
	return &model.Survey{
		ID:      "s1",
		Version: 3,
		Title:   "How are we doing?",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Text: "Rate us"},
			{ID: "q2", Type: model.QuestionText, Text: "Anything else?", Placeholder: "type here"},
		},
		Theme: theme,
	}
}

func newTestSDK(t *testing.T, url string, p Presenter) *SDK {
	t.Helper()
	return Configure(Config{
		APIKey:       "k",
		BaseURL:      url,
		AppVersion:   "1.0-test",
		IdentityPath: filepath.Join(t.TempDir(), "identity.json"),
		Timeout:      2 * time.Second,
		Presenter:    p,
	})
}

// presenterFunc adapts a function to the Presenter interface.
type presenterFunc func(ctx context.Context, p *Presentation) Outcome

func (f presenterFunc) Present(ctx context.Context, p *Presentation) Outcome {
	return f(ctx, p)
}

func waitCheck(t *testing.T, b *backend) {
	t.Helper()
	select {
	case <-b.checks:
	case <-time.After(3 * time.Second):
		t.Fatal("no trigger check arrived")
	}
}

func waitState(t *testing.T, sdk *SDK, state string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for sdk.SessionState() != state {
		if time.Now().After(deadline) {
			t.Fatalf("session never reached %s", state)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func waitSubmission(t *testing.T, b *backend) client.SubmissionRequest {
	t.Helper()
	select {
	case sub := <-b.submissions:
		return sub
	case <-time.After(3 * time.Second):
		t.Fatal("no submission arrived")
		return client.SubmissionRequest{}
	}
}

func TestCheckTriggerFailSilent(t *testing.T) {
	// unconfigured SDK
	if s := New().CheckTrigger(context.Background(), "t"); s != nil {
		t.Error("unconfigured SDK should return nil")
	}

	// empty trigger, no network call
	b := newBackend(testSurvey(nil))
	sdk := newTestSDK(t, b.serve(t).URL, nil)
	if s := sdk.CheckTrigger(context.Background(), "  "); s != nil {
		t.Error("empty trigger should return nil")
	}
	select {
	case <-b.checks:
		t.Error("empty trigger should not reach the backend")
	case <-time.After(50 * time.Millisecond):
	}

	// dead backend
	srv := httptest.NewServer(nil)
	srv.Close()
	dead := Configure(Config{
		APIKey:       "k",
		BaseURL:      srv.URL,
		IdentityPath: filepath.Join(t.TempDir(), "identity.json"),
		Timeout:      100 * time.Millisecond,
	})
	if s := dead.CheckTrigger(context.Background(), "t"); s != nil {
		t.Error("network failure should return nil, not panic or error")
	}
}

func TestCheckTriggerNoSurvey(t *testing.T) {
	b := newBackend(nil)
	sdk := newTestSDK(t, b.serve(t).URL, nil)
	if s := sdk.CheckTrigger(context.Background(), "t"); s != nil {
		t.Fatal("show=false should resolve to nil")
	}
}

func TestCheckTriggerCarriesIdentity(t *testing.T) {
	b := newBackend(testSurvey(nil))
	sdk := newTestSDK(t, b.serve(t).URL, nil)
	sdk.Identify("user-9", map[string]any{"plan": "pro"})

	if s := sdk.CheckTrigger(context.Background(), "t"); s == nil {
		t.Fatal("expected a survey")
	}

	req := <-b.checks
	if req.UserID != "user-9" {
		t.Fatalf("userId = %q, want user-9", req.UserID)
	}
	if req.Traits["plan"] != "pro" {
		t.Fatalf("traits = %v", req.Traits)
	}

	sdk.Reset()
	sdk.CheckTrigger(context.Background(), "t")
	req = <-b.checks
	if req.UserID == "user-9" || req.UserID == "" {
		t.Fatalf("after reset userId = %q, want anonymous id", req.UserID)
	}
}

func TestShowIfAvailableSubmitsAnswers(t *testing.T) {
	b := newBackend(testSurvey(nil))
	presented := make(chan *Presentation, 1)

	sdk := newTestSDK(t, b.serve(t).URL, presenterFunc(func(ctx context.Context, p *Presentation) Outcome {
		presented <- p
		p.AnswerRating("q1", 4)
		p.Answer("q2", "draft")
		p.Answer("q2", "final") // re-answer overwrites
		return OutcomeSubmitted
	}))

	sdk.ShowIfAvailable("checkout_done")

	select {
	case p := <-presented:
		if p.Survey.ID != "s1" {
			t.Fatalf("presented survey %q", p.Survey.ID)
		}
		// tokens come fully resolved
		if p.Theme.CardCornerRadius != 16 {
			t.Fatalf("resolved radius = %v", p.Theme.CardCornerRadius)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("survey never presented")
	}

	sub := waitSubmission(t, b)
	if sub.SurveyID != "s1" || sub.Trigger != "checkout_done" {
		t.Fatalf("submission = %+v", sub)
	}
	if sub.SurveyVersion != 3 {
		t.Fatalf("surveyVersion = %d, want 3", sub.SurveyVersion)
	}
	if len(sub.Answers) != 2 {
		t.Fatalf("answers = %+v", sub.Answers)
	}
	if sub.Answers[0] != (model.Answer{QuestionID: "q1", Value: "4"}) {
		t.Fatalf("rating answer = %+v, want integer encoded as string", sub.Answers[0])
	}
	if sub.Answers[1].Value != "final" {
		t.Fatalf("re-answer did not win: %+v", sub.Answers[1])
	}
}

func TestDismissedSurveyIsNotSubmitted(t *testing.T) {
	b := newBackend(testSurvey(nil))
	done := make(chan struct{})

	sdk := newTestSDK(t, b.serve(t).URL, presenterFunc(func(ctx context.Context, p *Presentation) Outcome {
		defer close(done)
		p.Answer("q2", "typed but dismissed")
		return OutcomeDismissed
	}))

	sdk.ShowIfAvailable("t")
	<-done

	select {
	case sub := <-b.submissions:
		t.Fatalf("dismissed session submitted %+v", sub)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConcurrentTriggerIsDropped(t *testing.T) {
	b := newBackend(testSurvey(nil))
	presentations := make(chan struct{}, 4)
	release := make(chan struct{})

	sdk := newTestSDK(t, b.serve(t).URL, presenterFunc(func(ctx context.Context, p *Presentation) Outcome {
		presentations <- struct{}{}
		<-release
		return OutcomeDismissed
	}))

	sdk.ShowIfAvailable("first")
	select {
	case <-presentations:
	case <-time.After(3 * time.Second):
		t.Fatal("first survey never presented")
	}

	// second trigger while presenting: dropped, not queued
	sdk.ShowIfAvailable("second")
	time.Sleep(200 * time.Millisecond)
	close(release)
	time.Sleep(200 * time.Millisecond)

	select {
	case <-presentations:
		t.Fatal("second trigger should have been dropped")
	default:
	}
}

func TestDismissDuringDelayPreventsPresentation(t *testing.T) {
	delay := 2
	theme := &model.Theme{DelaySeconds: &delay}
	b := newBackend(testSurvey(theme))

	presented := make(chan struct{}, 1)
	sdk := newTestSDK(t, b.serve(t).URL, presenterFunc(func(ctx context.Context, p *Presentation) Outcome {
		presented <- struct{}{}
		return OutcomeDismissed
	}))

	sdk.ShowIfAvailable("t")

	// wait until the session reaches the delay, then cancel it
	waitState(t, sdk, StateDelaying)
	sdk.Dismiss()

	select {
	case <-presented:
		t.Fatal("dismissed during delay, but the survey was presented anyway")
	case <-time.After(2500 * time.Millisecond):
	}
}

func TestDismissCancelsReplacedDelayedSession(t *testing.T) {
	delay := 2
	b := newBackend(testSurvey(&model.Theme{DelaySeconds: &delay}))

	presented := make(chan string, 2)
	sdk := newTestSDK(t, b.serve(t).URL, presenterFunc(func(ctx context.Context, p *Presentation) Outcome {
		presented <- p.Survey.ID
		return OutcomeDismissed
	}))

	sdk.ShowIfAvailable("first")
	waitCheck(t, b)
	waitState(t, sdk, StateDelaying)

	// a second trigger while the first is still delaying takes over; the
	// displaced session must not outlive it
	sdk.ShowIfAvailable("second")
	waitCheck(t, b)
	waitState(t, sdk, StateDelaying)

	sdk.Dismiss()

	select {
	case id := <-presented:
		t.Fatalf("dismissed both sessions, but %q was presented anyway", id)
	case <-time.After(2500 * time.Millisecond):
	}
}

func TestConfigureIsIdempotent(t *testing.T) {
	b := newBackend(testSurvey(nil))
	url := b.serve(t).URL

	sdk := Configure(Config{APIKey: "bad", BaseURL: "", IdentityPath: filepath.Join(t.TempDir(), "id.json")})
	if s := sdk.CheckTrigger(context.Background(), "t"); s != nil {
		t.Fatal("misconfigured SDK should return nil")
	}

	// last call wins
	sdk.Configure(Config{APIKey: "k", BaseURL: url, IdentityPath: filepath.Join(t.TempDir(), "id.json")})
	if s := sdk.CheckTrigger(context.Background(), "t"); s == nil {
		t.Fatal("reconfigured SDK should work")
	}
}
