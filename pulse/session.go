package pulse

import (
	"context"
	"time"

	"github.com/pulselabs/pulse-go/client"
	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/model"
	"github.com/pulselabs/pulse-go/theme"
	"go.uber.org/atomic"
)

// Session states, in the order a successful presentation walks them.
const (
	StateIdle            = "idle"
	StateCheckingTrigger = "checkingTrigger"
	StateDelaying        = "delaying"
	StatePresenting      = "presenting"
	StateSubmitting      = "submitting"
	StateDismissed       = "dismissed"
)

// session is one presentation attempt for one trigger. Its context cancels
// on Dismiss; cancelling during the delay guarantees the survey never
// appears.
type session struct {
	trigger string
	state   atomic.String
	cancel  context.CancelFunc
}

func (s *SDK) runSession(trigger string) {
	// Guard before doing any work: a trigger fired while another survey is
	// on screen is dropped, not queued.
	if s.presenting.Load() {
		log.Debugf("pulse.session.dropped: already presenting (%s)", trigger)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := &session{trigger: trigger, cancel: cancel}
	sess.state.Store(StateIdle)

	// A newer trigger takes over: the displaced session is cancelled, not
	// left running beyond Dismiss's reach.
	s.mu.Lock()
	if prev := s.current; prev != nil {
		prev.cancel()
	}
	s.current = sess
	s.mu.Unlock()
	defer func() {
		sess.state.Store(StateDismissed)
		s.mu.Lock()
		if s.current == sess {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	sess.state.Store(StateCheckingTrigger)
	survey := s.CheckTrigger(ctx, trigger)
	if survey == nil {
		return
	}

	if delay := theme.DelaySeconds(survey.Theme); delay > 0 {
		sess.state.Store(StateDelaying)
		select {
		case <-time.After(time.Duration(delay) * time.Second):
		case <-ctx.Done():
			log.Debugf("pulse.session.cancelled: during delay (%s)", trigger)
			return
		}
	}

	// Re-check after the delay: another session may have started presenting
	// while this one slept.
	if !s.presenting.CompareAndSwap(false, true) {
		log.Debugf("pulse.session.dropped: already presenting after delay (%s)", trigger)
		return
	}
	defer s.presenting.Store(false)

	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	presenter := s.cfg.Presenter
	s.mu.Unlock()
	if presenter == nil {
		presenter = noopPresenter{}
	}

	sess.state.Store(StatePresenting)
	p := newPresentation(survey)
	outcome := presenter.Present(ctx, p)
	if ctx.Err() != nil || outcome != OutcomeSubmitted {
		return
	}

	// Fire-and-forget: the session ends now, whatever the network does with
	// the submission.
	sess.state.Store(StateSubmitting)
	go s.submit(survey, trigger, p.Answers())
}

func (s *SDK) submit(survey *model.Survey, trigger string, answers []model.Answer) {
	api, cfg, ids := s.snapshot()
	if api == nil {
		log.Warn("pulse.submit: not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := api.SubmitResponse(ctx, client.SubmissionRequest{
		SurveyID: survey.ID,
		UserID:   ids.UserID(),
		Trigger:  trigger,
		Answers:  answers,
		Metadata: client.Metadata{
			AppVersion:   cfg.AppVersion,
			Platform:     cfg.Platform,
			DeviceLocale: cfg.DeviceLocale,
		},
		SurveyVersion: survey.Version,
	})
	if err != nil {
		// Abandoned: a failed submission never re-surfaces to the user.
		log.Warnf("pulse.submit: %s", err)
		return
	}
	log.Debugf("pulse.submit: ok (%s)", survey.ID)
}
