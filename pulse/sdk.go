// Package pulse is the SDK root. Every public operation is safe to call
// unconditionally, in any order, before or after Configure: failures turn
// into logged warnings and "no survey" outcomes, never into errors or panics
// reaching the host application.
package pulse

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pulselabs/pulse-go/client"
	"github.com/pulselabs/pulse-go/identity"
	"github.com/pulselabs/pulse-go/log"
	"github.com/pulselabs/pulse-go/model"
	"github.com/pulselabs/pulse-go/theme"
	"go.uber.org/atomic"
)

// Version is reported to the backend on ping.
const Version = "0.4.1"

type Config struct {
	APIKey  string
	BaseURL string

	// Request metadata. Platform defaults to runtime.GOOS, DeviceLocale to
	// the LANG environment, AppVersion to "unknown".
	AppVersion   string
	Platform     string
	DeviceLocale string

	// IdentityPath overrides where the anonymous identity file lives.
	IdentityPath string

	// Timeout bounds each backend request.
	Timeout time.Duration

	// Presenter renders surveys. Without one every survey is dismissed
	// unseen.
	Presenter Presenter
}

type SDK struct {
	mu  sync.Mutex
	cfg Config
	api *client.Client
	ids *identity.Store

	presenting atomic.Bool
	current    *session
}

// New returns an unconfigured SDK. All operations are already safe to call;
// network-dependent ones warn and do nothing until Configure succeeds.
func New() *SDK {
	return &SDK{}
}

// Configure builds a new SDK and configures it in one step.
func Configure(cfg Config) *SDK {
	s := New()
	s.Configure(cfg)
	return s
}

// Configure is idempotent: calling it again replaces the previous
// configuration, last call wins. A bad configuration logs a warning and
// leaves the SDK unconfigured rather than failing.
func (s *SDK) Configure(cfg Config) {
	if cfg.AppVersion == "" {
		cfg.AppVersion = "unknown"
	}
	if cfg.Platform == "" {
		cfg.Platform = runtime.GOOS
	}
	if cfg.DeviceLocale == "" {
		cfg.DeviceLocale = deviceLocale()
	}

	api, err := client.New(client.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		log.Warnf("pulse.configure: %s", err)
		api = nil
	}

	s.mu.Lock()
	s.cfg = cfg
	s.api = api
	if s.ids == nil || cfg.IdentityPath != "" {
		s.ids = identity.NewStore(cfg.IdentityPath)
	}
	s.mu.Unlock()

	if api != nil {
		go s.ping()
	}
}

func deviceLocale() string {
	lang := os.Getenv("LANG")
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return "en-US"
	}
	return strings.ReplaceAll(lang, "_", "-")
}

func (s *SDK) snapshot() (*client.Client, Config, *identity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.api, s.cfg, s.identitiesLocked()
}

func (s *SDK) identitiesLocked() *identity.Store {
	if s.ids == nil {
		s.ids = identity.NewStore(s.cfg.IdentityPath)
	}
	return s.ids
}

// Identify sets the current user. It works even before Configure.
func (s *SDK) Identify(userID string, traits map[string]any) {
	s.mu.Lock()
	ids := s.identitiesLocked()
	s.mu.Unlock()

	ids.Identify(userID, traits)
}

// Reset clears the identified user; the anonymous identity persists.
func (s *SDK) Reset() {
	s.mu.Lock()
	ids := s.identitiesLocked()
	s.mu.Unlock()

	ids.Reset()
}

// CheckTrigger asks the backend for a survey. It returns nil on every
// failure: empty trigger, unconfigured SDK, network or decoding trouble, or
// simply no survey available. It never panics or returns an error.
func (s *SDK) CheckTrigger(ctx context.Context, trigger string) *model.Survey {
	if strings.TrimSpace(trigger) == "" {
		log.Warn("pulse.check_trigger: empty trigger")
		return nil
	}

	api, cfg, ids := s.snapshot()
	if api == nil {
		log.Warn("pulse.check_trigger: not configured")
		return nil
	}

	resp, err := api.CheckTrigger(ctx, client.TriggerCheckRequest{
		Trigger:      trigger,
		UserID:       ids.UserID(),
		Traits:       ids.Traits(),
		AppVersion:   cfg.AppVersion,
		Platform:     cfg.Platform,
		DeviceLocale: cfg.DeviceLocale,
	})
	if err != nil {
		log.Warnf("pulse.check_trigger: %s", err)
		return nil
	}
	if !resp.Show || resp.Survey == nil {
		log.Debugf("pulse.check_trigger: no survey for %q", trigger)
		return nil
	}

	// Malformed theme fields are absorbed per-field by the resolvers; the
	// survey still shows. Surface them at debug level for integrators.
	if err := theme.Validate(resp.Survey.Theme); err != nil {
		log.Debugf("pulse.check_trigger.theme: %s", err)
	}
	return resp.Survey
}

// ShowIfAvailable checks the trigger and, when the backend returns a
// survey, presents it after the theme's delay. Fire-and-forget: it returns
// immediately and never raises to the caller.
func (s *SDK) ShowIfAvailable(trigger string) {
	go s.runSession(trigger)
}

// Dismiss cancels the active session, if any. During a delayed presentation
// this prevents the survey from ever appearing.
func (s *SDK) Dismiss() {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if sess != nil {
		sess.cancel()
	}
}

// SessionState reports where the active presentation session is in its
// lifecycle, or idle when there is none. Meant for host-side debugging.
func (s *SDK) SessionState() string {
	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if sess == nil {
		return StateIdle
	}
	return sess.state.Load()
}

func (s *SDK) ping() {
	api, cfg, _ := s.snapshot()
	if api == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := api.Ping(ctx, client.PingRequest{
		Platform:     cfg.Platform,
		AppVersion:   cfg.AppVersion,
		DeviceLocale: cfg.DeviceLocale,
		SDKVersion:   Version,
	})
	if err != nil {
		log.Warnf("pulse.ping: %s", err)
		return
	}
	log.Debug("pulse.ping: ok")
}
