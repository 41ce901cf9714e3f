package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func newClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: url, APIKey: "test-key", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return c
}

func TestNewRejectsMissingConfig(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := New(Config{BaseURL: "http://x", APIKey: ""}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := New(Config{BaseURL: "not a url", APIKey: "k"}); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("err = %v, want ErrInvalidURL", err)
	}
}

func TestCheckTriggerSendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/triggers-check" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}

		var req TriggerCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %s", err)
		}
		if req.Trigger != "onboarding_completed" {
			t.Errorf("trigger = %q", req.Trigger)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"show":true,"survey":{"id":"s1","title":"Hello","questions":[]}}`))
	}))
	defer srv.Close()

	resp, err := newClient(t, srv.URL).CheckTrigger(context.Background(), TriggerCheckRequest{
		Trigger: "onboarding_completed",
		UserID:  "u1",
	})
	if err != nil {
		t.Fatalf("CheckTrigger: %s", err)
	}
	if !resp.Show || resp.Survey == nil || resp.Survey.ID != "s1" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestCheckTriggerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).CheckTrigger(context.Background(), TriggerCheckRequest{Trigger: "t"})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want StatusError 401", err)
	}
}

func TestCheckTriggerTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, APIKey: "k", Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.CheckTrigger(context.Background(), TriggerCheckRequest{Trigger: "t"})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("err = %v, want ErrNetwork", err)
	}
}

func TestCheckTriggerNonJSONBodyIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>a captive portal, perhaps</html>"))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).CheckTrigger(context.Background(), TriggerCheckRequest{Trigger: "t"})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestCheckTriggerGarbageJSONIsDecodingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"show": tr`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).CheckTrigger(context.Background(), TriggerCheckRequest{Trigger: "t"})
	if !errors.Is(err, ErrDecoding) {
		t.Fatalf("err = %v, want ErrDecoding", err)
	}
}

func TestSubmitResponse(t *testing.T) {
	var got SubmissionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %s", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"received"}`))
	}))
	defer srv.Close()

	err := newClient(t, srv.URL).SubmitResponse(context.Background(), SubmissionRequest{
		SurveyID: "s1",
		UserID:   "u1",
		Trigger:  "t",
	})
	if err != nil {
		t.Fatalf("SubmitResponse: %s", err)
	}
	if got.SurveyID != "s1" || got.UserID != "u1" {
		t.Fatalf("server saw %+v", got)
	}
}

func TestPingIgnoresResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte("whatever"))
	}))
	defer srv.Close()

	if err := newClient(t, srv.URL).Ping(context.Background(), PingRequest{SDKVersion: "test"}); err != nil {
		t.Fatalf("Ping: %s", err)
	}
}
