package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/launchpad/domain/effect"
)

func notifyPayloadFixture() effect.NotifyPayload {
	return effect.NotifyPayload{
		UserIDs:  []string{"user-1"},
		Type:     "application_status",
		Priority: effect.PriorityHigh,
		Title:    "Application status updated",
		Message:  "Your application is now approved.",
	}
}

func testSender() *Sender {
	cfg := DefaultSenderConfig()
	cfg.RetryDelay = time.Millisecond
	return NewSender(cfg)
}

func TestSender_Post(t *testing.T) {
	var received atomic.Int32
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		gotBody, _ = io.ReadAll(r.Body)
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if ua := r.Header.Get("User-Agent"); ua != "launchpad-dispatch/1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	s := testSender()
	err := s.Post(context.Background(), Endpoint{Name: "xp", URL: server.URL}, xpRequest{
		Event:  "milestone/complete",
		UserID: "user-1",
	})
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if received.Load() != 1 {
		t.Errorf("server hits = %d, want 1", received.Load())
	}

	var decoded xpRequest
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if decoded.Event != "milestone/complete" || decoded.UserID != "user-1" {
		t.Errorf("decoded body = %+v", decoded)
	}
}

func TestSender_Post_SignsWhenSecretSet(t *testing.T) {
	var signature, timestamp string
	var body []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature = r.Header.Get("X-Launchpad-Signature")
		timestamp = r.Header.Get("X-Launchpad-Timestamp")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := testSender()
	endpoint := Endpoint{Name: "identity", URL: server.URL, Secret: "topsecret"}
	if err := s.Post(context.Background(), endpoint, roleRequest{UserID: "user-1", Role: "CLUB_MEMBER"}); err != nil {
		t.Fatalf("Post() error: %v", err)
	}

	if signature == "" || timestamp == "" {
		t.Fatal("signed headers missing")
	}
	signer := NewSigner()
	if !signer.VerifySignature(body, "topsecret", signature) {
		t.Error("signature does not verify against the body")
	}
}

func TestSender_Post_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := testSender()
	if err := s.Post(context.Background(), Endpoint{URL: server.URL}, map[string]string{}); err != nil {
		t.Fatalf("Post() error after retries: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
}

func TestSender_Post_DoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	s := testSender()
	err := s.Post(context.Background(), Endpoint{URL: server.URL}, map[string]string{})
	if !errors.Is(err, ErrServiceRejected) {
		t.Errorf("error = %v, want ErrServiceRejected", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (4xx is final)", hits.Load())
	}
}

func TestSender_Post_EmptyURL(t *testing.T) {
	s := testSender()
	if err := s.Post(context.Background(), Endpoint{}, map[string]string{}); !errors.Is(err, ErrInvalidEndpoint) {
		t.Errorf("error = %v, want ErrInvalidEndpoint", err)
	}
}

func TestHTTPNotificationService(t *testing.T) {
	var got notificationRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewHTTPNotificationService(testSender(), Endpoint{URL: server.URL})
	err := svc.CreateNotification(context.Background(), "user-1", notifyPayloadFixture())
	if err != nil {
		t.Fatalf("CreateNotification error: %v", err)
	}

	if got.UserID != "user-1" {
		t.Errorf("userId = %q, want user-1", got.UserID)
	}
	if got.Type != "application_status" || got.Priority != "high" {
		t.Errorf("payload = %+v", got)
	}
}
