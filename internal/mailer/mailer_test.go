package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
)

func testConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer@example.com",
		Password: "hunter2",
		To:       "admin@example.com",
		FromName: "Portfolio Contact",
	}
}

func testMessage() *model.ContactMessage {
	return &model.ContactMessage{
		ID:      "msg-1",
		Name:    "Jo",
		Email:   "jo@example.com",
		Subject: "Hi",
		Message: "Hello there,\ntesting.",
	}
}

func TestNotify_NotConfigured(t *testing.T) {
	for _, cfg := range []*config.EmailConfig{
		{},
		{Host: "smtp.example.com"},
		{Host: "smtp.example.com", Username: "u"},
		{Username: "u", Password: "p"},
	} {
		m := New(cfg)
		err := m.Notify(context.Background(), testMessage())
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("cfg %+v: expected ErrNotConfigured, got %v", cfg, err)
		}
	}
}

func TestNotify_SendsToConfiguredDestination(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := New(testConfig())
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := m.Notify(context.Background(), testMessage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("expected host:port addr, got %q", gotAddr)
	}
	if gotFrom != "mailer@example.com" {
		t.Errorf("expected envelope sender = smtp user, got %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "admin@example.com" {
		t.Errorf("expected destination admin@example.com, got %v", gotTo)
	}

	body := string(gotMsg)
	if !strings.Contains(body, "Subject: [Portfolio] Hi") {
		t.Error("expected provenance-prefixed subject")
	}
	if !strings.Contains(body, "Hello there,<br>testing.") {
		t.Error("expected newlines converted to <br> in the HTML part")
	}
	if !strings.Contains(body, "Hello there,\ntesting.") {
		t.Error("expected raw newlines preserved in the plain text part")
	}
	if !strings.Contains(body, "From: Jo <jo@example.com>") {
		t.Error("expected sender identity in the plain text part")
	}
	if !strings.Contains(body, "multipart/alternative") {
		t.Error("expected a multipart message")
	}
}

// TestNotify_DestinationFallsBackToUser verifies the SMTP user receives the
// notification when no destination address is configured.
func TestNotify_DestinationFallsBackToUser(t *testing.T) {
	cfg := testConfig()
	cfg.To = ""

	var gotTo []string
	m := New(cfg)
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotTo = to
		return nil
	}

	if err := m.Notify(context.Background(), testMessage()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotTo) != 1 || gotTo[0] != "mailer@example.com" {
		t.Errorf("expected fallback to smtp user, got %v", gotTo)
	}
}

func TestNotify_TransportFailure(t *testing.T) {
	m := New(testConfig())
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("dial tcp: connection refused")
	}

	err := m.Notify(context.Background(), testMessage())
	if err == nil {
		t.Fatal("expected delivery error, got nil")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Error("transport failure must be distinct from ErrNotConfigured")
	}
}

// TestNotify_ContextTimeout verifies a hanging transport is abandoned when the
// context expires.
func TestNotify_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	m := New(testConfig())
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		<-release
		return nil
	}
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Notify(ctx, testMessage())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

// TestNotify_ConcurrentFirstUse verifies the lazy transport setup is safe when
// the first submissions arrive at the same time.
func TestNotify_ConcurrentFirstUse(t *testing.T) {
	var mu sync.Mutex
	addrs := map[string]int{}

	m := New(testConfig())
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		mu.Lock()
		addrs[addr]++
		mu.Unlock()
		return nil
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Notify(context.Background(), testMessage()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(addrs) != 1 || addrs["smtp.example.com:587"] != 8 {
		t.Errorf("expected all sends through one transport addr, got %v", addrs)
	}
}

func TestHTMLBody_EscapesFields(t *testing.T) {
	msg := testMessage()
	msg.Name = "<script>alert(1)</script>"
	got := htmlBody(msg)
	if strings.Contains(got, "<script>") {
		t.Error("expected HTML-escaped name")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped entities, got %q", got)
	}
}
