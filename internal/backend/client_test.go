package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Scrin/pasta-frontend/internal/backend/backendtest"
)

type memSecrets struct {
	mu     sync.Mutex
	secret string
	fail   error
}

func (m *memSecrets) Secret() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.secret
}

func (m *memSecrets) SetSecret(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.secret = s
	return nil
}

func newTestClient(t *testing.T) (*Client, *backendtest.Backend, *memSecrets) {
	t.Helper()
	fake, server := backendtest.NewServer()
	t.Cleanup(server.Close)
	secrets := &memSecrets{}
	c, err := NewClient(server.URL, secrets, WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, fake, secrets
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := ParseBaseURL("")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != defaultBackendURL {
		t.Fatalf("ParseBaseURL(\"\") = %q, want http://%s", u.String(), defaultBackendURL)
	}

	u, err = ParseBaseURL("https://paste.example/sub/?x=1#frag")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.String() != "https://paste.example/sub" {
		t.Fatalf("ParseBaseURL = %q, want https://paste.example/sub", u.String())
	}

	if _, err := ParseBaseURL("http://"); err == nil {
		t.Fatalf("ParseBaseURL(http://) returned nil error, want missing host error")
	}
}

func TestNewClient_RequiresSecretStore(t *testing.T) {
	if _, err := NewClient("127.0.0.1:1", nil); err == nil {
		t.Fatalf("NewClient returned nil error without a secret store")
	}
}

func TestClient_SaveThenLoadRoundTrip(t *testing.T) {
	t.Parallel()
	c, fake, secrets := newTestClient(t)
	ctx := context.Background()

	saved, err := c.SavePaste(ctx, SaveRequest{Text: "hello\nworld", Mime: "text/x-go", Expiry: 3600})
	if err != nil {
		t.Fatalf("SavePaste returned error: %v", err)
	}
	if saved.ID == "" || saved.Secret == "" {
		t.Fatalf("SavePaste = %#v, want id and secret", saved)
	}
	if saved.Expiry != 3600 || saved.Mime != "text/x-go" {
		t.Fatalf("SavePaste = %#v, want expiry 3600 mime text/x-go", saved)
	}
	if secrets.Secret() != saved.Secret {
		t.Fatalf("stored secret = %q, want %q", secrets.Secret(), saved.Secret)
	}

	body := c.GetPaste(ctx, saved.ID)
	if !body.OK() || body.Value != "hello\nworld" {
		t.Fatalf("GetPaste = %#v, want hello\\nworld", body)
	}

	meta := c.GetMeta(ctx, saved.ID)
	if !meta.OK() {
		t.Fatalf("GetMeta outcome = %v (%v), want ok", meta.Outcome, meta.Err)
	}
	if meta.Value.Mime != "text/x-go" || meta.Value.SecretOrEmpty() != saved.Secret {
		t.Fatalf("GetMeta = %#v, want mime text/x-go and owner secret", meta.Value)
	}
	if fake.Requests("new") != 1 {
		t.Fatalf("backend saw %d saves, want 1", fake.Requests("new"))
	}
}

func TestClient_SaveOmitsNonPositiveExpiry(t *testing.T) {
	t.Parallel()
	c, _, _ := newTestClient(t)

	saved, err := c.SavePaste(context.Background(), SaveRequest{Text: "x", Mime: "text/plain", Expiry: 0})
	if err != nil {
		t.Fatalf("SavePaste returned error: %v", err)
	}
	if saved.Expiry != backendtest.DefaultExpiry {
		t.Fatalf("Expiry = %d, want backend default %d", saved.Expiry, backendtest.DefaultExpiry)
	}
}

func TestClient_EncodesSaveAndMetaPaths(t *testing.T) {
	t.Parallel()

	var paths []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "pasta/") || r.Header.Get("X-Request-ID") == "" {
			http.Error(w, "missing headers", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc","secret":"s3","expiry":60,"mime":"text/plain"}`))
	}))
	t.Cleanup(server.Close)

	secrets := &memSecrets{secret: "s3"}
	c, err := NewClient(server.URL, secrets)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.SavePaste(ctx, SaveRequest{Text: "x", Mime: "text/plain", ID: "abc", Expiry: -5}); err != nil {
		t.Fatalf("SavePaste returned error: %v", err)
	}
	if res := c.GetMeta(ctx, "abc"); !res.OK() {
		t.Fatalf("GetMeta outcome = %v (%v)", res.Outcome, res.Err)
	}

	want := []string{"/api/new/abc/s3//text/plain", "/api/meta/abc/s3"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestClient_ClassifiesReadFailures(t *testing.T) {
	t.Parallel()
	c, fake, _ := newTestClient(t)
	ctx := context.Background()

	if res := c.GetMeta(ctx, "missing"); res.Outcome != OutcomeNotFound {
		t.Fatalf("GetMeta(missing) outcome = %v, want not found", res.Outcome)
	}
	if res := c.GetPaste(ctx, "missing"); res.Outcome != OutcomeNotFound {
		t.Fatalf("GetPaste(missing) outcome = %v, want not found", res.Outcome)
	}

	fake.FailNext(http.StatusInternalServerError, "boom")
	res := c.GetPaste(ctx, "missing")
	if res.Outcome != OutcomeTransient {
		t.Fatalf("GetPaste on 500 outcome = %v, want transient", res.Outcome)
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "returned status 500") {
		t.Fatalf("GetPaste on 500 err = %v, want status 500", res.Err)
	}

	statuses := []struct {
		status int
		want   Outcome
	}{
		{http.StatusGone, OutcomeNotFound},
		{http.StatusTooManyRequests, OutcomeTransient},
		{http.StatusForbidden, OutcomeTransient},
		{http.StatusBadRequest, OutcomeTransient},
	}
	for _, tt := range statuses {
		fake.FailNext(tt.status, "")
		if res := c.GetMeta(ctx, "abc12345"); res.Outcome != tt.want {
			t.Fatalf("GetMeta on %d outcome = %v, want %v", tt.status, res.Outcome, tt.want)
		}
	}

	fake.FailNext(http.StatusOK, "{not-json")
	if meta := c.GetMeta(ctx, "anything"); meta.Outcome != OutcomeTransient {
		t.Fatalf("GetMeta on bad json outcome = %v, want transient", meta.Outcome)
	}
}

func TestClient_UnreachableBackendIsTransient(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", &memSecrets{}, WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if res := c.GetPaste(context.Background(), "abc"); res.Outcome != OutcomeTransient {
		t.Fatalf("GetPaste outcome = %v, want transient", res.Outcome)
	}
}

func TestClient_SaveErrors(t *testing.T) {
	t.Parallel()
	c, fake, secrets := newTestClient(t)
	ctx := context.Background()

	_, err := c.SavePaste(ctx, SaveRequest{Text: "", Mime: "text/plain"})
	got := SaveErrors(err)
	if len(got) != 1 || got[0] != "Paste must not be empty" {
		t.Fatalf("SaveErrors = %v, want validation message", got)
	}

	fake.FailNext(http.StatusBadGateway, "<html>bad gateway</html>")
	_, err = c.SavePaste(ctx, SaveRequest{Text: "x", Mime: "text/plain"})
	got = SaveErrors(err)
	if len(got) != 1 || got[0] != UnexpectedSaveMessage {
		t.Fatalf("SaveErrors = %v, want generic message", got)
	}

	fake.Put(backendtest.Paste{ID: "owned", Text: "a", Mime: "text/plain", Secret: "other", ExpiresAt: time.Now().Add(time.Hour)})
	_, err = c.SavePaste(ctx, SaveRequest{Text: "b", Mime: "text/plain", ID: "owned"})
	if err == nil {
		t.Fatalf("overwrite without ownership returned nil error")
	}
	if secrets.Secret() != "" {
		t.Fatalf("failed save stored secret %q", secrets.Secret())
	}
}

func TestClient_OverwriteKeepsID(t *testing.T) {
	t.Parallel()
	c, fake, _ := newTestClient(t)
	ctx := context.Background()

	first, err := c.SavePaste(ctx, SaveRequest{Text: "v1", Mime: "text/plain"})
	if err != nil {
		t.Fatalf("SavePaste returned error: %v", err)
	}
	second, err := c.SavePaste(ctx, SaveRequest{Text: "v2", Mime: "text/x-go", ID: first.ID})
	if err != nil {
		t.Fatalf("overwrite returned error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("overwrite id = %q, want %q", second.ID, first.ID)
	}
	stored, _ := fake.Get(first.ID)
	if stored.Text != "v2" || stored.Mime != "text/x-go" {
		t.Fatalf("stored paste = %#v, want v2 text/x-go", stored)
	}
}

func TestClient_ExpiredPasteIsNotFound(t *testing.T) {
	t.Parallel()
	c, fake, _ := newTestClient(t)
	now := time.Now()
	fake.SetClock(func() time.Time { return now })
	fake.Put(backendtest.Paste{ID: "old", Text: "x", Mime: "text/plain", ExpiresAt: now.Add(-time.Second)})

	if res := c.GetMeta(context.Background(), "old"); !res.NotFound() {
		t.Fatalf("GetMeta(expired) outcome = %v, want not found", res.Outcome)
	}
}

func TestClient_MetaWithholdsForeignSecret(t *testing.T) {
	t.Parallel()
	c, fake, _ := newTestClient(t)
	fake.Put(backendtest.Paste{ID: "p", Text: "x", Mime: "text/plain", Secret: "theirs", ExpiresAt: time.Now().Add(time.Hour)})

	res := c.GetMeta(context.Background(), "p")
	if !res.OK() {
		t.Fatalf("GetMeta outcome = %v", res.Outcome)
	}
	if res.Value.Secret != nil {
		t.Fatalf("GetMeta leaked secret %q", *res.Value.Secret)
	}
	if res.Value.Expiry == nil || *res.Value.Expiry <= 0 {
		t.Fatalf("GetMeta expiry = %v, want positive", res.Value.Expiry)
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomeOK:        "ok",
		OutcomeNotFound:  "not found",
		OutcomeTransient: "transient error",
		Outcome(99):      "unknown",
	} {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}
