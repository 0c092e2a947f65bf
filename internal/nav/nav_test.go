package nav

import (
	"reflect"
	"testing"
)

type recordingNav struct {
	current string
	calls   []string
}

func (r *recordingNav) CurrentID() string { return r.current }

func (r *recordingNav) Push(id string) {
	r.calls = append(r.calls, "push:"+id)
	r.current = id
}

func (r *recordingNav) Replace(id string) {
	r.calls = append(r.calls, "replace:"+id)
	r.current = id
}

func TestPushOrReplace(t *testing.T) {
	tests := []struct {
		name    string
		current string
		id      string
		want    []string
	}{
		{name: "same id is a no-op", current: "abc123", id: "abc123", want: nil},
		{name: "root to root is a no-op", current: "", id: "", want: nil},
		{name: "root to id replaces", current: "", id: "abc123", want: []string{"replace:abc123"}},
		{name: "id to other id pushes", current: "abc123", id: "def456", want: []string{"push:def456"}},
		{name: "id to root pushes", current: "abc123", id: "", want: []string{"push:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingNav{current: tt.current}
			PushOrReplace(r, tt.id)
			if !reflect.DeepEqual(r.calls, tt.want) {
				t.Fatalf("calls = %v, want %v", r.calls, tt.want)
			}
		})
	}
}

func TestHistory_StartLocation(t *testing.T) {
	tests := map[string]string{
		"":                           "",
		"/":                          "",
		"abc123":                     "abc123",
		"/abc123":                    "abc123",
		"https://paste.example/x9y8": "x9y8",
	}
	for start, want := range tests {
		if got := NewHistory(start, 0).CurrentID(); got != want {
			t.Errorf("NewHistory(%q).CurrentID() = %q, want %q", start, got, want)
		}
	}
}

func TestHistory_BackAndForward(t *testing.T) {
	h := NewHistory("", 5)

	// Saving from the blank editor replaces it.
	PushOrReplace(h, "first")
	if h.CanBack() {
		t.Fatalf("blank editor should not remain in history")
	}

	PushOrReplace(h, "second")
	if h.CurrentID() != "second" || h.Path() != "/second" {
		t.Fatalf("current = %q path = %q", h.CurrentID(), h.Path())
	}

	if !h.Back() || h.CurrentID() != "first" {
		t.Fatalf("Back should return to first, got %q", h.CurrentID())
	}
	if h.Back() {
		t.Fatalf("Back past the first entry should not move")
	}
	if !h.Forward() || h.CurrentID() != "second" {
		t.Fatalf("Forward should return to second, got %q", h.CurrentID())
	}
	if h.Forward() {
		t.Fatalf("Forward past the last entry should not move")
	}

	h.Back()
	h.Push("third")
	if h.CanForward() {
		t.Fatalf("push should drop forward entries")
	}
}

func TestHistory_Recent(t *testing.T) {
	h := NewHistory("a", 2)
	h.Push("b")
	h.Push("")
	h.Push("c")

	if got, want := h.Recent(), []string{"c", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Recent = %v, want %v", got, want)
	}

	h.Forget("c")
	if got, want := h.Recent(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Recent after Forget = %v, want %v", got, want)
	}
}
