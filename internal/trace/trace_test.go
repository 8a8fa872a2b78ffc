package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Fatalf("round trip %q -> %q", s, lvl.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		lvl   Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeComment, false},
		{LevelDebug, ScopeComment, true},
		{LevelError, ScopeFile, true},
	}
	for _, tc := range cases {
		if got := tc.lvl.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.lvl, tc.scope, got, tc.want)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "diag", 0)
	file := Begin(tr, ScopeFile, "file:a.c", root.ID())
	Begin(tr, ScopeComment, "comment", file.ID()).End("")
	file.WithExtra("comments", "3").End("ok")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (comment scope filtered), got %d:\n%s", len(lines), buf.String())
	}

	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("bad json %q: %v", lines[2], err)
	}
	if ev.Kind != "end" || ev.Scope != "file" || ev.Name != "file:a.c" || ev.Detail != "ok" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.ParentID != root.ID() || ev.Extra["comments"] != "3" {
		t.Fatalf("unexpected parent/extra: %+v", ev)
	}
	if ev.GID == 0 {
		t.Fatalf("goroutine id not recorded")
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	s := Begin(tr, ScopePass, "parse", 0)
	s.WithExtra("b", "2").WithExtra("a", "1").End("done")

	out := buf.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (done) {a=1, b=2}") {
		t.Fatalf("unexpected text output:\n%s", out)
	}
}

func TestDisabledSpanPassesParentThrough(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	file := Begin(tr, ScopeFile, "file", 42)
	if file.ID() != 42 {
		t.Fatalf("filtered span should expose parent id, got %d", file.ID())
	}
	if d := file.End(""); d != 0 || buf.Len() != 0 {
		t.Fatalf("filtered span emitted output: %q", buf.String())
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeComment, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	var buf bytes.Buffer
	ok, err := DumpRing(NewMultiTracer(LevelDebug, Nop, ring), &buf, FormatText)
	if !ok || err != nil {
		t.Fatalf("DumpRing: ok=%v err=%v", ok, err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
}

func TestNewPicksModeFromLevel(t *testing.T) {
	tr, err := New(Config{Level: LevelError})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("error level should buffer in a ring, got %T", tr)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := tr.(*StreamTracer); !ok {
		t.Fatalf("phase level should stream, got %T", tr)
	}

	if tr, _ := New(Config{}); tr.Enabled() {
		t.Fatalf("off level must be disabled")
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)

	ctx := WithTracer(context.Background(), tr)
	ctx, outer := BeginCtx(ctx, ScopeDriver, "run")
	if CurrentSpan(ctx) != outer.ID() {
		t.Fatalf("context does not carry the span")
	}
	_, inner := BeginCtx(ctx, ScopePass, "parse")
	inner.End("")
	outer.End("")

	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context should give Nop")
	}
	if !strings.Contains(buf.String(), `"parent_id":`) {
		t.Fatalf("inner span lost its parent:\n%s", buf.String())
	}
}

func TestGoroutineIDDiffersAcrossGoroutines(t *testing.T) {
	main := goroutineID()
	if main == 0 || stackGoroutineID() != main {
		t.Fatalf("goroutineID() = %d, stack header gives %d", main, stackGoroutineID())
	}
	ch := make(chan uint64)
	go func() { ch <- goroutineID() }()
	if other := <-ch; other == 0 || other == main {
		t.Fatalf("other goroutine id %d, main %d", other, main)
	}
}
