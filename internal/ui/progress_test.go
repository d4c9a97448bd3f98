package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"crypt/internal/driver"
)

func TestApplyTracksRowsAndTally(t *testing.T) {
	files := []string{"a.crypt", "b.crypt"}
	m := NewProgressModel("check", files, nil).(*checkModel)

	steps := []struct {
		ev       driver.Event
		label    string
		fraction float64
	}{
		{driver.Event{File: "a.crypt", Stage: driver.StageParse, Status: driver.StatusWorking}, "parsing", 0.25},
		{driver.Event{File: "a.crypt", Stage: driver.StageParse, Status: driver.StatusDone, Elapsed: 3 * time.Millisecond}, "ok", 0.5},
		{driver.Event{File: "b.crypt", Stage: driver.StageParse, Status: driver.StatusCached}, "cached", 1},
		{driver.Event{File: "missing.crypt", Stage: driver.StageParse, Status: driver.StatusError}, "", 1},
	}
	for _, st := range steps {
		m.apply(st.ev)
		if st.label != "" {
			if got := rowLabel(m.rows[m.byPath[st.ev.File]].status); got != st.label {
				t.Fatalf("%s: label = %q, want %q", st.ev.File, got, st.label)
			}
		}
		if got := m.fraction(); got != st.fraction {
			t.Fatalf("after %+v: fraction = %v, want %v", st.ev, got, st.fraction)
		}
	}
	if got := m.tally(); got != (tally{parsed: 1, cached: 1}) {
		t.Fatalf("tally = %+v", got)
	}
}

func TestViewShowsFailure(t *testing.T) {
	m := NewProgressModel("check", []string{"conf/app.crypt", "conf/db.crypt"}, nil).(*checkModel)
	m.apply(driver.Event{
		File:    "conf/app.crypt",
		Status:  driver.StatusError,
		Err:     errors.New("conf/app.crypt: unclosed object\nsecond line"),
		Elapsed: 12 * time.Millisecond,
	})
	m.apply(driver.Event{File: "conf/db.crypt", Status: driver.StatusDone})
	m.closed = true

	view := m.View()
	for _, want := range []string{"done: check 2/2", "(1 ok, 0 cached, 1 failed)", "failed", "  12ms", "└ conf/app.crypt: unclosed object", "conf/db.crypt"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "second line") {
		t.Fatalf("view shows more than the first error line:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"日本語テキスト", 8, "日本..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
