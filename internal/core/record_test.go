package core

import "testing"

func TestRecordValidate(t *testing.T) {
	cases := []struct {
		r  Record
		ok bool
	}{
		{Record{Date: "2024-06-03"}, true},
		{Record{Date: "2024-06-03", Training: []string{RestDay}}, true},
		{Record{Date: ""}, false},
		{Record{Date: "   "}, false},
		{Record{Date: "not-a-date"}, false},
		{Record{Date: "2024-13-40"}, false},
	}
	for i, tc := range cases {
		err := tc.r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIsTrainingDay(t *testing.T) {
	cases := []struct {
		training []string
		want     bool
	}{
		{nil, false},
		{[]string{}, false},
		{[]string{RestDay}, false},
		{[]string{"legs"}, true},
		{[]string{RestDay, "back"}, true},
	}
	for i, tc := range cases {
		r := Record{Date: "2024-06-03", Training: tc.training}
		if got := r.IsTrainingDay(); got != tc.want {
			t.Fatalf("case %d: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestSessionsFiltersRestDay(t *testing.T) {
	r := Record{Date: "2024-06-03", Training: []string{"back", RestDay, "legs"}}
	got := r.Sessions()
	if len(got) != 2 || got[0] != "back" || got[1] != "legs" {
		t.Fatalf("unexpected sessions: %v", got)
	}
}

func TestNormalize(t *testing.T) {
	r := Record{Date: "2024-06-03"}.Normalize()
	if r.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if r.Training == nil {
		t.Fatalf("expected non-nil training slice")
	}

	// An existing ID is preserved.
	r2 := Record{ID: "keep-me", Date: "2024-06-03"}.Normalize()
	if r2.ID != "keep-me" {
		t.Fatalf("expected ID preserved, got %q", r2.ID)
	}
}
