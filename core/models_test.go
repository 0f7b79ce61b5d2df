package core

import (
	"testing"
)

func TestDefaultRequest(t *testing.T) {
	req := DefaultRequest()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "query string", got: req.QueryString, want: "schools"},
		{name: "topic id", got: req.TopicID, want: "0"},
		{name: "year", got: req.Year, want: "2023"},
		{name: "name", got: req.Name, want: "Rishi Sunak"},
		{name: "party", got: req.Party, want: "Conservative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("DefaultRequest() %s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestSpeechColumns(t *testing.T) {
	want := []string{"scraped_name", "proc_party", "text", "year", "person_url", "topic_id"}
	if len(SpeechColumns) != len(want) {
		t.Fatalf("SpeechColumns has %d entries, want %d", len(SpeechColumns), len(want))
	}
	for i := range want {
		if SpeechColumns[i] != want[i] {
			t.Errorf("SpeechColumns[%d] = %q, want %q", i, SpeechColumns[i], want[i])
		}
	}
}

func TestRequestWithQuery(t *testing.T) {
	base := DefaultRequest()
	req := base.WithQuery("hospitals")

	if req.QueryString != "hospitals" {
		t.Errorf("WithQuery() QueryString = %q, want %q", req.QueryString, "hospitals")
	}
	if base.QueryString != "schools" {
		t.Errorf("WithQuery() modified the receiver: %q", base.QueryString)
	}
	if req.Name != base.Name {
		t.Errorf("WithQuery() changed Name to %q", req.Name)
	}
}
