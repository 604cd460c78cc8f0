package services

import (
	"regexp"
	"strings"
)

// taggedPattern pairs a compiled expression with a short label used in debug
// logs. Evaluation order follows slice order.
type taggedPattern struct {
	tag string
	re  *regexp.Regexp
}

// availabilityPatterns are lexical heuristics for scheduling questions. This
// is best-effort text matching, not a grammar; false positives and negatives
// are acceptable.
var availabilityPatterns = []taggedPattern{
	{"availability-word", regexp.MustCompile(`(?i)\b(available|availability)\b`)},
	{"meeting-then-when", regexp.MustCompile(`(?i)\b(interview|meeting|call)\b.*\b(when|time|date|schedule)\b`)},
	{"when-then-meeting", regexp.MustCompile(`(?i)\b(when|what time|schedule)\b.*\b(interview|meeting|call|available)\b`)},
	{"free-busy", regexp.MustCompile(`(?i)\b(free|busy)\b.*\b(time|schedule|when)\b`)},
	{"polite-request", regexp.MustCompile(`(?i)\b(can we|let's|would you like to)\b.*\b(meet|interview|call|schedule)\b`)},
	{"calendar-word", regexp.MustCompile(`(?i)\b(calendar|scheduling|appointment)\b`)},
	{"relative-day", regexp.MustCompile(`(?i)\b(this week|next week|today|tomorrow)\b.*\b(available|free|interview|meeting)\b`)},
}

// datePatterns extract human-readable date and time phrases. Multi-group
// patterns flatten to space-joined strings.
var datePatterns = []taggedPattern{
	{"relative-day", regexp.MustCompile(`(?i)\b(today|tomorrow)\b`)},
	{"relative-week", regexp.MustCompile(`(?i)\b(this|next)\s+(week|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)},
	{"day-part", regexp.MustCompile(`(?i)\b(morning|afternoon|evening)\b`)},
	{"clock-time", regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2})\s*(am|pm)?\b`)},
	{"hour-ampm", regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)},
	{"month-name", regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)},
	{"slash-date", regexp.MustCompile(`(?i)\b(\d{1,2}/\d{1,2})\b`)},
}

// IsAvailabilityQuestion reports whether the question appears to concern the
// résumé owner's schedule or interview availability.
func IsAvailabilityQuestion(question string) bool {
	for _, p := range availabilityPatterns {
		if p.re.MatchString(question) {
			return true
		}
	}
	return false
}

// ExtractDateContext collects every date/time phrase found in the question,
// in pattern order then match order, joined with ", ". It returns an empty
// string when nothing matches. The output is descriptive text for a human
// reader, not a parsed calendar date; no deduplication is applied.
func ExtractDateContext(question string) string {
	var phrases []string
	for _, p := range datePatterns {
		for _, m := range p.re.FindAllStringSubmatch(question, -1) {
			groups := m[1:]
			parts := make([]string, 0, len(groups))
			for _, g := range groups {
				if g != "" {
					parts = append(parts, g)
				}
			}
			if len(parts) > 0 {
				phrases = append(phrases, strings.Join(parts, " "))
			}
		}
	}
	return strings.Join(phrases, ", ")
}
