package report

import (
	"fmt"
	"strings"
)

// Fixed keyword tables for the mood heuristic. Matching is a
// case-sensitive substring test, one point per keyword present.
var (
	positiveWords = []string{"not bad", "happy", "great", "relaxed"}
	negativeWords = []string{"tired", "sore", "sleepy", "drained"}
)

const (
	phraseUpbeat  = "energy's been pretty on point"
	phraseTired   = "a bit tired but not slacking"
	phraseNeutral = "overall holding steady"
	phraseRest    = "this week was all about rest and recovery"

	listSeparator  = ", "
	sentenceSuffix = " ~"
)

// MoodScore is the number of positive keywords found in text minus the
// number of negative ones.
func MoodScore(text string) int {
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(text, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(text, w) {
			score--
		}
	}
	return score
}

func moodPhrase(score int) string {
	switch {
	case score >= 2:
		return phraseUpbeat
	case score <= -2:
		return phraseTired
	default:
		return phraseNeutral
	}
}

// SummarySentence renders the one-line week summary. It is total: any
// combination of inputs produces a sentence. A zero-training week always
// yields the fixed rest phrase, regardless of mood.
func SummarySentence(trainingDays int, categories []CategoryCount, moodText string) string {
	var parts []string
	if trainingDays <= 0 {
		parts = append(parts, phraseRest)
	} else {
		parts = append(parts, fmt.Sprintf("trained %d days this week", trainingDays))
		top := topLabels(categories, 2)
		if len(top) > 0 {
			parts = append(parts, strings.Join(top, " & ")+" led the way")
		}
		parts = append(parts, moodPhrase(MoodScore(moodText)))
	}
	return strings.Join(parts, listSeparator) + sentenceSuffix
}

func topLabels(categories []CategoryCount, n int) []string {
	if n > len(categories) {
		n = len(categories)
	}
	out := make([]string, 0, n)
	for _, c := range categories[:n] {
		out = append(out, c.Label)
	}
	return out
}
