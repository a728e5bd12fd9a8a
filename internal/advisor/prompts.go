package advisor

import (
	"fmt"
	"strings"

	"fitlog/internal/core"
	"fitlog/internal/report"
)

// Prompt pairs a system role description with the user request.
type Prompt struct {
	System string
	User   string
}

const (
	captionSystem = "You are a fitness blogger. Write a social media caption in the first person, honest and down to earth. End with a question for readers and a few hashtags."
	mealSystem    = "You are a workout buddy who knows nutrition. Recommend one or two concrete meal combinations with reasons, and if it is takeout add one tip for avoiding a bad pick. Keep the tone light."
	rescueSystem  = "You are a warm, reassuring fitness blogger. First calm the reader down and push back on guilt, then give eating and movement suggestions for the next 24 hours. Speak gently, like a close friend."
)

// CaptionPrompt builds the weekly recap caption request from the
// aggregated week and its raw records.
func CaptionPrompt(agg report.WeeklyAggregate, records []core.Record) Prompt {
	labels := make([]string, 0, len(agg.Categories))
	for _, c := range agg.Categories {
		labels = append(labels, c.Label)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Please write a weekly fitness recap caption for me.\n")
	fmt.Fprintf(&sb, "Data: trained %d days, focus areas %s.\n", agg.TrainingDays, strings.Join(labels, ", "))
	sb.WriteString("Log:\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "%s: %s\n", r.Date, r.Mood)
	}
	return Prompt{System: captionSystem, User: strings.TrimRight(sb.String(), "\n")}
}

// MealPrompt builds the "what should I eat" request.
func MealPrompt(goal, scenario, preference string) Prompt {
	return Prompt{
		System: mealSystem,
		User:   fmt.Sprintf("Goal: %s. Scenario: %s. Preference: %s. Please recommend.", goal, scenario, preference),
	}
}

// RescuePrompt builds the post-overeating reassurance request.
func RescuePrompt(food, feeling string) Prompt {
	return Prompt{
		System: rescueSystem,
		User:   fmt.Sprintf("I ate %s and I feel %s. I'm anxious about it.", food, feeling),
	}
}
