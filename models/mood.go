// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Mood is the closed set of moods a post can be tagged with.
type Mood string

const (
	MoodPositive      Mood = "positive"
	MoodNeutral       Mood = "neutral"
	MoodContemplative Mood = "contemplative"
	MoodAmbitious     Mood = "ambitious"
)

// DefaultMood is applied when a post is created or decoded without a mood.
const DefaultMood = MoodNeutral

// ParseMood converts a raw value into a [Mood]. An empty value yields
// [DefaultMood]; any value outside the enumeration is an error.
func ParseMood(raw string) (Mood, error) {
	switch m := Mood(raw); m {
	case "":
		return DefaultMood, nil
	case MoodPositive, MoodNeutral, MoodContemplative, MoodAmbitious:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mood %q", raw)
	}
}

// Valid reports whether m belongs to the enumeration.
func (m Mood) Valid() bool {
	_, err := ParseMood(string(m))
	return err == nil && m != ""
}
