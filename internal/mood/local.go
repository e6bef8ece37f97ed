package mood

import "strings"

// localGuide builds a guide without a provider, from simple signals in
// the recent history and mood entries.
func localGuide(input compactInput) Guide {
	var blob strings.Builder
	for _, t := range input.History {
		blob.WriteString(strings.ToLower(t.UserMessage))
		blob.WriteString(" ")
	}
	for _, m := range input.Moods {
		blob.WriteString(strings.ToLower(m.Mood))
		blob.WriteString(" ")
		blob.WriteString(strings.ToLower(m.Note))
		blob.WriteString(" ")
	}
	text := blob.String()

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	guide := Guide{
		Summary: "Here is a gentle starting plan based on your recent check-ins.",
	}

	if contains("hopeless", "worthless", "hurt myself", "suicide", "end it all") {
		guide.Urgent = true
		guide.Summary = "Some of your recent messages suggest you may be going through a very hard time. Please consider reaching out to someone you trust or a local support line."
	}

	if contains("stress", "stressed", "overwhelm", "anxious", "anxiety", "panic") {
		guide.Recommendations = append(guide.Recommendations, Recommendation{
			Title:           "Box breathing",
			Type:            "breathing",
			DurationMinutes: 5,
			Intensity:       "low",
			Steps: []string{
				"Sit comfortably and relax your shoulders.",
				"Inhale through your nose for 4 counts.",
				"Hold for 4 counts, exhale for 4 counts, hold for 4 counts.",
				"Repeat for five minutes.",
			},
		})
	}

	if contains("sleep", "insomnia", "tired", "exhausted", "awake") {
		guide.Recommendations = append(guide.Recommendations, Recommendation{
			Title:           "Wind-down routine",
			Type:            "lifestyle",
			DurationMinutes: 30,
			Intensity:       "low",
			Steps: []string{
				"Put screens away 30 minutes before bed.",
				"Dim the lights and keep the room cool.",
				"Try light stretching or reading until you feel drowsy.",
			},
		})
	}

	if contains("sad", "down", "depressed", "lonely", "unmotivated") {
		guide.Recommendations = append(guide.Recommendations, Recommendation{
			Title:           "Short outdoor walk",
			Type:            "exercise",
			DurationMinutes: 15,
			Intensity:       "moderate",
			Steps: []string{
				"Step outside, even briefly.",
				"Walk at a comfortable pace and notice your surroundings.",
				"If you can, invite someone to join you.",
			},
		})
	}

	if contains("tense", "tension", "stiff", "headache", "back pain") {
		guide.Recommendations = append(guide.Recommendations, Recommendation{
			Title:           "Gentle yoga stretch",
			Type:            "yoga",
			DurationMinutes: 10,
			Intensity:       "low",
			Steps: []string{
				"Start in child's pose and breathe slowly.",
				"Move through cat-cow for a minute.",
				"Finish with a seated forward fold.",
			},
		})
	}

	// Always give the user something to act on.
	if len(guide.Recommendations) == 0 {
		guide.Recommendations = append(guide.Recommendations, Recommendation{
			Title:           "Daily check-in",
			Type:            "lifestyle",
			DurationMinutes: 5,
			Intensity:       "low",
			Steps: []string{
				"Take five minutes to note how you feel today.",
				"Name one small thing that went well.",
				"Pick one small thing to look forward to tomorrow.",
			},
		})
	}

	return guide
}
