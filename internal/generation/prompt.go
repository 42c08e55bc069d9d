package generation

import (
	"fmt"
	"strings"
)

// Options are the structured inputs to a single generation request.
type Options struct {
	JobDescription string
	Skills         []string
	Experience     string
	Tone           string
	Length         string
	Budget         string
	Timeline       string
}

// Target word counts per length class.
var wordTargets = map[string]int{
	"short":    150,
	"medium":   300,
	"detailed": 500,
}

const defaultWordTarget = 300

// Tone vocabulary: instruction phrases per known tone. Unknown tones pass
// through verbatim.
var tonePhrases = map[string]string{
	"formal":         "formal and professional",
	"conversational": "friendly and conversational",
	"confident":      "confident and assertive",
}

// TargetWords resolves the length class to a word count.
func TargetWords(length string) int {
	if w, ok := wordTargets[length]; ok {
		return w
	}
	return defaultWordTarget
}

// TonePhrase resolves the tone to its instruction phrase.
func TonePhrase(tone string) string {
	if p, ok := tonePhrases[tone]; ok {
		return p
	}
	return tone
}

// BuildPrompt assembles the deterministic provider prompt. Optional budget
// and timeline lines are omitted entirely when absent.
func BuildPrompt(o Options) string {
	skills := strings.Join(o.Skills, ", ")
	if skills == "" {
		skills = "General"
	}

	lines := []string{
		"You are an expert freelance proposal writer. Write winning proposals.",
		fmt.Sprintf("Tone: %s. Length: ~%d words.", TonePhrase(o.Tone), TargetWords(o.Length)),
		"Structure: strong hook → relevant experience → specific approach → clear CTA.",
		`Be specific with numbers and results. Avoid "I am the perfect candidate".`,
		"",
		"Write a proposal for:",
		o.JobDescription,
		"",
		"Skills: " + skills,
		"Experience: " + o.Experience,
	}
	if o.Budget != "" {
		lines = append(lines, "Budget: "+o.Budget)
	}
	if o.Timeline != "" {
		lines = append(lines, "Timeline: "+o.Timeline)
	}

	return strings.Join(lines, "\n")
}
