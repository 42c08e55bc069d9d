package generation

import (
	"regexp"
	"strings"
)

// Score bounds.
const (
	ScoreFloor = 60
	ScoreCeil  = 100
)

// Per-category caps applied before the final clamp.
const (
	skillBonusPerHit = 2
	skillBonusCap    = 10
	specificityPer   = 2
	specificityCap   = 10
	clichePenaltyPer = 2
	clichePenaltyCap = 6
)

// Specificity markers: concrete numbers a strong proposal tends to carry.
// Matches are summed across all five patterns.
var specificityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(?:\.\d+)?%`),
	regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?`),
	regexp.MustCompile(`(?i)\b\d+\s*(?:day|week|month|year)s?\b`),
	regexp.MustCompile(`\b\d+\+`),
	regexp.MustCompile(`(?i)\b\d+x\b`),
}

// Fixed cliché list; each distinct match costs clichePenaltyPer points.
var clichePhrases = []string{
	"perfect candidate",
	"perfect fit for this job",
	"think outside the box",
	"go the extra mile",
	"best of the best",
	"hit the ground running",
}

var (
	seniorPattern = regexp.MustCompile(`(?i)\b\d+\+?\s*years?\b|\bdecades?\b|\bextensive\b|\bseasoned\b`)
	midPattern    = regexp.MustCompile(`(?i)\b\d+\+?\s*years?\b|\bexperience\b|\bproven\b`)

	greetingPattern = regexp.MustCompile(`(?i)\b(hello|hi|dear|greetings)\b`)
	closingPattern  = regexp.MustCompile(`(?i)\b(regards|sincerely|best|thank you|looking forward)\b`)

	tonePatterns = map[string]*regexp.Regexp{
		"confident":      regexp.MustCompile(`(?i)\b(i will|i can|confident|proven|guarantee)\b`),
		"formal":         regexp.MustCompile(`(?i)\b(furthermore|moreover|therefore|accordingly)\b`),
		"conversational": regexp.MustCompile(`(?i)\b(let's|happy to|excited|love to)\b`),
	}
)

// Score rates generated text against the request options. Pure: same text
// and options always produce the same score, bounded to
// [ScoreFloor, ScoreCeil]. Per-category caps apply before summing; the
// clamp applies to the total.
func Score(text string, o Options) int {
	score := ScoreFloor

	score += lengthFit(text, o.Length)
	score += skillCoverage(text, o.Skills)
	score += experienceAlignment(text, o.Experience)
	score += specificity(text)
	score -= clichePenalty(text)
	score += structure(text)
	score += toneBonus(text, o.Tone)

	if score < ScoreFloor {
		score = ScoreFloor
	}
	if score > ScoreCeil {
		score = ScoreCeil
	}
	return score
}

// lengthFit compares the actual word count to the target for the length
// class: the closer the ratio to 1.0, the bigger the bonus.
func lengthFit(text, length string) int {
	target := TargetWords(length)
	actual := len(strings.Fields(text))
	ratio := float64(actual) / float64(target)

	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return 15
	case ratio >= 0.6 && ratio <= 1.4:
		return 10
	case ratio >= 0.4 && ratio <= 1.6:
		return 5
	default:
		return 0
	}
}

func skillCoverage(text string, skills []string) int {
	lower := strings.ToLower(text)
	bonus := 0
	for _, skill := range skills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if strings.Contains(lower, s) {
			bonus += skillBonusPerHit
		}
	}
	if bonus > skillBonusCap {
		bonus = skillBonusCap
	}
	return bonus
}

func experienceAlignment(text, experience string) int {
	switch experience {
	case "senior":
		if seniorPattern.MatchString(text) {
			return 5
		}
	case "mid":
		if midPattern.MatchString(text) {
			return 4
		}
	case "junior":
		return 3
	}
	return 0
}

func specificity(text string) int {
	matches := 0
	for _, p := range specificityPatterns {
		matches += len(p.FindAllString(text, -1))
	}
	bonus := matches * specificityPer
	if bonus > specificityCap {
		bonus = specificityCap
	}
	return bonus
}

func clichePenalty(text string) int {
	lower := strings.ToLower(text)
	penalty := 0
	for _, phrase := range clichePhrases {
		if strings.Contains(lower, phrase) {
			penalty += clichePenaltyPer
		}
	}
	if penalty > clichePenaltyCap {
		penalty = clichePenaltyCap
	}
	return penalty
}

func structure(text string) int {
	bonus := 0

	head := text
	if len(head) > 100 {
		head = head[:100]
	}
	if greetingPattern.MatchString(head) {
		bonus += 2
	}

	tail := text
	if len(tail) > 150 {
		tail = tail[len(tail)-150:]
	}
	if closingPattern.MatchString(tail) {
		bonus += 3
	}

	return bonus
}

func toneBonus(text, tone string) int {
	p, ok := tonePatterns[tone]
	if !ok {
		return 0
	}
	if p.MatchString(text) {
		return 3
	}
	return 0
}
