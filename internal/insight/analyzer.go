// Package insight derives emotional scoring from free-text reflections.
// Everything here is deterministic and side-effect free: the same input
// always produces the same Analysis, which lets callers test submission and
// recalibration flows with literal fixtures.
package insight

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Analysis is the derived, immutable scoring output for one reflection.
// Scores are clamped to [0,1]; Themes lists matched theme labels in
// first-occurrence order with duplicates removed.
type Analysis struct {
	EmotionalDepth float64  `json:"emotionalDepth"`
	SelfAwareness  float64  `json:"selfAwareness"`
	Themes         []string `json:"themes"`
}

// themeVocabulary maps theme labels to substring triggers. Triggers are
// intentionally short stems so inflected forms match ("connected",
// "awareness", "noticing").
var themeVocabulary = []struct {
	label    string
	triggers []string
}{
	{"calm", []string{"calm", "peace", "still", "quiet", "relax"}},
	{"energy", []string{"energy", "vital", "alive", "awake"}},
	{"connect", []string{"connect", "belong", "together", "relationship"}},
	{"express", []string{"express", "voice", "speak", "truth"}},
	{"aware", []string{"aware", "notic", "observ", "insight", "clarity"}},
	{"spirit", []string{"spirit", "soul", "sacred", "divine"}},
	{"gratitude", []string{"grateful", "gratitude", "thank", "appreciat"}},
	{"growth", []string{"grow", "learn", "transform", "overcome"}},
}

// reflectiveVocabulary feeds the depth heuristic.
var reflectiveVocabulary = []string{
	"feel", "felt", "emotion", "heart", "deep", "sense",
	"aware", "reflect", "understand", "realize", "meaning",
}

// firstPersonMarkers feed the self-awareness heuristic.
var firstPersonMarkers = []string{
	"i feel", "i felt", "i notice", "i am ", "i'm ", "i was",
	"i realize", "i think", "i learned", "my ",
}

// Analyze scores a raw reflection. It accepts any string, including empty;
// length validation is a caller concern.
func Analyze(text string) Analysis {
	lower := strings.ToLower(text)

	return Analysis{
		EmotionalDepth: depthScore(lower),
		SelfAwareness:  awarenessScore(lower),
		Themes:         matchThemes(lower),
	}
}

// matchThemes returns theme labels ordered by the position of their earliest
// trigger in the text. Ties keep vocabulary order, which is fixed.
func matchThemes(lower string) []string {
	type hit struct {
		label string
		pos   int
	}
	var hits []hit
	for _, tv := range themeVocabulary {
		earliest := -1
		for _, trig := range tv.triggers {
			if i := strings.Index(lower, trig); i >= 0 && (earliest < 0 || i < earliest) {
				earliest = i
			}
		}
		if earliest >= 0 {
			hits = append(hits, hit{label: tv.label, pos: earliest})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	themes := make([]string, 0, len(hits))
	for _, h := range hits {
		themes = append(themes, h.label)
	}
	return themes
}

// depthScore is monotonically non-decreasing in text length, sentence count
// and reflective-vocabulary hits, clamped to [0,1].
func depthScore(lower string) float64 {
	if lower == "" {
		return 0
	}
	length := utf8.RuneCountInString(lower)
	sentences := countSentences(lower)

	vocabHits := 0
	for _, w := range reflectiveVocabulary {
		if strings.Contains(lower, w) {
			vocabHits++
		}
	}

	lengthScore := capAt1(float64(length) / 400)
	sentenceScore := capAt1(float64(sentences) / 5)
	vocabScore := capAt1(float64(vocabHits) / 4)

	return clamp01(0.5*lengthScore + 0.2*sentenceScore + 0.3*vocabScore)
}

// awarenessScore scales with the number of first-person reflective phrases.
func awarenessScore(lower string) float64 {
	if lower == "" {
		return 0
	}
	hits := 0
	for _, m := range firstPersonMarkers {
		hits += strings.Count(lower, m)
	}
	return clamp01(float64(hits) * 0.25)
}

func countSentences(s string) int {
	n := 0
	inTerminator := false
	for _, r := range s {
		if r == '.' || r == '!' || r == '?' {
			if !inTerminator {
				n++
			}
			inTerminator = true
		} else {
			inTerminator = false
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

func capAt1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
