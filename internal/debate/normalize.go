package debate

import "strings"

// Generated messages are coerced into a fixed word-count band so every bubble
// reads at roughly the same pace in the client.
const (
	minResponseWords = 50
	maxResponseWords = 60
)

// fillerSentence pads short responses up to the minimum word count. The
// padding is deterministic so normalization stays testable.
const fillerSentence = "Also, consider the practical steps and supportive strategies that align with this perspective."

// WordCount counts maximal runs of non-whitespace.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Normalize forces text into the [50,60] word band.
//
// In-band input is returned trimmed but otherwise untouched. Longer input is
// cut to exactly 60 words with a trailing "..." token; the cut may land
// mid-sentence, which is the accepted cost of fixed-length pacing. Shorter
// input is extended with words drawn cyclically from fillerSentence until it
// reaches exactly 50 words.
func Normalize(text string) string {
	words := strings.Fields(text)
	if len(words) >= minResponseWords && len(words) <= maxResponseWords {
		return strings.TrimSpace(text)
	}
	if len(words) > maxResponseWords {
		return strings.Join(words[:maxResponseWords], " ") + " ..."
	}

	filler := strings.Fields(fillerSentence)
	if len(filler) == 0 {
		return strings.Join(words, " ")
	}
	for i := 0; len(words) < minResponseWords; i++ {
		words = append(words, filler[i%len(filler)])
	}
	return strings.Join(words, " ")
}
