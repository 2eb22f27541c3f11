package extract

import (
	"regexp"
	"strings"
)

// minParagraphLen is the shortest text still worth keeping; anything under it
// is captions, tickers or nav fragments.
const minParagraphLen = 30

// pureNumericRe matches blocks with no alphabetic content at all: stray
// prices, percentages and table cells.
var pureNumericRe = regexp.MustCompile(`^[\d\$\.\s,%–\-:]+$`)

// boilerplateMarkers flag the recurring noise of news pages. Matched
// case-insensitively as substrings.
var boilerplateMarkers = []string{
	"cookie",
	"advertisement",
	"subscribe",
	"sign up",
	"related:",
	"sponsored",
}

// authorBioMarkers flag first-person biography blocks and disclaimers that
// publishers append below the article body.
var authorBioMarkers = []string{
	"my name is",
	"i was born",
	"i grew up",
	"my parents",
	"my siblings",
	"i've always",
	"i am",
	"i'm from",
	"about the author",
	"author bio",
	"disclaimer",
	"contact me at",
	"follow me on",
	"my journey",
	"my experience",
	"i started",
	"years ago",
}

// IsGenuine reports whether a block of text looks like article prose rather
// than boilerplate, a caption or a price ticker.
func IsGenuine(text string) bool {
	if len(text) < minParagraphLen {
		return false
	}
	if pureNumericRe.MatchString(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// LooksLikeAuthorBio reports whether text reads like an author biography or
// disclaimer block. Evaluated independently of IsGenuine; also used to detect
// section boundaries during span refinement.
func LooksLikeAuthorBio(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range authorBioMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
