package services

import (
	"regexp"
	"sync"
	"unicode"
)

// BannedWords are rejected in marketplace listings, in English and
// Vietnamese.
var BannedWords = []string{
	"fuck", "fucking", "shit", "bitch", "bastard", "asshole",
	"porn", "nude", "nudes",
	"scam", "scammer", "phishing",
	"đm", "địt", "lừa đảo", "cá độ",
}

// maxRepeatedRunes is the run length ("!!!!!!", "aaaaaa") treated as spam.
const maxRepeatedRunes = 6

// ContentFilter screens user-written text posted to shared boards.
type ContentFilter struct {
	bannedWordRegexps []*regexp.Regexp
	allCapsPattern    *regexp.Regexp
	compiled          bool
	mu                sync.RWMutex
}

func NewContentFilter() *ContentFilter {
	cf := &ContentFilter{}
	cf.compilePatterns()
	return cf
}

func (cf *ContentFilter) compilePatterns() {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	if cf.compiled {
		return
	}

	cf.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		// \b does not see Vietnamese letters as word characters.
		pattern := `(?i)(^|[^\p{L}])` + regexp.QuoteMeta(word) + `($|[^\p{L}])`
		if re, err := regexp.Compile(pattern); err == nil {
			cf.bannedWordRegexps = append(cf.bannedWordRegexps, re)
		}
	}
	cf.allCapsPattern = regexp.MustCompile(`\p{Lu}{5,}`)
	cf.compiled = true
}

// FilterContent reports whether text is acceptable and, if not, a reason code.
func (cf *ContentFilter) FilterContent(text string) (bool, string) {
	cf.mu.RLock()
	defer cf.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range cf.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if longestRun(text) >= maxRepeatedRunes {
		return false, "spam_detected"
	}
	if len(cf.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, "excessive_caps"
	}
	return true, ""
}

func (cf *ContentFilter) GetRejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language": "Your post contains inappropriate language.",
		"spam_detected":          "Your post appears to be spam.",
		"excessive_caps":         "Please avoid using excessive capital letters.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "Your post does not meet the building's community guidelines."
}

// Check returns a validation error for the first unacceptable text.
func (cf *ContentFilter) Check(texts ...string) error {
	for _, t := range texts {
		if ok, reason := cf.FilterContent(t); !ok {
			return validationErrorf("%s", cf.GetRejectionMessage(reason))
		}
	}
	return nil
}

func longestRun(text string) int {
	longest, run := 0, 0
	var prev rune
	for i, r := range text {
		if i > 0 && r == prev && !unicode.IsSpace(r) && !unicode.IsDigit(r) {
			run++
		} else {
			run = 1
		}
		prev = r
		if run > longest {
			longest = run
		}
	}
	return longest
}
