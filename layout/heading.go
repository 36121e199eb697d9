package layout

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// MaxHeadingWords is the word limit for all-caps and colon headings.
const MaxHeadingWords = 10

// HeadingRule classifies line i of a plain text file as a heading.
type HeadingRule struct {
	Name  string
	Match func(lines []string, i int) bool
}

// HeadingRules are evaluated in order; the first match names the heading type.
var HeadingRules = []HeadingRule{
	{Name: "all_caps", Match: isAllCaps},
	{Name: "colon", Match: endsWithColon},
	{Name: "numbered", Match: isNumbered},
	{Name: "underlined", Match: isUnderlined},
}

// TextHeading is a heading found in plain text.
type TextHeading struct {
	Line int // 1-indexed
	Text string
	Kind string
}

// DetectHeadings returns the headings in lines, in line order. Blank lines
// are never headings.
func DetectHeadings(lines []string) []TextHeading {
	var out []TextHeading
	for i := range lines {
		if kind, ok := ClassifyLine(lines, i); ok {
			out = append(out, TextHeading{
				Line: i + 1,
				Text: strings.TrimSpace(lines[i]),
				Kind: kind,
			})
		}
	}
	return out
}

// ClassifyLine reports the name of the first rule matching line i.
func ClassifyLine(lines []string, i int) (string, bool) {
	if strings.TrimSpace(lines[i]) == "" {
		return "", false
	}
	for _, rule := range HeadingRules {
		if rule.Match(lines, i) {
			return rule.Name, true
		}
	}
	return "", false
}

// isAllCaps requires at least one cased letter and no lower-case ones.
func isAllCaps(lines []string, i int) bool {
	text := strings.TrimSpace(lines[i])
	cased := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased && wordCount(text) <= MaxHeadingWords
}

func endsWithColon(lines []string, i int) bool {
	text := strings.TrimSpace(lines[i])
	return strings.HasSuffix(text, ":") && wordCount(text) <= MaxHeadingWords
}

var numberedPrefix = regexp.MustCompile(`^\d+[.)]\s+`)

func isNumbered(lines []string, i int) bool {
	return numberedPrefix.MatchString(strings.TrimSpace(lines[i]))
}

func isUnderlined(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	next := strings.TrimSpace(lines[i+1])
	if !IsUnderline(next) {
		return false
	}
	text := strings.TrimSpace(lines[i])
	return float64(len([]rune(next))) >= float64(len([]rune(text)))*0.5
}

// IsUnderline reports whether s is a non-empty run of = - * _ characters.
func IsUnderline(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "=-*_") == ""
}

// StyleHeadingPrefix is the style-name prefix marking a word-processor heading.
const StyleHeadingPrefix = "Heading"

// StyleHeadingLevel reports whether a paragraph style names a heading, and
// its level. "Heading 2" is level 2; an unparseable suffix yields level 1.
func StyleHeadingLevel(style string) (int, bool) {
	if !strings.HasPrefix(style, StyleHeadingPrefix) {
		return 0, false
	}
	suffix := strings.TrimSpace(strings.TrimPrefix(style, StyleHeadingPrefix))
	level, err := strconv.Atoi(suffix)
	if err != nil || level < 1 {
		return 1, true
	}
	return level, true
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
