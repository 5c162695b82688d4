package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Rule pairs a named predicate over block content with the category it assigns.
type Rule struct {
	Name     string
	Category blocks.Category
	Match    func(content string) bool
}

// Pattern builds a Rule that matches when expr finds a match in the content.
func Pattern(name string, category blocks.Category, expr string) Rule {
	re := regexp.MustCompile(expr)
	return Rule{
		Name:     name,
		Category: category,
		Match:    re.MatchString,
	}
}

// Whitespace, digits, and word boundaries are Unicode-aware so that text
// extracted with non-breaking or typographic spaces and accented words
// classifies the same way as plain ASCII.
const (
	spaceChars = `\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}`
	space      = `[` + spaceChars + `]`
	digit      = `\p{Nd}`
	wordEnd    = `(?:[^\p{L}\p{N}_]|$)`
	captions   = `[A-Z` + spaceChars + `&]`
)

// DefaultRules returns the classification cascade in evaluation order:
// question, answer, title, then list item. Content matching none is a paragraph.
func DefaultRules() []Rule {
	return []Rule{
		Pattern("question_mark", blocks.Question, `\?\n?$`),
		Pattern("question_word", blocks.Question, `(?i)^(what|who|when|where|why|how|is|are|can|do|does|will|would|could|should)`+wordEnd),
		{Name: "question_numbered", Category: blocks.Question, Match: numberedQuestion},
		Pattern("question_sentence", blocks.Question, `(?i)^[A-Z][^.]*\?\n?$`),

		Pattern("answer_prefix", blocks.Answer, `(?i)^(ans|answer):`),
		Pattern("answer_numbered", blocks.Answer, `(?i)^`+space+`*`+digit+`+\.`+space+`*[^.]*$`),

		Pattern("title_caps", blocks.Title, `^`+space+`*[A-Z]`+captions+`*$`),
		Pattern("title_numbered", blocks.Title, `^`+digit+`+\.`+space+`+[A-Z].*\n?$`),
		Pattern("title_roman", blocks.Title, `^[IVX]+\.`+space+`+.*\n?$`),
		Pattern("title_markdown", blocks.Title, `^#{1,6}`+space+`+`),

		Pattern("list_bullet", blocks.ListItem, `^`+space+`*[-*]`+space+`+`),
		Pattern("list_numbered", blocks.ListItem, `^`+space+`*`+digit+`+[.)]`+space+`+`),
		Pattern("list_lettered", blocks.ListItem, `^`+space+`*[a-z][.)]`+space+`+`),
	}
}

var numberPrefix = regexp.MustCompile(`^` + digit + `+\.`)

// numberedQuestion matches a numbered marker followed by whitespace where,
// for some split of that whitespace, the rest of the line holds no period.
func numberedQuestion(content string) bool {
	loc := numberPrefix.FindStringIndex(content)
	if loc == nil {
		return false
	}

	rest := content[loc[1]:]
	var cuts []int
	for i, r := range rest {
		if !isSpace(r) {
			break
		}
		cuts = append(cuts, i+utf8.RuneLen(r))
	}

	for _, cut := range cuts {
		line, _, _ := strings.Cut(rest[cut:], "\n")
		if !strings.Contains(line, ".") {
			return true
		}
	}
	return false
}

// isSpace reports whether r is whitespace in the sense of the space class.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || (r >= 0x1c && r <= 0x1f)
}
