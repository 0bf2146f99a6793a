package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// formatError indicates a response did not contain the markup the parser
// anchors on. It signals site drift, not a retryable condition.
type formatError struct {
	Page   string
	Detail string
}

func (e *formatError) Error() string {
	return fmt.Sprintf("unexpected %s page format: %s", e.Page, e.Detail)
}

// blockKind enumerates the block elements a puzzle description is reduced to.
type blockKind int

const (
	blockHeading blockKind = iota
	blockParagraph
	blockCode
	blockList
)

// contentBlock is one block of puzzle prose. Text carries inline markdown
// for headings and paragraphs and verbatim text for code blocks; Items is
// set for lists only.
type contentBlock struct {
	Kind  blockKind
	Text  string
	Items []string
}

// puzzleContent is the typed form of a puzzle description page. Both
// articles of a solved day (part one and part two) are concatenated in
// document order.
type puzzleContent struct {
	Title  string
	Blocks []contentBlock
}

// markdown renders the block sequence as a Markdown document.
func (p *puzzleContent) markdown() string {
	var b strings.Builder
	for i, blk := range p.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch blk.Kind {
		case blockHeading:
			b.WriteString("## " + blk.Text + "\n")
		case blockParagraph:
			b.WriteString(blk.Text + "\n")
		case blockCode:
			text := blk.Text
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			b.WriteString("```\n" + text + "```\n")
		case blockList:
			for _, item := range blk.Items {
				b.WriteString("- " + item + "\n")
			}
		}
	}
	return b.String()
}

// findElement returns the first element with the given tag, depth-first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// parseMain parses an HTML body and returns its <main> element, the anchor
// every page of the site shares.
func parseMain(body []byte, page string) (*html.Node, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &formatError{Page: page, Detail: "malformed HTML: " + err.Error()}
	}
	mainNode := findElement(root, "main")
	if mainNode == nil {
		return nil, &formatError{Page: page, Detail: "missing <main> element"}
	}
	return mainNode, nil
}

// loginLinkRe matches the login link the site renders for requests whose
// session cookie is missing or expired.
var loginLinkRe = regexp.MustCompile(`href="/[0-9]{4}/auth/login"`)

func loggedOut(body []byte) bool {
	return loginLinkRe.Match(body)
}

// parseDescription extracts the puzzle prose from a puzzle page. Each
// article child is mapped to a block; decorative or unknown nodes are
// dropped rather than treated as errors.
func parseDescription(body []byte) (*puzzleContent, error) {
	mainNode, err := parseMain(body, "puzzle")
	if err != nil {
		return nil, err
	}

	var articles []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "article" && hasClass(n, "day-desc") {
			articles = append(articles, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(mainNode)
	if len(articles) == 0 {
		return nil, &formatError{Page: "puzzle", Detail: "no day-desc article found"}
	}

	content := &puzzleContent{}
	for _, article := range articles {
		for c := article.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "h2":
				text := strings.Trim(strings.TrimSpace(textContent(c)), "- ")
				if content.Title == "" {
					content.Title = text
				}
				content.Blocks = append(content.Blocks, contentBlock{Kind: blockHeading, Text: text})
			case "p":
				text := strings.TrimSpace(inlineMarkdown(c))
				if text != "" {
					content.Blocks = append(content.Blocks, contentBlock{Kind: blockParagraph, Text: text})
				}
			case "pre":
				code := c
				if inner := findElement(c, "code"); inner != nil {
					code = inner
				}
				content.Blocks = append(content.Blocks, contentBlock{Kind: blockCode, Text: textContent(code)})
			case "ul", "ol":
				var items []string
				for li := c.FirstChild; li != nil; li = li.NextSibling {
					if li.Type == html.ElementNode && li.Data == "li" {
						items = append(items, strings.TrimSpace(inlineMarkdown(li)))
					}
				}
				if len(items) > 0 {
					content.Blocks = append(content.Blocks, contentBlock{Kind: blockList, Items: items})
				}
			}
		}
	}
	return content, nil
}

// inlineMarkdown flattens the inline children of a node to markdown text:
// emphasis, inline code and links survive, anything unknown contributes its
// text only.
func inlineMarkdown(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "em":
				// The site marks key phrases with em and answers with
				// em.star; both read well as strong emphasis.
				if hasClass(c, "star") {
					b.WriteString("**" + inlineMarkdown(c) + "**")
				} else {
					b.WriteString("*" + inlineMarkdown(c) + "*")
				}
			case "code":
				b.WriteString("`" + textContent(c) + "`")
			case "a":
				b.WriteString("[" + inlineMarkdown(c) + "](" + attrVal(c, "href") + ")")
			case "br":
				b.WriteString("\n")
			default:
				b.WriteString(inlineMarkdown(c))
			}
		}
	}
	return b.String()
}

// verdictKind enumerates submission outcomes.
type verdictKind int

const (
	verdictCorrect verdictKind = iota
	verdictIncorrect
	verdictAlreadySolved
	verdictTooRecent
	verdictWrongLevel
)

// submissionVerdict is the classified outcome of one answer submission.
// TooRecent is a verdict, not an error: the caller may wait and retry.
type submissionVerdict struct {
	Kind    verdictKind
	Message string
	Hint    string        // Incorrect only: "too high" or "too low"
	Wait    time.Duration // TooRecent only
}

// verdictRules maps key phrases to verdict constructors. Order matters:
// several site wordings are substrings of each other across event years, so
// classification is most-specific-first, never first-match-by-position.
var verdictRules = []struct {
	phrase string
	build  func(prose, lower string) (*submissionVerdict, error)
}{
	{"that's the right answer", func(prose, _ string) (*submissionVerdict, error) {
		return &submissionVerdict{Kind: verdictCorrect, Message: prose}, nil
	}},
	{"did you already complete it", func(prose, _ string) (*submissionVerdict, error) {
		return &submissionVerdict{Kind: verdictAlreadySolved, Message: prose}, nil
	}},
	{"you gave an answer too recently", func(prose, lower string) (*submissionVerdict, error) {
		wait, err := parseWaitDuration(lower)
		if err != nil {
			return nil, err
		}
		return &submissionVerdict{Kind: verdictTooRecent, Message: prose, Wait: wait}, nil
	}},
	{"not the right answer", func(prose, lower string) (*submissionVerdict, error) {
		v := &submissionVerdict{Kind: verdictIncorrect, Message: prose}
		for _, hint := range []string{"too high", "too low"} {
			if strings.Contains(lower, hint) {
				v.Hint = hint
				break
			}
		}
		return v, nil
	}},
}

// classifyVerdict classifies the HTML returned by an answer submission.
// Unrecognized prose becomes a WrongLevel verdict carrying the raw text, so
// a changed server response is surfaced instead of guessed at.
func classifyVerdict(body []byte) (*submissionVerdict, error) {
	mainNode, err := parseMain(body, "answer")
	if err != nil {
		return nil, err
	}
	prose := normalizeSpace(textContent(mainNode))
	if prose == "" {
		return nil, &formatError{Page: "answer", Detail: "empty response text"}
	}
	lower := strings.ToLower(prose)
	for _, rule := range verdictRules {
		if strings.Contains(lower, rule.phrase) {
			return rule.build(prose, lower)
		}
	}
	return &submissionVerdict{Kind: verdictWrongLevel, Message: prose}, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// waitRe captures the wait-time clause of the rate-limit response, e.g.
// "You have 5m 30s left to wait." The capture must not cross a sentence
// boundary: the same response also says "you have to wait after submitting
// an answer", which is not a duration.
var (
	waitRe      = regexp.MustCompile(`you have ([^.;]+?) left`)
	waitTokenRe = regexp.MustCompile(`^(\d+)([dhms])$`)
)

var waitUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"h": time.Hour,
	"m": time.Minute,
	"s": time.Second,
}

var waitWordUnits = map[string]time.Duration{
	"day": 24 * time.Hour, "days": 24 * time.Hour,
	"hour": time.Hour, "hours": time.Hour,
	"minute": time.Minute, "minutes": time.Minute,
	"second": time.Second, "seconds": time.Second,
}

// parseWaitDuration parses the wait clause into a duration. The server
// emits compact tokens ("16m 40s") and occasionally spelled-out units ("one
// minute"); an unrecognized token fails rather than guessing a value.
func parseWaitDuration(lower string) (time.Duration, error) {
	m := waitRe.FindStringSubmatch(lower)
	if m == nil {
		return 0, &formatError{Page: "answer", Detail: "rate-limit response without a wait time"}
	}
	fields := strings.Fields(m[1])
	var total time.Duration
	for i := 0; i < len(fields); i++ {
		tok := strings.Trim(fields[i], ".,")
		if tm := waitTokenRe.FindStringSubmatch(tok); tm != nil {
			n, _ := strconv.Atoi(tm[1])
			total += time.Duration(n) * waitUnits[tm[2]]
			continue
		}
		count := 0
		switch {
		case tok == "one":
			count = 1
		default:
			if n, err := strconv.Atoi(tok); err == nil {
				count = n
			}
		}
		if count > 0 && i+1 < len(fields) {
			unit := strings.Trim(fields[i+1], ".,")
			if d, ok := waitWordUnits[unit]; ok {
				total += time.Duration(count) * d
				i++
				continue
			}
		}
		return 0, &formatError{Page: "answer", Detail: "unrecognized wait token " + strconv.Quote(tok)}
	}
	if total == 0 {
		return 0, &formatError{Page: "answer", Detail: "empty wait time"}
	}
	return total, nil
}
