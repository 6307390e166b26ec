package chat

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/furry-motion/registry"
)

// SpanKind classifies a run of transcript text for styling.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanStrong
	SpanEmphasis
	SpanCode
	SpanHeading
	SpanQuote
	SpanBullet
	SpanKeyword
	SpanString
	SpanNumber
	SpanComment
)

// Span is a run of text sharing one kind.
type Span struct {
	Text string
	Kind SpanKind
}

// Line is one terminal row of rendered transcript.
type Line []Span

// String returns the plain text of the line.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the display width of the line.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

var (
	markdown = goldmark.New()
	lexerFor = registry.NewMemo(lookupLexer)
)

func lookupLexer(lang string) chroma.Lexer {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Render formats markdown text as terminal lines no wider than width.
// Fenced code is syntax highlighted and clipped rather than wrapped.
func Render(src string, width int) []Line {
	if width < 1 {
		width = 1
	}
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))
	r := &renderer{source: source, width: width}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n != doc.FirstChild() {
			r.lines = append(r.lines, Line{})
		}
		r.block(n, nil, nil)
	}
	return r.lines
}

type renderer struct {
	source []byte
	width  int
	lines  []Line
}

func (r *renderer) block(n ast.Node, first, rest Line) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		r.wrap(r.inline(n, SpanText), first, rest)
	case *ast.Heading:
		r.wrap(r.inline(n, SpanHeading), first, rest)
	case *ast.FencedCodeBlock:
		r.code(r.rawLines(n), string(n.Language(r.source)), first, rest)
	case *ast.CodeBlock:
		r.code(r.rawLines(n), "", first, rest)
	case *ast.ThematicBreak:
		r.lines = append(r.lines, concat(first, Line{{Text: strings.Repeat("─", max(0, r.width-first.Width())), Kind: SpanQuote}}))
	case *ast.Blockquote:
		bar := Span{Text: "│ ", Kind: SpanQuote}
		r.children(n, concat(first, Line{bar}), concat(rest, Line{bar}))
	case *ast.List:
		index := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if n.IsOrdered() {
				marker = strconv.Itoa(index) + ". "
				index++
			}
			bullet := concat(first, Line{{Text: marker, Kind: SpanBullet}})
			indent := concat(rest, Line{{Text: strings.Repeat(" ", runewidth.StringWidth(marker))}})
			r.children(item, bullet, indent)
			first = rest
		}
	default:
		r.children(n, first, rest)
	}
}

func (r *renderer) children(n ast.Node, first, rest Line) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, first, rest)
		first = rest
	}
}

func (r *renderer) inline(n ast.Node, kind SpanKind) []Span {
	var spans []Span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			spans = append(spans, Span{Text: string(c.Segment.Value(r.source)), Kind: kind})
			if c.HardLineBreak() {
				spans = append(spans, Span{Text: "\n", Kind: kind})
			} else if c.SoftLineBreak() {
				spans = append(spans, Span{Text: " ", Kind: kind})
			}
		case *ast.String:
			spans = append(spans, Span{Text: string(c.Value), Kind: kind})
		case *ast.CodeSpan:
			spans = append(spans, Span{Text: r.plain(c), Kind: SpanCode})
		case *ast.Emphasis:
			inner := SpanEmphasis
			if c.Level >= 2 {
				inner = SpanStrong
			}
			if kind == SpanHeading {
				inner = SpanHeading
			}
			spans = append(spans, r.inline(c, inner)...)
		case *ast.AutoLink:
			spans = append(spans, Span{Text: string(c.Label(r.source)), Kind: kind})
		case *ast.RawHTML:
		default:
			spans = append(spans, r.inline(c, kind)...)
		}
	}
	return spans
}

func (r *renderer) plain(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(r.source))
		} else {
			b.WriteString(r.plain(c))
		}
	}
	return b.String()
}

func (r *renderer) rawLines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.source))
	}
	return b.String()
}

type word struct {
	text  string
	kind  SpanKind
	space bool
	brk   bool
}

func words(spans []Span) []word {
	var out []word
	space := false
	for _, s := range spans {
		var cur strings.Builder
		flush := func() {
			if cur.Len() > 0 {
				out = append(out, word{text: cur.String(), kind: s.Kind, space: space})
				cur.Reset()
				space = false
			}
		}
		for _, ch := range s.Text {
			switch {
			case ch == '\n':
				flush()
				out = append(out, word{brk: true})
				space = false
			case unicode.IsSpace(ch):
				flush()
				space = true
			default:
				cur.WriteRune(ch)
			}
		}
		flush()
	}
	return out
}

func (r *renderer) wrap(spans []Span, first, rest Line) {
	line := concat(first, nil)
	avail := r.width - first.Width()
	used := 0
	flush := func() {
		r.lines = append(r.lines, line)
		line = concat(rest, nil)
		avail = r.width - rest.Width()
		used = 0
	}
	for _, w := range words(spans) {
		if w.brk {
			flush()
			continue
		}
		if avail < 1 {
			avail = 1
		}
		gap := 0
		if w.space && used > 0 {
			gap = 1
		}
		width := runewidth.StringWidth(w.text)
		if used > 0 && used+gap+width > avail {
			flush()
			gap = 0
		}
		if gap > 0 {
			line = appendSpan(line, " ", SpanText)
			used++
		}
		rem := w.text
		for runewidth.StringWidth(rem) > avail-used {
			head := runewidth.Truncate(rem, avail-used, "")
			if head == "" {
				if used > 0 {
					flush()
					continue
				}
				head = string([]rune(rem)[:1])
			}
			line = appendSpan(line, head, w.kind)
			rem = rem[len(head):]
			flush()
		}
		if rem != "" {
			line = appendSpan(line, rem, w.kind)
			used += runewidth.StringWidth(rem)
		}
	}
	if used > 0 || len(line) > len(rest) {
		r.lines = append(r.lines, line)
	}
}

func (r *renderer) code(src, lang string, first, rest Line) {
	indent := Line{{Text: "  "}}
	lexer := lexerFor.Get(strings.ToLower(strings.TrimSpace(lang)))
	iter, err := lexer.Tokenise(nil, src)
	if err != nil {
		for i, raw := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
			prefix := rest
			if i == 0 {
				prefix = first
			}
			r.lines = append(r.lines, clip(concat(concat(prefix, indent), Line{{Text: raw, Kind: SpanCode}}), r.width))
		}
		return
	}
	lines := chroma.SplitTokensIntoLines(iter.Tokens())
	for len(lines) > 0 && blankTokens(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	for i, toks := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		line := concat(prefix, indent)
		for _, tok := range toks {
			value := strings.ReplaceAll(strings.TrimRight(tok.Value, "\n"), "\t", "    ")
			if value == "" {
				continue
			}
			line = appendSpan(line, value, tokenKind(tok.Type))
		}
		r.lines = append(r.lines, clip(line, r.width))
	}
}

func blankTokens(toks []chroma.Token) bool {
	for _, tok := range toks {
		if strings.TrimSpace(tok.Value) != "" {
			return false
		}
	}
	return true
}

func tokenKind(t chroma.TokenType) SpanKind {
	switch {
	case t.InCategory(chroma.Keyword):
		return SpanKeyword
	case t.InSubCategory(chroma.LiteralString):
		return SpanString
	case t.InSubCategory(chroma.LiteralNumber):
		return SpanNumber
	case t.InCategory(chroma.Comment):
		return SpanComment
	}
	return SpanCode
}

func clip(line Line, width int) Line {
	if line.Width() <= width {
		return line
	}
	out := Line{}
	used := 0
	for _, s := range line {
		w := runewidth.StringWidth(s.Text)
		if used+w <= width-1 {
			out = append(out, s)
			used += w
			continue
		}
		out = append(out, Span{Text: runewidth.Truncate(s.Text, width-used, "…"), Kind: s.Kind})
		break
	}
	return out
}

func appendSpan(line Line, text string, kind SpanKind) Line {
	if n := len(line); n > 0 && line[n-1].Kind == kind {
		line[n-1].Text += text
		return line
	}
	return append(line, Span{Text: text, Kind: kind})
}

func concat(a, b Line) Line {
	out := make(Line, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
