// Package wikitext scans wiki markup into a flat sequence of typed
// elements. Only the outermost constructs are recognized; callers re-parse
// an element's Content to reach nested ones.
package wikitext

import (
	"strings"
)

const DefaultMaxDepth = 64

type parseOpts struct {
	maxDepth int
}

type ParseOption func(*parseOpts)

// MaxDepth bounds the nesting of braces, brackets and tags the scanner
// will follow before giving up with ErrNestingDepth.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// Parse splits src into contiguous elements. Unbalanced constructs are
// text. The only error is ErrNestingDepth.
func Parse(src string, opts ...ParseOption) ([]Element, error) {
	o := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(o)
	}
	s := &scanner{src: src, lower: asciiLower(src), opts: o, textStart: -1}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.out, nil
}

type scanner struct {
	src       string
	lower     string
	opts      *parseOpts
	out       []Element
	textStart int

	hits map[string]hit
	// openings of templates and links known to have no matching close
	unclosed map[int]bool
}

// hit is the first occurrence at or after from of a search key, or -1.
type hit struct {
	from, at int
}

// index returns the position of the first occurrence of key in the
// lowered text at or after from, or -1. The last result per key is kept
// and answers every later search starting between its from and at.
func (s *scanner) index(key string, from int) int {
	if from > len(s.lower) {
		return -1
	}
	if h, ok := s.hits[key]; ok && from >= h.from && (h.at < 0 || from <= h.at) {
		return h.at
	}
	at := strings.Index(s.lower[from:], key)
	if at >= 0 {
		at += from
	}
	if s.hits == nil {
		s.hits = map[string]hit{}
	}
	s.hits[key] = hit{from: from, at: at}
	return at
}

func (s *scanner) markUnclosed(starts []int) {
	if s.unclosed == nil {
		s.unclosed = map[int]bool{}
	}
	for _, p := range starts {
		if p >= 0 {
			s.unclosed[p] = true
		}
	}
}

func (s *scanner) run() error {
	n := len(s.src)
	i := 0
	for i < n {
		e, ok, err := s.at(i)
		if err != nil {
			return err
		}
		if !ok {
			if s.textStart < 0 {
				s.textStart = i
			}
			i++
			continue
		}
		s.flush(i)
		s.out = append(s.out, e)
		i = e.End()
	}
	s.flush(n)
	return nil
}

func (s *scanner) flush(end int) {
	if s.textStart < 0 {
		return
	}
	raw := s.src[s.textStart:end]
	s.out = append(s.out, Element{
		Kind:     KText,
		Raw:      raw,
		Offset:   s.textStart,
		InnerEnd: len(raw),
	})
	s.textStart = -1
}

func (s *scanner) lineStart(i int) bool {
	return i == 0 || s.src[i-1] == '\n'
}

func (s *scanner) at(i int) (Element, bool, error) {
	if s.lineStart(i) {
		switch s.src[i] {
		case '=':
			if e, ok := s.heading(i); ok {
				return e, true, nil
			}
		case '{':
			if strings.HasPrefix(s.src[i:], "{|") {
				return s.table(i)
			}
		case '*', '#', ':', ';':
			return s.list(i)
		}
	}
	return s.inline(i)
}

func (s *scanner) inline(i int) (Element, bool, error) {
	switch s.src[i] {
	case '<':
		if strings.HasPrefix(s.src[i:], "<!--") {
			return s.comment(i), true, nil
		}
		return s.tag(i)
	case '{':
		if strings.HasPrefix(s.src[i:], "{{") {
			return s.braces(i)
		}
	case '[':
		if strings.HasPrefix(s.src[i:], "[[") {
			return s.wikilink(i)
		}
		e, ok := s.extLink(i)
		return e, ok, nil
	case '\'':
		e, ok := s.formatting(i)
		return e, ok, nil
	case 'h':
		e, ok := s.bareURL(i)
		return e, ok, nil
	}
	return Element{}, false, nil
}

func (s *scanner) depthErr(i int) error {
	return &ParseErr{Err: ErrNestingDepth, Offset: i}
}

func (s *scanner) lineEnd(i int) int {
	if j := s.index("\n", i); j >= 0 {
		return j
	}
	return len(s.src)
}

func (s *scanner) heading(i int) (Element, bool) {
	end := s.lineEnd(i)
	line := s.src[i:end]
	t := strings.TrimRight(line, " \t\r")
	a := len(t) - len(strings.TrimLeft(t, "="))
	b := len(t) - len(strings.TrimRight(t, "="))
	level := min(a, b, 6)
	if level == 0 || len(t) <= 2*level {
		return Element{}, false
	}
	return Element{
		Kind:     KHeading,
		Name:     strings.TrimSpace(t[level : len(t)-level]),
		Raw:      line,
		Offset:   i,
		Level:    level,
		Inner:    level,
		InnerEnd: len(t) - level,
	}, true
}

func (s *scanner) table(i int) (Element, bool, error) {
	depth := 0
	n := len(s.src)
	for j := i; j < n; {
		end := s.lineEnd(j)
		line := s.src[j:end]
		l := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(l, "{|"):
			depth++
			if depth > s.opts.maxDepth {
				return Element{}, false, s.depthErr(j)
			}
		case strings.HasPrefix(l, "|}"):
			depth--
			if depth == 0 {
				close := j + len(line) - len(l) + 2
				raw := s.src[i:close]
				return Element{
					Kind:     KTable,
					Raw:      raw,
					Offset:   i,
					Inner:    2,
					InnerEnd: len(raw) - 2,
				}, true, nil
			}
		}
		j = end + 1
	}
	// unclosed tables run to the end of the text
	raw := s.src[i:]
	return Element{Kind: KTable, Raw: raw, Offset: i, Inner: 2, InnerEnd: len(raw)}, true, nil
}

func (s *scanner) list(i int) (Element, bool, error) {
	n := len(s.src)
	j := i
	for j < n && strings.IndexByte("*#:;", s.src[j]) >= 0 {
		j++
	}
	prefix := j - i
	for j < n && s.src[j] != '\n' {
		e, ok, err := s.inline(j)
		if err != nil {
			return Element{}, false, err
		}
		if ok {
			j = e.End()
			continue
		}
		j++
	}
	raw := s.src[i:j]
	return Element{
		Kind:     KList,
		Name:     raw[:prefix],
		Raw:      raw,
		Offset:   i,
		Level:    prefix,
		Inner:    prefix,
		InnerEnd: len(raw),
	}, true, nil
}

func (s *scanner) comment(i int) Element {
	end := s.index("-->", i+4)
	var raw string
	innerEnd := 0
	if end < 0 {
		raw = s.src[i:]
		innerEnd = len(raw)
	} else {
		raw = s.src[i : end+3]
		innerEnd = len(raw) - 3
	}
	return Element{Kind: KComment, Raw: raw, Offset: i, Inner: 4, InnerEnd: innerEnd}
}

func (s *scanner) braces(i int) (Element, bool, error) {
	if s.unclosed[i] {
		return Element{}, false, nil
	}
	n := len(s.src)
	// starts[k] is where the run that pushed stack[k] began, or -1 when
	// stack[k] is not the first width that run pushed. A scan from such
	// a start fails exactly when its entry is never popped.
	var stack, starts []int
	kind := KTemplate
	j := i
	for j < n {
		if strings.HasPrefix(s.src[j:], "<!--") {
			end := s.index("-->", j+4)
			if end < 0 {
				s.markUnclosed(starts)
				return Element{}, false, nil
			}
			j = end + 3
			continue
		}
		switch s.src[j] {
		case '{':
			r := run(s.src, j, '{')
			start := j
			for k := r; k >= 2; {
				w := 2
				if k == 3 || k >= 5 {
					w = 3
				}
				if len(stack) == 0 && w == 3 {
					kind = KArgument
				}
				stack = append(stack, w)
				starts = append(starts, start)
				start = -1
				k -= w
			}
			if len(stack) > s.opts.maxDepth {
				return Element{}, false, s.depthErr(j)
			}
			j += r
		case '}':
			r := run(s.src, j, '}')
			used := 0
			for r-used >= 2 && len(stack) > 0 {
				top := stack[len(stack)-1]
				w := 2
				if top == 3 && r-used >= 3 {
					w = 3
				}
				stack = stack[:len(stack)-1]
				starts = starts[:len(starts)-1]
				used += w
				if len(stack) == 0 {
					raw := s.src[i : j+used]
					inner := 2
					if kind == KArgument {
						inner = 3
					}
					e := Element{
						Kind:     kind,
						Raw:      raw,
						Offset:   i,
						Inner:    inner,
						InnerEnd: len(raw) - w,
					}
					e.Name = templateName(e.Content())
					return e, true, nil
				}
			}
			j += r
		default:
			j++
		}
	}
	s.markUnclosed(starts)
	return Element{}, false, nil
}

func templateName(content string) string {
	name, _, _ := strings.Cut(content, "|")
	return strings.TrimSpace(name)
}

func (s *scanner) wikilink(i int) (Element, bool, error) {
	if s.unclosed[i] {
		return Element{}, false, nil
	}
	n := len(s.src)
	depth := 0
	var starts []int
	for j := i; j < n; {
		switch {
		case strings.HasPrefix(s.src[j:], "[["):
			depth++
			if depth > s.opts.maxDepth {
				return Element{}, false, s.depthErr(j)
			}
			starts = append(starts, j)
			j += 2
		case strings.HasPrefix(s.src[j:], "]]"):
			depth--
			starts = starts[:depth]
			j += 2
			if depth == 0 {
				raw := s.src[i:j]
				e := Element{
					Kind:     KWikilink,
					Raw:      raw,
					Offset:   i,
					Inner:    2,
					InnerEnd: len(raw) - 2,
				}
				e.Name = templateName(e.Content())
				return e, true, nil
			}
		default:
			j++
		}
	}
	s.markUnclosed(starts)
	return Element{}, false, nil
}

var urlSchemes = []string{"http://", "https://", "ftp://", "irc://", "news:", "mailto:", "//"}

func (s *scanner) extLink(i int) (Element, bool) {
	rest := s.lower[i+1:]
	ok := false
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(rest, scheme) {
			ok = true
			break
		}
	}
	if !ok {
		return Element{}, false
	}
	end := s.index("]", i)
	if end < 0 || end > s.lineEnd(i) {
		return Element{}, false
	}
	raw := s.src[i : end+1]
	url, _, _ := strings.Cut(raw[1:len(raw)-1], " ")
	return Element{
		Kind:     KExternalLink,
		Name:     url,
		Raw:      raw,
		Offset:   i,
		Inner:    1,
		InnerEnd: len(raw) - 1,
	}, true
}

func (s *scanner) bareURL(i int) (Element, bool) {
	if i > 0 && isAlnum(s.src[i-1]) {
		return Element{}, false
	}
	scheme := ""
	for _, sc := range []string{"https://", "http://"} {
		if strings.HasPrefix(s.lower[i:], sc) {
			scheme = sc
			break
		}
	}
	if scheme == "" {
		return Element{}, false
	}
	j := i
	for j < len(s.src) && !isSpace(s.src[j]) && strings.IndexByte("[]<>\"{}|", s.src[j]) < 0 {
		j++
	}
	for j > i && strings.IndexByte(".,;:!?)'", s.src[j-1]) >= 0 {
		j--
	}
	if j-i <= len(scheme) {
		return Element{}, false
	}
	raw := s.src[i:j]
	return Element{Kind: KExternalLink, Name: raw, Raw: raw, Offset: i, Inner: len(raw), InnerEnd: len(raw)}, true
}

const quotes = "'''''"

func (s *scanner) formatting(i int) (Element, bool) {
	k := run(s.src, i, '\'')
	var cands []int
	switch k {
	case 2:
		cands = []int{2}
	case 3:
		cands = []int{3, 2}
	case 5:
		cands = []int{5, 3, 2}
	default:
		return Element{}, false
	}
	start := i + k
	end := s.lineEnd(start)
	for _, c := range cands {
		p := s.index(quotes[:c], start)
		if p < 0 || p >= end {
			continue
		}
		raw := s.src[i : p+c]
		return Element{
			Kind:     KFormatting,
			Name:     raw[:c],
			Raw:      raw,
			Offset:   i,
			Inner:    c,
			InnerEnd: len(raw) - c,
		}, true
	}
	return Element{}, false
}

func (s *scanner) tag(i int) (Element, bool, error) {
	n := len(s.src)
	j := i + 1
	for j < n && isAlnum(s.src[j]) {
		j++
	}
	name := s.lower[i+1 : j]
	if _, ok := knownTags[name]; !ok {
		return Element{}, false, nil
	}
	if j < n && s.src[j] != '>' && s.src[j] != '/' && !isSpace(s.src[j]) {
		return Element{}, false, nil
	}
	gt := s.index(">", j)
	if gt < 0 {
		return Element{}, false, nil
	}
	openEnd := gt + 1
	_, void := voidTags[name]
	if void || s.src[openEnd-2] == '/' {
		raw := s.src[i:openEnd]
		return Element{Kind: KTag, Name: name, Raw: raw, Offset: i, Inner: len(raw), InnerEnd: len(raw)}, true, nil
	}
	closeStart, closeEnd, ok, err := s.findClose(name, openEnd)
	if err != nil {
		return Element{}, false, err
	}
	if !ok {
		if _, auto := autoCloseTags[name]; auto {
			raw := s.src[i:openEnd]
			return Element{Kind: KTag, Name: name, Raw: raw, Offset: i, Inner: len(raw), InnerEnd: len(raw)}, true, nil
		}
		return Element{}, false, nil
	}
	raw := s.src[i:closeEnd]
	return Element{
		Kind:     KTag,
		Name:     name,
		Raw:      raw,
		Offset:   i,
		Inner:    openEnd - i,
		InnerEnd: closeStart - i,
	}, true, nil
}

// findClose locates the closing tag matching an opening tag that ended at
// from, following nested tags of the same name unless the tag is opaque.
func (s *scanner) findClose(name string, from int) (int, int, bool, error) {
	open := "<" + name
	close := "</" + name
	_, opaque := opaqueTags[name]
	depth := 1
	j := from
	for {
		ci := s.index(close, j)
		if ci < 0 {
			return 0, 0, false, nil
		}
		if !opaque {
			if oi := s.index(open, j); oi >= 0 && oi < ci {
				after := oi + len(open)
				if after < len(s.src) && !isAlnum(s.src[after]) && !s.selfClosing(after) {
					depth++
					if depth > s.opts.maxDepth {
						return 0, 0, false, s.depthErr(oi)
					}
				}
				j = after
				continue
			}
		}
		k := ci + len(close)
		if k < len(s.src) && isAlnum(s.src[k]) {
			j = k
			continue
		}
		for k < len(s.src) && isSpace(s.src[k]) {
			k++
		}
		if k >= len(s.src) || s.src[k] != '>' {
			j = ci + len(close)
			continue
		}
		depth--
		if depth == 0 {
			return ci, k + 1, true, nil
		}
		j = k + 1
	}
}

func (s *scanner) selfClosing(i int) bool {
	gt := s.index(">", i)
	return gt > i && s.src[gt-1] == '/'
}

func run(s string, i int, c byte) int {
	j := i
	for j < len(s) && s[j] == c {
		j++
	}
	return j - i
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// asciiLower lowers ASCII letters only, so byte offsets are preserved.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
