package vlist

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Row filtering with fzf query syntax, scored by junegunn/fzf's algo package.
//
//	foo      fuzzy
//	'foo     exact substring
//	^foo     prefix
//	foo$     suffix
//	!term    negate any of the above
//	a b      all terms must match
//	a | b    either group matches

func init() {
	algo.Init("default")
}

type matchKind int

const (
	matchFuzzy matchKind = iota
	matchExact
	matchPrefix
	matchSuffix
)

type filterTerm struct {
	runes         []rune
	kind          matchKind
	negated       bool
	caseSensitive bool
}

// FilterQuery is a parsed query. The zero value matches everything.
// A FilterQuery is not safe for concurrent use; it owns a scratch slab.
type FilterQuery struct {
	groups [][]filterTerm
	slab   *util.Slab
}

// ParseFilter parses raw into a FilterQuery.
func ParseFilter(raw string) *FilterQuery {
	q := &FilterQuery{}
	for _, part := range strings.Split(strings.TrimSpace(raw), " | ") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		group := make([]filterTerm, 0, len(fields))
		for _, f := range fields {
			group = append(group, parseFilterTerm(f))
		}
		q.groups = append(q.groups, group)
	}
	if len(q.groups) > 0 {
		q.slab = util.MakeSlab(100*1024, 2048)
	}
	return q
}

func parseFilterTerm(tok string) filterTerm {
	t := filterTerm{kind: matchFuzzy}
	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind, tok = matchExact, tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind, tok = matchPrefix, tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind, tok = matchSuffix, tok[:len(tok)-1]
	}
	// smart case
	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.runes = []rune(tok)
	return t
}

// Empty reports whether the query has no terms.
func (q *FilterQuery) Empty() bool {
	return len(q.groups) == 0
}

// Match reports whether text matches and its best group score.
func (q *FilterQuery) Match(text string) (int, bool) {
	if q.Empty() {
		return 0, true
	}
	chars := util.ToChars([]byte(text))
	best, matched := 0, false
	for _, group := range q.groups {
		score, ok := q.matchGroup(group, &chars)
		if ok && (!matched || score > best) {
			best, matched = score, true
		}
	}
	return best, matched
}

func (q *FilterQuery) matchGroup(group []filterTerm, chars *util.Chars) (int, bool) {
	total := 0
	for i := range group {
		t := &group[i]
		var fn func(bool, bool, bool, *util.Chars, []rune, bool, *util.Slab) (algo.Result, *[]int)
		switch t.kind {
		case matchExact:
			fn = algo.ExactMatchNaive
		case matchPrefix:
			fn = algo.PrefixMatch
		case matchSuffix:
			fn = algo.SuffixMatch
		default:
			fn = algo.FuzzyMatchV2
		}
		res, _ := fn(t.caseSensitive, false, true, chars, t.runes, false, q.slab)
		hit := res.Start >= 0
		if t.negated {
			if hit {
				return 0, false
			}
			continue
		}
		if !hit {
			return 0, false
		}
		total += res.Score
	}
	return total, true
}

// FilterRows returns, in ascending order, the rows in [0, n) whose text
// matches query. An empty query returns every row.
func FilterRows(query string, n int, text func(row int) string) []int {
	q := ParseFilter(query)
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, ok := q.Match(text(i)); ok {
			rows = append(rows, i)
		}
	}
	return rows
}
