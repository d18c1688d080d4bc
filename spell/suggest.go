package spell

import (
	"fmt"
	"sort"
	"strings"
)

const (
	scoreRep        = 100
	scoreMap        = 90
	scoreEditDist1  = 80
	scoreEditDist2  = 60
	edit2CandidateCap = 100
)

var vowels = []rune("aeiou")

type scoredSuggestion struct {
	word  string
	score int
}

// Suggest returns up to limit replacement candidates for word, ranked by
// the strategy that produced them: REP rules, then character MAP
// substitutions, then edit-distance-1, then (lazily) edit-distance-2.
// All matching is case-insensitive; results are lowercase.
func (c *Checker) Suggest(word string, limit int) []string {
	if limit <= 0 {
		limit = c.maxSuggestions
	}
	lower := strings.ToLower(word)
	cacheKey := fmt.Sprintf("%s:%d", lower, limit)
	if v, ok := c.suggestCache.Get(cacheKey); ok {
		c.stats.SuggestHits++
		return v.([]string)
	}
	c.stats.SuggestMisses++

	target := 2 * limit
	seen := map[string]bool{lower: true}
	var found []scoredSuggestion

	addAll := func(words []string, score int) {
		for _, w := range words {
			if seen[w] {
				continue
			}
			seen[w] = true
			if c.dicHas(w) {
				found = append(found, scoredSuggestion{word: w, score: score})
			}
		}
	}

	addAll(c.repCandidates(lower), scoreRep)

	if len(found) < target {
		addAll(c.mapCandidates(lower), scoreMap)
	}

	var edit1 []string
	if len(found) < target {
		edit1 = editDistance1(lower, c.aff.Try)
		addAll(edit1, scoreEditDist1)
	}

	if len(found) < target {
		if edit1 == nil {
			edit1 = editDistance1(lower, c.aff.Try)
		}
		limited := edit1
		if len(limited) > edit2CandidateCap {
			limited = limited[:edit2CandidateCap]
		}
		var edit2 []string
		for _, e1 := range limited {
			edit2 = append(edit2, reducedEditDistance1(e1)...)
		}
		addAll(edit2, scoreEditDist2)
	}

	// Drop words flagged NOSUGGEST.
	filtered := found[:0]
	for _, s := range found {
		if c.isNoSuggest(s.word) {
			continue
		}
		filtered = append(filtered, s)
	}
	found = filtered

	sort.SliceStable(found, func(i, j int) bool { return found[i].score > found[j].score })

	out := make([]string, 0, limit)
	for _, s := range found {
		if len(out) >= limit {
			break
		}
		out = append(out, s.word)
	}

	c.suggestCache.Put(cacheKey, out)
	return out
}

// dicHas checks dictionary membership (exact entry honoring the
// forbidden-word flag, then suffix and prefix stripping) without
// consulting the custom/ignore lists or the check cache (suggestion
// generation produces many transient candidates not worth caching
// individually).
func (c *Checker) dicHas(word string) bool {
	if flags, ok := c.dic.Words[word]; ok {
		return !hasFlag(flags, c.aff.ForbiddenFlag)
	}
	if _, ok := tryStripSuffix(word, c.suffixIdx, c.dic.Words); ok {
		return true
	}
	if _, ok := tryStripPrefix(word, c.prefixIdx, c.dic.Words); ok {
		return true
	}
	return false
}

func (c *Checker) isNoSuggest(word string) bool {
	if c.aff.NoSuggestFlag == "" {
		return false
	}
	flags, ok := c.dic.Words[word]
	if !ok {
		return false
	}
	return hasFlag(flags, c.aff.NoSuggestFlag)
}

// repCandidates applies each REP rule to word: replacing just its first
// occurrence, and separately replacing every occurrence when that
// differs from the first-occurrence result.
func (c *Checker) repCandidates(word string) []string {
	var out []string
	for _, rule := range c.aff.Rep {
		if !strings.Contains(word, rule.From) {
			continue
		}
		first := replaceFirst(word, rule.From, rule.To)
		out = append(out, first)
		all := strings.ReplaceAll(word, rule.From, rule.To)
		if all != first {
			out = append(out, all)
		}
	}
	return out
}

func replaceFirst(s, old, new string) string {
	idx := strings.Index(s, old)
	if idx < 0 {
		return s
	}
	return s[:idx] + new + s[idx+len(old):]
}

// mapCandidates substitutes, at each position of word, every other
// character belonging to the same MAP group as the character there.
func (c *Checker) mapCandidates(word string) []string {
	var out []string
	runes := []rune(word)
	for i, r := range runes {
		group := mapGroupContaining(c.aff.Map, r)
		if group == nil {
			continue
		}
		for _, alt := range group {
			if alt == r {
				continue
			}
			cand := append(append([]rune{}, runes[:i]...), alt)
			cand = append(cand, runes[i+1:]...)
			out = append(out, string(cand))
		}
	}
	return out
}

func mapGroupContaining(groups [][]rune, r rune) []rune {
	for _, g := range groups {
		for _, c := range g {
			if c == r {
				return g
			}
		}
	}
	return nil
}

// editDistance1 generates every deletion, adjacent transposition,
// TRY-character replacement, and TRY-character insertion of word.
func editDistance1(word string, try string) []string {
	runes := []rune(word)
	tryRunes := []rune(try)
	var out []string

	// Deletions.
	for i := range runes {
		cand := append(append([]rune{}, runes[:i]...), runes[i+1:]...)
		out = append(out, string(cand))
	}

	// Adjacent transpositions.
	for i := 0; i+1 < len(runes); i++ {
		cand := append([]rune{}, runes...)
		cand[i], cand[i+1] = cand[i+1], cand[i]
		out = append(out, string(cand))
	}

	// Replacements with every TRY character different from the current one.
	for i, r := range runes {
		for _, t := range tryRunes {
			if t == r {
				continue
			}
			cand := append([]rune{}, runes...)
			cand[i] = t
			out = append(out, string(cand))
		}
	}

	// Insertions of every TRY character at every gap (including the ends).
	for i := 0; i <= len(runes); i++ {
		for _, t := range tryRunes {
			cand := make([]rune, 0, len(runes)+1)
			cand = append(cand, runes[:i]...)
			cand = append(cand, t)
			cand = append(cand, runes[i:]...)
			out = append(out, string(cand))
		}
	}

	return out
}

// reducedEditDistance1 generates a cheaper edit-1 set over word limited
// to deletions, transpositions, and vowel replacements, used as the
// second hop when computing edit-distance-2 candidates.
func reducedEditDistance1(word string) []string {
	runes := []rune(word)
	var out []string

	for i := range runes {
		cand := append(append([]rune{}, runes[:i]...), runes[i+1:]...)
		out = append(out, string(cand))
	}

	for i := 0; i+1 < len(runes); i++ {
		cand := append([]rune{}, runes...)
		cand[i], cand[i+1] = cand[i+1], cand[i]
		out = append(out, string(cand))
	}

	for i, r := range runes {
		for _, v := range vowels {
			if v == r {
				continue
			}
			cand := append([]rune{}, runes...)
			cand[i] = v
			out = append(out, string(cand))
		}
	}

	return out
}
