package spell

import "strings"

// affixIndex buckets affix rules by the last (for suffixes) or first
// (for prefixes) one and two characters of their affix text, plus a
// bucket for rules whose affix is empty (matching every word).
type affixIndex struct {
	buckets map[string][]*AffixRule
	empty   []*AffixRule
}

func buildSuffixIndex(rules []AffixRule) *affixIndex {
	idx := &affixIndex{buckets: map[string][]*AffixRule{}}
	for i := range rules {
		r := &rules[i]
		if r.Affix == "" {
			idx.empty = append(idx.empty, r)
			continue
		}
		runes := []rune(r.Affix)
		key1 := string(runes[len(runes)-1:])
		idx.buckets[key1] = append(idx.buckets[key1], r)
		if len(runes) >= 2 {
			key2 := string(runes[len(runes)-2:])
			idx.buckets[key2] = append(idx.buckets[key2], r)
		}
	}
	return idx
}

func buildPrefixIndex(rules []AffixRule) *affixIndex {
	idx := &affixIndex{buckets: map[string][]*AffixRule{}}
	for i := range rules {
		r := &rules[i]
		if r.Affix == "" {
			idx.empty = append(idx.empty, r)
			continue
		}
		runes := []rune(r.Affix)
		key1 := string(runes[:1])
		idx.buckets[key1] = append(idx.buckets[key1], r)
		if len(runes) >= 2 {
			key2 := string(runes[:2])
			idx.buckets[key2] = append(idx.buckets[key2], r)
		}
	}
	return idx
}

// candidatesFor returns the rules that might apply to word: those keyed
// by word's trailing (suffix index) or leading (prefix index) one and
// two characters, plus the empty-affix bucket.
func (idx *affixIndex) candidatesFor(word string, fromEnd bool) []*AffixRule {
	runes := []rune(word)
	var keys []string
	if fromEnd {
		if len(runes) >= 1 {
			keys = append(keys, string(runes[len(runes)-1:]))
		}
		if len(runes) >= 2 {
			keys = append(keys, string(runes[len(runes)-2:]))
		}
	} else {
		if len(runes) >= 1 {
			keys = append(keys, string(runes[:1]))
		}
		if len(runes) >= 2 {
			keys = append(keys, string(runes[:2]))
		}
	}

	seen := map[*AffixRule]bool{}
	var out []*AffixRule
	add := func(rules []*AffixRule) {
		for _, r := range rules {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	for _, k := range keys {
		add(idx.buckets[k])
	}
	add(idx.empty)
	return out
}

// tryStripSuffix attempts each candidate suffix rule against word,
// returning the flag set of the first matching stem found in words.
func tryStripSuffix(word string, idx *affixIndex, words map[string][]string) ([]string, bool) {
	for _, r := range idx.candidatesFor(word, true) {
		if r.Affix != "" && !strings.HasSuffix(word, r.Affix) {
			continue
		}
		stem := word[:len(word)-len(r.Affix)] + r.Strip
		flags, ok := words[stem]
		if !ok {
			continue
		}
		if !hasFlag(flags, r.Flag) {
			continue
		}
		if !r.matches(stem) {
			continue
		}
		return flags, true
	}
	return nil, false
}

// tryStripPrefix is symmetric to tryStripSuffix for the prefix axis.
func tryStripPrefix(word string, idx *affixIndex, words map[string][]string) ([]string, bool) {
	for _, r := range idx.candidatesFor(word, false) {
		if r.Affix != "" && !strings.HasPrefix(word, r.Affix) {
			continue
		}
		stem := r.Strip + word[len(r.Affix):]
		flags, ok := words[stem]
		if !ok {
			continue
		}
		if !hasFlag(flags, r.Flag) {
			continue
		}
		if !r.matches(stem) {
			continue
		}
		return flags, true
	}
	return nil, false
}
