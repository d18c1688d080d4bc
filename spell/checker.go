package spell

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config configures a Checker. At least one of (AffText, DicText) or
// (ParsedAff, ParsedDic) must be supplied; when both are, the parsed
// tables are used.
type Config struct {
	Language string

	AffText string
	DicText string

	ParsedAff *AffixTable
	ParsedDic *Dictionary

	CustomWords []string
	IgnoreList  []string

	IgnoreCapitalized bool
	MinWordLength     int
	MaxSuggestions    int
}

const (
	defaultCheckCacheSize    = 10000
	defaultSuggestCacheSize  = 1000
	defaultMaxSuggestions    = 8
	defaultMinWordLength     = 1
	streamYieldEveryNWords   = 50
)

// Stats tracks cache effectiveness across a Checker's lifetime.
type Stats struct {
	CheckHits      int
	CheckMisses    int
	SuggestHits    int
	SuggestMisses  int
}

// Checker is a configured spell-checking session: its dictionary,
// affix rules, custom/ignore lists, and LRU caches. A Checker must not
// be shared across goroutines without external synchronization.
type Checker struct {
	language string

	aff *AffixTable
	dic *Dictionary

	suffixIdx *affixIndex
	prefixIdx *affixIndex

	custom map[string]bool
	ignore map[string]bool

	ignoreCapitalized bool
	minWordLength     int
	maxSuggestions    int

	checkCache    *lruCache
	suggestCache  *lruCache
	stats         Stats
}

// NewChecker builds a Checker from cfg.
func NewChecker(cfg Config) (*Checker, error) {
	var aff *AffixTable
	var dic *Dictionary

	havePair := cfg.AffText != "" && cfg.DicText != ""
	haveParsed := cfg.ParsedAff != nil && cfg.ParsedDic != nil

	switch {
	case haveParsed:
		aff = cfg.ParsedAff
		dic = cfg.ParsedDic
	case havePair:
		var err error
		aff, err = ParseAff(cfg.AffText)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		dic, err = ParseDic(cfg.DicText, aff.FlagType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: must supply (affText, dicText) or (parsedAff, parsedDic)", ErrConfig)
	}

	minLen := cfg.MinWordLength
	if minLen <= 0 {
		minLen = defaultMinWordLength
	}
	maxSug := cfg.MaxSuggestions
	if maxSug <= 0 {
		maxSug = defaultMaxSuggestions
	}

	custom := map[string]bool{}
	for _, w := range cfg.CustomWords {
		custom[strings.ToLower(w)] = true
	}
	ignore := map[string]bool{}
	for _, w := range cfg.IgnoreList {
		ignore[strings.ToLower(w)] = true
	}

	return &Checker{
		language:          cfg.Language,
		aff:               aff,
		dic:               dic,
		suffixIdx:         buildSuffixIndex(aff.Suffixes),
		prefixIdx:         buildPrefixIndex(aff.Prefixes),
		custom:            custom,
		ignore:            ignore,
		ignoreCapitalized: cfg.IgnoreCapitalized,
		minWordLength:     minLen,
		maxSuggestions:    maxSug,
		checkCache:        newLRUCache(defaultCheckCacheSize),
		suggestCache:      newLRUCache(defaultSuggestCacheSize),
	}, nil
}

// Has reports whether word is recognised, per the dictionary lookup
// algorithm: custom/ignore lists, exact and lowercase dictionary
// entries (honoring the forbidden-word flag), then suffix and prefix
// stripping.
func (c *Checker) Has(word string) bool {
	key := strings.ToLower(word)
	if v, ok := c.checkCache.Get(key); ok {
		c.stats.CheckHits++
		return v.(bool)
	}
	c.stats.CheckMisses++
	result := c.hasUncached(word)
	c.checkCache.Put(key, result)
	return result
}

func (c *Checker) hasUncached(word string) bool {
	lower := strings.ToLower(word)
	if c.custom[lower] {
		return true
	}
	if c.ignore[lower] {
		return true
	}

	if flags, ok := c.dic.Words[word]; ok {
		if hasFlag(flags, c.aff.ForbiddenFlag) {
			return false
		}
		return true
	}

	if flags, ok := c.dic.Words[lower]; ok {
		if hasFlag(flags, c.aff.ForbiddenFlag) {
			return false
		}
		return true
	}

	if _, ok := tryStripSuffix(word, c.suffixIdx, c.dic.Words); ok {
		return true
	}
	if _, ok := tryStripPrefix(word, c.prefixIdx, c.dic.Words); ok {
		return true
	}
	if _, ok := tryStripSuffix(lower, c.suffixIdx, c.dic.Words); ok {
		return true
	}
	return false
}

// Check is an alias for Has, named to match the checkText/checkWord
// vocabulary used by the rest of this package's operations.
func (c *Checker) Check(word string) bool {
	return c.Has(word)
}

// WordError is a single misspelling found in running text.
type WordError struct {
	Word        string
	ByteOffset  int
	Suggestions []string
}

// TextResult is the outcome of CheckText.
type TextResult struct {
	Errors    []WordError
	WordCount int
	ElapsedMS float64
}

// CheckText checks every word in text, collecting errors with up to
// maxSuggestions suggestions each.
func (c *Checker) CheckText(text string) TextResult {
	start := time.Now()
	occurrences := ExtractWords(text)
	var errs []WordError
	for _, occ := range occurrences {
		if shouldIgnoreWord(occ.Word, c.minWordLength, c.ignore, c.ignoreCapitalized) {
			continue
		}
		if c.Has(occ.Word) {
			continue
		}
		errs = append(errs, WordError{
			Word:        occ.Word,
			ByteOffset:  occ.ByteOffset,
			Suggestions: c.Suggest(occ.Word, c.maxSuggestions),
		})
	}
	return TextResult{
		Errors:    errs,
		WordCount: len(occurrences),
		ElapsedMS: float64(time.Since(start)) / float64(time.Millisecond),
	}
}

// CheckTextStream checks text word by word, invoking emit for each
// misspelling as it's found (with Suggestions left empty — suggestion
// generation is deferred to the caller, who can call Suggest lazily).
// Every 50 words it cooperatively yields to the host scheduler.
func (c *Checker) CheckTextStream(text string, emit func(WordError) error) error {
	occurrences := ExtractWords(text)
	for i, occ := range occurrences {
		if i > 0 && i%streamYieldEveryNWords == 0 {
			runtime.Gosched()
		}
		if shouldIgnoreWord(occ.Word, c.minWordLength, c.ignore, c.ignoreCapitalized) {
			continue
		}
		if c.Has(occ.Word) {
			continue
		}
		if err := emit(WordError{Word: occ.Word, ByteOffset: occ.ByteOffset}); err != nil {
			return err
		}
	}
	return nil
}

// CheckTextIncremental re-checks only the portion of text affected by an
// edit spanning byte offsets [changeStart, changeEnd), expanding the
// window outward to word-character boundaries, then by a 50-byte
// buffer, then re-expanding to boundaries. Returned offsets are global
// (relative to the start of text).
func (c *Checker) CheckTextIncremental(text string, changeStart, changeEnd int) TextResult {
	start := time.Now()
	lo, hi := changeStart, changeEnd
	lo, hi = expandToWordBoundaries(text, lo, hi)

	const buffer = 50
	lo -= buffer
	if lo < 0 {
		lo = 0
	}
	hi += buffer
	if hi > len(text) {
		hi = len(text)
	}
	lo, hi = expandToWordBoundaries(text, lo, hi)

	window := text[lo:hi]
	occurrences := ExtractWords(window)
	var errs []WordError
	for _, occ := range occurrences {
		if shouldIgnoreWord(occ.Word, c.minWordLength, c.ignore, c.ignoreCapitalized) {
			continue
		}
		if c.Has(occ.Word) {
			continue
		}
		errs = append(errs, WordError{
			Word:        occ.Word,
			ByteOffset:  lo + occ.ByteOffset,
			Suggestions: c.Suggest(occ.Word, c.maxSuggestions),
		})
	}
	return TextResult{
		Errors:    errs,
		WordCount: len(occurrences),
		ElapsedMS: float64(time.Since(start)) / float64(time.Millisecond),
	}
}

func expandToWordBoundaries(text string, lo, hi int) (int, int) {
	isWordByte := func(i int) bool {
		if i < 0 || i >= len(text) {
			return false
		}
		r := []rune(text[i:])[0]
		return isWordRune(r)
	}
	for lo > 0 && isWordByte(lo-1) {
		lo--
	}
	for hi < len(text) && isWordByte(hi) {
		hi++
	}
	return lo, hi
}

func isWordRune(r rune) bool {
	return wordPattern.MatchString(string(r))
}

// AddWord adds word to the session's custom word list and invalidates
// any cached check result for it.
func (c *Checker) AddWord(word string) {
	c.custom[strings.ToLower(word)] = true
	c.checkCache.Delete(strings.ToLower(word))
}

// IgnoreWord adds word to the session's ignore list and invalidates any
// cached check result for it.
func (c *Checker) IgnoreWord(word string) {
	c.ignore[strings.ToLower(word)] = true
	c.checkCache.Delete(strings.ToLower(word))
}

// ClearCache empties both LRU caches and resets hit/miss counters.
func (c *Checker) ClearCache() {
	c.checkCache.Clear()
	c.suggestCache.Clear()
	c.stats = Stats{}
}

// StatsSnapshot returns the current cache hit/miss counters.
func (c *Checker) StatsSnapshot() Stats {
	return c.stats
}
