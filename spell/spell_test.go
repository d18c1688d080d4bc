package spell

import (
	"strings"
	"testing"
)

const testAff = `SET UTF-8
TRY esianrtolcdugmphbyfvkwz
REP 1
REP teh the
MAP 1
MAP ao
PFX U Y 1
PFX U 0 re .
SFX S Y 1
SFX S 0 s .
`

const testDic = `4
casa
carro
the
run/SU
`

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	c, err := NewChecker(Config{AffText: testAff, DicText: testDic})
	if err != nil {
		t.Fatalf("NewChecker: %v", err)
	}
	return c
}

func TestNewCheckerRequiresAffDicOrParsed(t *testing.T) {
	if _, err := NewChecker(Config{}); err == nil {
		t.Fatal("expected ErrConfig for empty Config")
	}

	aff, err := ParseAff(testAff)
	if err != nil {
		t.Fatalf("ParseAff: %v", err)
	}
	dic, err := ParseDic(testDic, aff.FlagType)
	if err != nil {
		t.Fatalf("ParseDic: %v", err)
	}
	c, err := NewChecker(Config{ParsedAff: aff, ParsedDic: dic})
	if err != nil {
		t.Fatalf("NewChecker with parsed tables: %v", err)
	}
	if !c.Has("casa") {
		t.Error("expected casa to be recognised via parsed tables")
	}
}

func TestHasExactAndCaseInsensitiveLookup(t *testing.T) {
	c := newTestChecker(t)
	if !c.Has("casa") {
		t.Error("casa should be recognised")
	}
	if !c.Has("CASA") {
		t.Error("CASA should be recognised case-insensitively")
	}
	if c.Has("zzqx") {
		t.Error("zzqx should not be recognised")
	}
}

func TestHasRecognisesSuffixExpansion(t *testing.T) {
	c := newTestChecker(t)
	if !c.Has("runs") {
		t.Error("expected 'runs' to be recognised via the S suffix rule on 'run'")
	}
}

func TestHasRecognisesPrefixExpansion(t *testing.T) {
	c := newTestChecker(t)
	if !c.Has("rerun") {
		t.Error("expected 'rerun' to be recognised via the U prefix rule on 'run'")
	}
}

func TestAddWordAndIgnoreWord(t *testing.T) {
	c := newTestChecker(t)
	if c.Has("frobnicate") {
		t.Fatal("frobnicate should not start out recognised")
	}
	c.AddWord("frobnicate")
	if !c.Has("frobnicate") {
		t.Error("expected frobnicate to be recognised after AddWord")
	}

	if c.Has("wombat") {
		t.Fatal("wombat should not start out recognised")
	}
	c.IgnoreWord("wombat")
	if !c.Has("wombat") {
		t.Error("expected wombat to be recognised after IgnoreWord")
	}
}

func TestSuggestEditDistanceOneScenario(t *testing.T) {
	c := newTestChecker(t)
	suggestions := c.Suggest("cssa", 5)
	found := false
	for _, s := range suggestions {
		if s == "casa" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected casa among suggestions for cssa, got %v", suggestions)
	}
}

func TestSuggestRepRule(t *testing.T) {
	c := newTestChecker(t)
	suggestions := c.Suggest("teh", 5)
	if len(suggestions) == 0 || suggestions[0] != "the" {
		t.Errorf("expected REP rule to rank 'the' first for 'teh', got %v", suggestions)
	}
}

func TestSuggestMapGroup(t *testing.T) {
	c := newTestChecker(t)
	suggestions := c.Suggest("cosa", 8)
	found := false
	for _, s := range suggestions {
		if s == "casa" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected casa among MAP-derived suggestions for cosa, got %v", suggestions)
	}
}

func TestSuggestRespectsLimit(t *testing.T) {
	c := newTestChecker(t)
	suggestions := c.Suggest("cssa", 1)
	if len(suggestions) > 1 {
		t.Errorf("expected at most 1 suggestion, got %v", suggestions)
	}
}

func TestSuggestAllLowercase(t *testing.T) {
	c := newTestChecker(t)
	suggestions := c.Suggest("CSSA", 5)
	for _, s := range suggestions {
		if s != strings.ToLower(s) {
			t.Errorf("expected lowercase suggestion, got %q", s)
		}
	}
}

func TestCheckTextFindsMisspellings(t *testing.T) {
	c := newTestChecker(t)
	result := c.CheckText("casa cssa carro")
	if result.WordCount != 3 {
		t.Errorf("expected 3 words, got %d", result.WordCount)
	}
	if len(result.Errors) != 1 || result.Errors[0].Word != "cssa" {
		t.Errorf("expected exactly one error for cssa, got %+v", result.Errors)
	}
}

func TestCheckTextStreamEmitsOnlyMisspellings(t *testing.T) {
	c := newTestChecker(t)
	var got []string
	err := c.CheckTextStream("casa cssa carro", func(e WordError) error {
		got = append(got, e.Word)
		return nil
	})
	if err != nil {
		t.Fatalf("CheckTextStream: %v", err)
	}
	if len(got) != 1 || got[0] != "cssa" {
		t.Errorf("expected [cssa], got %v", got)
	}
}

func TestCheckTextIncrementalRestrictsToWindow(t *testing.T) {
	c := newTestChecker(t)
	text := "casa cssa carro"
	changeStart := strings.Index(text, "cssa")
	changeEnd := changeStart + len("cssa")
	result := c.CheckTextIncremental(text, changeStart, changeEnd)
	if len(result.Errors) != 1 || result.Errors[0].Word != "cssa" {
		t.Fatalf("expected single cssa error, got %+v", result.Errors)
	}
	if result.Errors[0].ByteOffset != changeStart {
		t.Errorf("expected global offset %d, got %d", changeStart, result.Errors[0].ByteOffset)
	}
}

func TestClearCacheResetsStats(t *testing.T) {
	c := newTestChecker(t)
	c.Has("casa")
	c.Has("casa")
	c.ClearCache()
	stats := c.StatsSnapshot()
	if stats.CheckHits != 0 || stats.CheckMisses != 0 {
		t.Errorf("expected zeroed stats after ClearCache, got %+v", stats)
	}
}

func TestShouldIgnoreWordHeuristics(t *testing.T) {
	ignoreList := map[string]bool{"skip": true}
	if !shouldIgnoreWord("skip", 1, ignoreList, false) {
		t.Error("expected ignore-listed word to be ignored")
	}
	if !shouldIgnoreWord("NASA", 1, ignoreList, false) {
		t.Error("expected short all-upper word to be ignored")
	}
	if !shouldIgnoreWord("Hello", 1, ignoreList, true) {
		t.Error("expected capitalized-rest-lower word to be ignored when enabled")
	}
	if shouldIgnoreWord("Hello", 1, ignoreList, false) {
		t.Error("capitalized-rest-lower should only be ignored when enabled")
	}
	if !shouldIgnoreWord("abc123", 1, ignoreList, false) {
		t.Error("expected digit-containing word to be ignored")
	}
	if shouldIgnoreWord("hello", 1, ignoreList, false) {
		t.Error("ordinary lowercase word should not be ignored")
	}
}

func TestExtractWordsByteOffsets(t *testing.T) {
	words := ExtractWords("foo bar baz")
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[1].Word != "bar" || words[1].ByteOffset != 4 {
		t.Errorf("expected bar at offset 4, got %+v", words[1])
	}
}
