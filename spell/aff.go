// Package spell implements a Hunspell-compatible spell checker: AFF/DIC
// parsing, affix expansion, dictionary lookup, suggestion generation,
// and incremental re-checking of running text.
//
// Compounding and n-gram-based suggestion ranking (Hunspell's more
// exotic features) are out of scope; see the package-level DESIGN notes
// for what's covered.
package spell

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrConfig is returned by NewChecker for a malformed Config.
var ErrConfig = errors.New("spell: config error")

// ErrParse is returned for malformed AFF/DIC input.
var ErrParse = errors.New("spell: parse error")

// FlagType selects how flag characters are decoded from AFF/DIC flag
// strings.
type FlagType int

const (
	FlagASCII FlagType = iota
	FlagUTF8
	FlagLong
	FlagNum
)

func parseFlagType(s string) (FlagType, error) {
	switch s {
	case "ASCII":
		return FlagASCII, nil
	case "UTF-8":
		return FlagUTF8, nil
	case "long":
		return FlagLong, nil
	case "num":
		return FlagNum, nil
	default:
		return 0, fmt.Errorf("%w: unrecognised FLAG type %q", ErrParse, s)
	}
}

// splitFlags decodes a flag string into individual flag tokens per ft.
func splitFlags(s string, ft FlagType) []string {
	if s == "" {
		return nil
	}
	switch ft {
	case FlagLong:
		runes := []rune(s)
		var out []string
		for i := 0; i+1 < len(runes); i += 2 {
			out = append(out, string(runes[i:i+2]))
		}
		return out
	case FlagNum:
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	default: // ASCII, UTF-8
		out := make([]string, 0, len(s))
		for _, r := range s {
			out = append(out, string(r))
		}
		return out
	}
}

// RepRule is a REP whole-word/substring replacement hint.
type RepRule struct {
	From, To string
}

// AffixRule is a single PFX or SFX rule line.
type AffixRule struct {
	Flag      string
	Strip     string
	Affix     string
	Condition string
	cond      *regexp.Regexp // nil means match-all
}

// AffixTable is the parsed contents of an AFF file.
type AffixTable struct {
	FlagType FlagType
	Try      string
	Map      [][]rune
	Rep      []RepRule
	Break    []string

	ForbiddenFlag string
	NoSuggestFlag string

	Prefixes []AffixRule
	Suffixes []AffixRule
}

// ParseAff parses Hunspell AFF source text.
func ParseAff(text string) (*AffixTable, error) {
	aff := &AffixTable{FlagType: FlagASCII}

	var pendingCount int

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		directive := fields[0]

		switch directive {
		case "SET":
			// Encoding is noted but this toolkit always operates on
			// decoded Go strings, so there's nothing further to do.
		case "FLAG":
			if len(fields) < 2 {
				continue
			}
			ft, err := parseFlagType(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			aff.FlagType = ft
		case "TRY":
			if len(fields) >= 2 {
				aff.Try = fields[1]
			}
		case "MAP":
			if len(fields) < 2 {
				continue
			}
			if _, err := strconv.Atoi(fields[1]); err == nil {
				continue // count-only line
			}
			aff.Map = append(aff.Map, []rune(fields[1]))
		case "REP":
			if len(fields) < 2 {
				continue
			}
			if _, err := strconv.Atoi(fields[1]); err == nil {
				continue // count-only line
			}
			if len(fields) < 3 {
				continue
			}
			from := strings.ReplaceAll(fields[1], "_", " ")
			to := strings.ReplaceAll(fields[2], "_", " ")
			aff.Rep = append(aff.Rep, RepRule{From: from, To: to})
		case "BREAK":
			if len(fields) < 2 {
				continue
			}
			if _, err := strconv.Atoi(fields[1]); err == nil {
				continue
			}
			aff.Break = append(aff.Break, fields[1])
		case "FORBIDDENWORD":
			if len(fields) >= 2 {
				aff.ForbiddenFlag = fields[1]
			}
		case "NOSUGGEST":
			if len(fields) >= 2 {
				aff.NoSuggestFlag = fields[1]
			}
		case "PFX", "SFX":
			if pendingCount > 0 {
				rule, err := parseAffixRuleLine(fields, directive, aff.FlagType)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if directive == "PFX" {
					aff.Prefixes = append(aff.Prefixes, rule)
				} else {
					aff.Suffixes = append(aff.Suffixes, rule)
				}
				pendingCount--
				continue
			}
			// Header line: DIRECTIVE flag {Y|N} count
			if len(fields) < 4 {
				continue
			}
			count, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid affix rule count: %w", lineNo, err)
			}
			pendingCount = count
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return aff, nil
}

// parseAffixRuleLine parses "PFX flag strip affix[/flags] [condition]".
func parseAffixRuleLine(fields []string, kind string, ft FlagType) (AffixRule, error) {
	if len(fields) < 4 {
		return AffixRule{}, fmt.Errorf("%w: malformed %s rule line", ErrParse, kind)
	}
	flag := fields[1]
	strip := fields[2]
	affixField := fields[3]
	condition := "."
	if len(fields) >= 5 {
		condition = fields[4]
	}

	if strip == "0" {
		strip = ""
	}
	// affixField may carry /continuation-flags; those aren't modeled by
	// this toolkit's simplified affix table, so only the affix text
	// itself is kept.
	affix := affixField
	if idx := strings.IndexByte(affixField, '/'); idx >= 0 {
		affix = affixField[:idx]
	}
	if affix == "0" {
		affix = ""
	}

	rule := AffixRule{Flag: flag, Strip: strip, Affix: affix, Condition: condition}
	if condition != "." && condition != "" {
		re, err := compileCondition(condition, kind == "SFX")
		if err != nil {
			return AffixRule{}, err
		}
		rule.cond = re
	}
	return rule, nil
}

var conditionSpecial = "$()*+.?\\{}|"

// compileCondition translates a Hunspell simplified-regex condition into
// a Go regexp, anchored to the start of the stem for prefix rules or the
// end of the stem for suffix rules.
func compileCondition(cond string, isSuffix bool) (*regexp.Regexp, error) {
	var b strings.Builder
	runes := []rune(cond)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '.':
			b.WriteByte('.')
			i++
		case r == '[':
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("%w: unterminated character class in condition %q", ErrParse, cond)
			}
			b.WriteString(string(runes[i : j+1]))
			i = j + 1
		case strings.ContainsRune(conditionSpecial, r):
			b.WriteByte('\\')
			b.WriteRune(r)
			i++
		default:
			b.WriteRune(r)
			i++
		}
	}
	pattern := b.String()
	if isSuffix {
		pattern += "$"
	} else {
		pattern = "^" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid condition %q: %v", ErrParse, cond, err)
	}
	return re, nil
}

// matches reports whether the rule's condition (if any) matches stem.
func (r AffixRule) matches(stem string) bool {
	if r.cond == nil {
		return true
	}
	return r.cond.MatchString(stem)
}
