package spell

import (
	"bufio"
	"strconv"
	"strings"
)

// Dictionary is the parsed contents of a DIC file: each word maps to
// its (already split) affix flags.
type Dictionary struct {
	Words map[string][]string
}

// ParseDic parses Hunspell DIC source text. The first non-empty line, if
// it is a number, is an advisory word count and is otherwise ignored; if
// it is not a number it is read as a word entry.
func ParseDic(text string, ft FlagType) (*Dictionary, error) {
	dic := &Dictionary{Words: map[string][]string{}}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sawCount := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !sawCount {
			sawCount = true
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				continue
			}
		}

		word := line
		var flags []string
		if idx := strings.IndexByte(line, '/'); idx >= 0 {
			word = line[:idx]
			flags = splitFlags(line[idx+1:], ft)
		}
		if word == "" {
			continue
		}
		dic.Words[word] = flags
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dic, nil
}

// hasFlag reports whether flags contains target.
func hasFlag(flags []string, target string) bool {
	if target == "" {
		return false
	}
	for _, f := range flags {
		if f == target {
			return true
		}
	}
	return false
}
