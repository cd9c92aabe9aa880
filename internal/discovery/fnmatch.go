package discovery

import (
	"regexp"
	"strings"
	"sync"
)

var (
	fnmatchMu    sync.Mutex
	fnmatchCache = map[string]*regexp.Regexp{}
)

// fnmatch matches name against a shell-style glob pattern. Unlike
// filepath.Match, '*' and '?' also match path separators, so a pattern like
// "third_party/*" excludes an entire subtree.
func fnmatch(pattern, name string) bool {
	re := compilePattern(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(name)
}

// compilePattern returns the cached regexp for pattern, or nil when the
// pattern cannot be compiled (e.g. a reversed range like "[z-a]"). A pattern
// that compiles to nothing matches nothing; exclude handling must never take
// the whole run down.
func compilePattern(pattern string) *regexp.Regexp {
	fnmatchMu.Lock()
	defer fnmatchMu.Unlock()

	re, ok := fnmatchCache[pattern]
	if !ok {
		re, _ = regexp.Compile(translate(pattern))
		fnmatchCache[pattern] = re
	}
	return re
}

// translate converts a glob pattern into an anchored regular expression:
// '*' -> ".*", '?' -> ".", "[seq]" is kept as a character class, everything
// else is quoted literally. A ']' directly after the opening '[' (or after
// '[!') is part of the class, and an unterminated class is a literal '[',
// both as in shell globbing.
func translate(pattern string) string {
	var b strings.Builder
	b.WriteString(`\A`)
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteByte('.')
		case '[':
			j := i + 1
			if j < len(pattern) && pattern[j] == '!' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			end := strings.IndexByte(pattern[j:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			seq := pattern[i+1 : j+end]
			i = j + end

			negated := strings.HasPrefix(seq, "!")
			if negated {
				seq = seq[1:]
			}
			seq = strings.ReplaceAll(seq, `\`, `\\`)
			seq = strings.ReplaceAll(seq, `]`, `\]`)

			b.WriteByte('[')
			if negated {
				b.WriteByte('^')
			} else if strings.HasPrefix(seq, "^") {
				// A leading literal '^' must not read as class negation.
				b.WriteByte('\\')
			}
			b.WriteString(seq)
			b.WriteByte(']')
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`\z`)
	return b.String()
}
