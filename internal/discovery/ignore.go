package discovery

import (
	"bufio"
	"os"
	"strings"
)

// ExcludesFromFile reads glob patterns from an ignore file, one per line.
// Lines starting with '#' and blank lines are skipped. A missing file is not
// an error; it just yields no patterns.
func ExcludesFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		pattern := strings.TrimRight(line, " \t\r\n")
		if pattern == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
