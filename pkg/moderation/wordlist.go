package moderation

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed blocklist.txt
var defaultWordList []byte

// ParseWordList reads one term per line and drops blank lines.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadWordListFile reads the word list stored at path.
func LoadWordListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	return ParseWordList(f)
}

// DefaultWordList returns the list compiled into the binary.
func DefaultWordList() []string {
	words, _ := ParseWordList(bytes.NewReader(defaultWordList))
	return words
}
