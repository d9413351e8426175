package app

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const DefaultMaxLineLength = 65536

// trailingSlack is how much trailing whitespace a line may carry past
// maxLen before the scanner gives up on it.
const trailingSlack = 1024

// ReadPolymer reads the first line of r and strips trailing whitespace.
// The polymer left after stripping must fit in maxLen; longer lines are
// rejected instead of truncated.
func ReadPolymer(r io.Reader, maxLen int) (Polymer, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLineLength
	}

	scanner := bufio.NewScanner(r)
	// запас под хвостовые пробелы и "\r\n", обрезаем их уже после чтения
	scanner.Buffer(make([]byte, 0, min(maxLen+trailingSlack, 4096)), maxLen+trailingSlack)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return nil, fmt.Errorf("%w: more than %d chars", ErrLineTooLong, maxLen)
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
		return nil, ErrNoInput
	}

	line := bytes.TrimRight(scanner.Bytes(), " \t\r\n\v\f")
	if len(line) > maxLen {
		return nil, fmt.Errorf("%w: %d chars, limit %d", ErrLineTooLong, len(line), maxLen)
	}
	return Polymer(bytes.Clone(line)), nil
}
