package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrRowRequired indicates no row was provided.
var ErrRowRequired = errors.New("row required")

// ParseRow parses a 1-based row number on the displayed page.
//
// Parsing rules:
// 1. No arg → error: row required
// 2. All digits → row number (must be at least 1)
// 3. Otherwise → error: invalid row: <arg>
func ParseRow(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrRowRequired
	}
	return parseRow(args[0])
}

// ParseRows parses one or more rows, dropping duplicates but keeping order.
func ParseRows(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrRowRequired
	}

	seen := make(map[int]bool)
	var rows []int
	for _, arg := range args {
		row, err := parseRow(arg)
		if err != nil {
			return nil, err
		}
		if seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(arg string) (int, error) {
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid row: %s", arg)
	}
	row, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid row: %s", arg)
	}
	if row < 1 {
		return 0, fmt.Errorf("row out of range: %d", row)
	}
	return row, nil
}

// parsePageFlag handles custom parsing for --page and the page command.
func parsePageFlag(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid page number: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number: %s", s)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
