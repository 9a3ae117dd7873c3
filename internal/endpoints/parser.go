// Package endpoints parses the line-oriented endpoint-definition file.
//
// The format is:
//
//	# Category Name
//	CONSTANT_NAME = "https://domain.com"
//
// A `#` line sets the category for every declaration until the next `#`
// line. Declarations without a preceding category get "Unknown".
package endpoints

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/NordCoder/Coloscope/internal/domain/endpoint"
)

// assignment matches NAME = "scheme://host..." with scheme http, https or
// wss. The host group stops at the first quote, slash or colon, so ports
// and paths are dropped.
var assignment = regexp.MustCompile(`(\w+)\s*=\s*"(?:https?|wss)://([^"/:]+)`)

// Parse extracts endpoint records from source lines in file order.
func Parse(lines []string) []endpoint.Record {
	var records []endpoint.Record
	category := ""
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "#"):
			category = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		default:
			m := assignment.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			cat := category
			if cat == "" {
				cat = "Unknown"
			}
			records = append(records, endpoint.Record{
				Name:     m[1],
				Category: cat,
				Domain:   m[2],
			})
		}
	}
	return records
}

// ParseFile parses the endpoint-definition file at path. A missing or
// unreadable file is the one fatal input error of a run.
func ParseFile(path string) ([]endpoint.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoints file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read endpoints file: %w", err)
	}
	return Parse(lines), nil
}
