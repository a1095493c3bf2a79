package response

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// Parser turns raw narrator text into a Response. Recovery runs in stages:
//
//  1. parse the raw text as-is
//  2. strip markdown fences and stray backticks, repair, parse
//  3. extract the first brace-to-last-brace block by regex, repair, parse
//  4. slice from the first '{' to the last '}', repair, parse
//  5. scan line by line for a '{' prefix and parse the remainder
//  6. give up and return the safe default
//
// A stage only counts if the result carries displayable content.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```[a-zA-Z]*\\s*")
	fenceClose = regexp.MustCompile("```\\s*$")
	// "value_changes": {"suspicion": +5} is not JSON; drop the plus.
	plusNumber    = regexp.MustCompile(`":\s*\+(\d+)`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	braceBlock    = regexp.MustCompile(`(?s)\{.*\}`)
)

// Parse never returns an error: the last resort is the default reply.
// The boolean reports whether real narrator content survived.
func (p *Parser) Parse(raw string) (*Response, bool) {
	if r := tryParse(raw); r != nil {
		return r, true
	}

	clean := stripFences(raw)
	if r := tryParse(repair(clean)); r != nil {
		return r, true
	}

	if m := braceBlock.FindString(clean); m != "" {
		if r := tryParse(repair(m)); r != nil {
			p.logger.Debug("recovered reply from brace block")
			return r, true
		}
	}

	if i, j := strings.Index(clean, "{"), strings.LastIndex(clean, "}"); i >= 0 && j > i {
		if r := tryParse(repair(clean[i : j+1])); r != nil {
			p.logger.Debug("recovered reply from brace slice")
			return r, true
		}
	}

	for _, line := range strings.Split(clean, "\n") {
		if idx := strings.Index(line, "{"); idx >= 0 {
			rest := clean[strings.Index(clean, line)+idx:]
			if r := tryParse(repair(rest)); r != nil {
				p.logger.Debug("recovered reply from line scan")
				return r, true
			}
		}
	}

	p.logger.Warn("narrator reply unparseable, using default", "len", len(raw))
	return Default(), false
}

func tryParse(s string) *Response {
	var r Response
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil
	}
	r.normalize()
	if !r.hasContent() {
		return nil
	}
	return &r
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	s = strings.Trim(s, "`")
	return strings.TrimSpace(s)
}

func repair(s string) string {
	s = plusNumber.ReplaceAllString(s, `": $1`)
	s = trailingComma.ReplaceAllString(s, "$1")
	return s
}
