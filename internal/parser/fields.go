package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/limitlesscruises/portguide/internal/portguide"
)

var (
	// "1. **Name** (category: landmark)"
	itemHeaderPattern = regexp.MustCompile(`^\d+\.\s+\*\*(.+?)\*\*(.*)$`)
	headerAttrPattern = regexp.MustCompile(`\(\s*([A-Za-z ]+?)\s*:\s*([^)]*)\)`)
)

func isBullet(text string) bool {
	return strings.HasPrefix(text, "- ")
}

// bulletField splits "- Key: value" on the first colon. The value may be empty.
func bulletField(text string) (key, value string, ok bool) {
	if !isBullet(text) {
		return "", "", false
	}
	rest := text[2:]
	i := strings.Index(rest, ":")
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(rest[:i])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(rest[i+1:]), true
}

// bulletText returns the content of a "- text" bullet.
func bulletText(text string) (string, bool) {
	if !isBullet(text) {
		return "", false
	}
	t := strings.TrimSpace(text[2:])
	return t, t != ""
}

// itemHeader matches a numbered bold header and returns the bold name and
// whatever trails it.
func itemHeader(text string) (name, rest string, ok bool) {
	m := itemHeaderPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// headerAttr extracts "(key: value)" from the tail of an item header.
func headerAttr(rest, key string) string {
	for _, m := range headerAttrPattern.FindAllStringSubmatch(rest, -1) {
		if strings.EqualFold(m[1], key) {
			return strings.TrimSpace(m[2])
		}
	}
	return ""
}

// snakeKey turns a bullet label into a mapping key: "Best Time" -> "best_time".
func snakeKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "_")
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCoordinates reads "lat, lon". Either half falls back to 0.
func parseCoordinates(value string) portguide.Coordinates {
	parts := strings.Split(value, ",")
	var c portguide.Coordinates
	c.Lat = parseFloat(parts[0])
	if len(parts) > 1 {
		c.Lon = parseFloat(parts[1])
	}
	return c
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// truncateRunes hard-cuts s to n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
