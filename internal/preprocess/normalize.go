package preprocess

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/skill-taxonomy/internal/types"
)

// levelWords maps proficiency words to the 1-7 scale.
var levelWords = map[string]int{
	"beginner":     1,
	"novice":       1,
	"basic":        2,
	"elementary":   2,
	"intermediate": 3,
	"competent":    3,
	"advanced":     4,
	"proficient":   4,
	"expert":       5,
	"master":       6,
	"strategic":    7,
}

// categorySynonyms folds free-form category labels into the closed set.
var categorySynonyms = map[string]string{
	"tech":            "technical",
	"technology":      "technical",
	"it":              "technical",
	"engineering":     "technical",
	"technical":       "technical",
	"soft":            "interpersonal",
	"communication":   "interpersonal",
	"leadership":      "interpersonal",
	"management":      "interpersonal",
	"interpersonal":   "interpersonal",
	"analytical":      "cognitive",
	"thinking":        "cognitive",
	"problem_solving": "cognitive",
	"cognitive":       "cognitive",
	"domain":          "domain_knowledge",
	"business":        "domain_knowledge",
	"domain_knowledge": "domain_knowledge",
}

// cleanName collapses internal whitespace and trims the name.
func cleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// normalizeLevel resolves a loosely typed level value to the 1-7 scale.
// Accepts integers, floats with integral values, numeric strings, and
// proficiency words. Returns an error for anything else.
func normalizeLevel(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("level is missing")
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("level %v is not an integer", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("level %q is not an integer", v.String())
		}
		return int(n), nil
	case string:
		word := strings.ToLower(strings.TrimSpace(v))
		if word == "" {
			return 0, fmt.Errorf("level is empty")
		}
		if level, ok := levelWords[word]; ok {
			return level, nil
		}
		if n, err := strconv.Atoi(word); err == nil {
			return n, nil
		}
		return 0, fmt.Errorf("unknown level word %q", v)
	default:
		return 0, fmt.Errorf("level has unsupported type %T", value)
	}
}

// normalizeContext resolves a context string to one of the three known values.
func normalizeContext(value string) (types.Context, error) {
	ctx := types.Context(strings.ToLower(strings.TrimSpace(value)))
	if ctx == "" {
		return "", fmt.Errorf("context is missing")
	}
	if !ctx.Valid() {
		return "", fmt.Errorf("unknown context %q", value)
	}
	return ctx, nil
}

// normalizeCategory maps a free-form category label into the closed set.
// Labels with no known synonym pass through lowercased.
func normalizeCategory(value string) string {
	category := strings.ToLower(strings.TrimSpace(value))
	if mapped, ok := categorySynonyms[category]; ok {
		return mapped
	}
	return category
}

// normalizeKeywords accepts a list of strings or a comma-separated string.
func normalizeKeywords(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil
	}

	var keywords []string
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
