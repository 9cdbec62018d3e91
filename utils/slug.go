package utils

import (
	"regexp"
	"strings"
)

const maxSlugLength = 80

var (
	slugQuotes   = strings.NewReplacer("'", "", "’", "", "`", "", "\"", "")
	slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify turns free text into a URL-safe, length-bounded identifier.
// It is idempotent: slugifying a slug returns it unchanged.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = slugQuotes.Replace(s)
	s = slugNonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	return s
}

// ComputeSeoScore grades a slug from 0 to 100. The heuristic rewards a
// readable length and the canonical hyphen-word shape.
func ComputeSeoScore(slug string) int {
	if slug == "" {
		return 0
	}

	score := 60

	if n := len(slug); n >= 10 && n <= 60 {
		score += 20
	} else {
		score -= 10
	}

	if slugPattern.MatchString(slug) {
		score += 15
	} else {
		score -= 20
	}

	if strings.Contains(slug, "-") {
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
