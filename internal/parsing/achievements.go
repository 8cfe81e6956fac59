package parsing

import "regexp"

var achievementPatterns = []*regexp.Regexp{
	// percentages
	regexp.MustCompile(`\d+(?:\.\d+)?\s?%`),
	// currency amounts
	regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?\s?(?:[kKmMbB]\b|million\b|billion\b)?`),
	// multipliers
	regexp.MustCompile(`\b\d+(?:\.\d+)?x\b`),
	// counted outcomes
	regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d+)?\s?[kKmM]?\+?\s+(?:users|customers|clients|engineers|developers|people|employees|members|projects|services|requests|transactions|downloads|countries|markets|accounts|stores|students|patients)\b`),
}

// CountQuantifiedAchievements counts percentages, currency amounts,
// multipliers and counted outcomes in text.
func CountQuantifiedAchievements(text string) int {
	count := 0
	for _, re := range achievementPatterns {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}
