package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatPaymentMonths serializes a month list to the stored comma-joined
// form ("3,6,9,12"), sorted ascending. An empty list becomes the empty
// string.
func FormatPaymentMonths(months []int) string {
	if len(months) == 0 {
		return ""
	}
	sorted := make([]int, len(months))
	copy(sorted, months)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

// ParsePaymentMonths parses the stored comma-joined month list back into a
// sorted, de-duplicated slice. Entries that are not integers in 1-12 are
// dropped; legacy rows may carry whitespace or stray tokens.
func ParsePaymentMonths(str string) []int {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(str, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 12 {
			continue
		}
		seen[n] = true
	}

	if len(seen) == 0 {
		return nil
	}
	months := make([]int, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// FormatPlatforms serializes a platform list to the stored comma-joined
// form, dropping empty entries.
func FormatPlatforms(platforms []string) string {
	cleaned := make([]string, 0, len(platforms))
	for _, p := range platforms {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ",")
}

// ParsePlatforms parses the stored comma-joined platform list.
func ParsePlatforms(str string) []string {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	platforms := make([]string, 0, 4)
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			platforms = append(platforms, part)
		}
	}
	return platforms
}
