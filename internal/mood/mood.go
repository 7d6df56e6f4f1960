// Package mood extracts and summarizes numeric ratings from daily entries.
package mood

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/moodtools/moodlog/internal/model"
)

const (
	moodLabel   = "mood rating"
	energyLabel = "energy level"
	sleepLabel  = "hours of sleep"
)

// ParseSample extracts the numeric template fields from entry content. The
// value may sit after the label's colon or on the next non-empty line.
// Missing or non-numeric fields stay nil.
func ParseSample(entry model.Entry, content string) model.MoodSample {
	sample := model.MoodSample{Date: entry.Date, Path: entry.Path}

	lines := readLines(content)
	for i, line := range lines {
		label, rest, ok := splitLabel(line)
		if !ok {
			continue
		}
		value := rest
		if value == "" {
			value = nextValueLine(lines, i+1)
		}
		if value == "" {
			continue
		}
		switch {
		case strings.HasPrefix(label, moodLabel):
			if n, err := strconv.Atoi(value); err == nil {
				sample.Mood = &n
			}
		case strings.HasPrefix(label, energyLabel):
			if n, err := strconv.Atoi(value); err == nil {
				sample.Energy = &n
			}
		case strings.HasPrefix(label, sleepLabel):
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				sample.SleepHours = &f
			}
		}
	}
	return sample
}

func readLines(content string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func splitLabel(line string) (label, rest string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(line[:idx]))
	rest = strings.TrimSpace(line[idx+1:])
	return label, rest, true
}

func nextValueLine(lines []string, from int) string {
	for _, line := range lines[from:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, ":") {
			return ""
		}
		return trimmed
	}
	return ""
}

// Summary aggregates parsed samples.
type Summary struct {
	Entries    int
	Rated      int
	MoodAvg    float64
	MoodMin    int
	MoodMax    int
	EnergyAvg  float64
	SleepAvg   float64
	SleepCount int
}

// Summarize computes averages and extremes over the rated samples.
func Summarize(samples []model.MoodSample) Summary {
	s := Summary{Entries: len(samples)}
	moodSum := 0
	energySum, energyCount := 0, 0
	sleepSum := 0.0
	for _, sample := range samples {
		if sample.Mood != nil {
			m := *sample.Mood
			if s.Rated == 0 || m < s.MoodMin {
				s.MoodMin = m
			}
			if s.Rated == 0 || m > s.MoodMax {
				s.MoodMax = m
			}
			moodSum += m
			s.Rated++
		}
		if sample.Energy != nil {
			energySum += *sample.Energy
			energyCount++
		}
		if sample.SleepHours != nil {
			sleepSum += *sample.SleepHours
			s.SleepCount++
		}
	}
	if s.Rated > 0 {
		s.MoodAvg = float64(moodSum) / float64(s.Rated)
	}
	if energyCount > 0 {
		s.EnergyAvg = float64(energySum) / float64(energyCount)
	}
	if s.SleepCount > 0 {
		s.SleepAvg = sleepSum / float64(s.SleepCount)
	}
	return s
}
