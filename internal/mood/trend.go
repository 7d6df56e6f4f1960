package mood

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/moodtools/moodlog/internal/model"
)

var trendLevels = []rune("▁▂▃▄▅▆▇█")

// TerminalWidth returns the stdout terminal width or a fallback when stdout
// is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// RenderTrend draws mood ratings as a single-line strip, most recent sample
// last. Unrated entries render as spaces. Samples beyond the width are
// dropped from the front.
func RenderTrend(samples []model.MoodSample, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}
	var b strings.Builder
	for _, sample := range samples {
		if sample.Mood == nil {
			b.WriteByte(' ')
			continue
		}
		level := *sample.Mood
		if level < 1 {
			level = 1
		}
		if level > 10 {
			level = 10
		}
		idx := (level - 1) * len(trendLevels) / 10
		if idx >= len(trendLevels) {
			idx = len(trendLevels) - 1
		}
		b.WriteRune(trendLevels[idx])
	}
	return b.String()
}
