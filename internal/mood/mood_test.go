package mood

import (
	"strings"
	"testing"
	"time"

	"github.com/moodtools/moodlog/internal/model"
)

func entryFor(day string) model.Entry {
	parsed, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		panic(err)
	}
	return model.Entry{Date: parsed, Name: "mood_" + day + ".txt", Path: "/tmp/mood_" + day + ".txt"}
}

func TestParseSampleSameLine(t *testing.T) {
	content := `Mood Journal - 2024-03-05

Mood rating (1-10): 7

Notes:
busy day

Energy level (1-10): 5

Hours of sleep: 7.5
`
	sample := ParseSample(entryFor("2024-03-05"), content)
	if sample.Mood == nil || *sample.Mood != 7 {
		t.Fatalf("mood = %v, want 7", sample.Mood)
	}
	if sample.Energy == nil || *sample.Energy != 5 {
		t.Fatalf("energy = %v, want 5", sample.Energy)
	}
	if sample.SleepHours == nil || *sample.SleepHours != 7.5 {
		t.Fatalf("sleep = %v, want 7.5", sample.SleepHours)
	}
}

func TestParseSampleNextLine(t *testing.T) {
	content := `Mood Journal - 2024-03-06

Mood rating (1-10):
8

Energy level (1-10):

Hours of sleep:
6
`
	sample := ParseSample(entryFor("2024-03-06"), content)
	if sample.Mood == nil || *sample.Mood != 8 {
		t.Fatalf("mood = %v, want 8", sample.Mood)
	}
	// The energy value line is another label, so the field stays empty.
	if sample.Energy != nil {
		t.Fatalf("energy = %v, want nil", *sample.Energy)
	}
	if sample.SleepHours == nil || *sample.SleepHours != 6 {
		t.Fatalf("sleep = %v, want 6", sample.SleepHours)
	}
}

func TestParseSampleIgnoresGarbage(t *testing.T) {
	content := `Mood rating (1-10): great
Hours of sleep: a lot
`
	sample := ParseSample(entryFor("2024-03-07"), content)
	if sample.Mood != nil || sample.SleepHours != nil {
		t.Fatalf("non-numeric values must stay nil: %+v", sample)
	}
}

func TestSummarize(t *testing.T) {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }
	samples := []model.MoodSample{
		{Mood: intp(4), Energy: intp(5), SleepHours: floatp(8)},
		{Mood: intp(8), Energy: intp(7)},
		{},
	}
	s := Summarize(samples)
	if s.Entries != 3 || s.Rated != 2 {
		t.Fatalf("entries=%d rated=%d", s.Entries, s.Rated)
	}
	if s.MoodAvg != 6 || s.MoodMin != 4 || s.MoodMax != 8 {
		t.Fatalf("mood avg=%v min=%d max=%d", s.MoodAvg, s.MoodMin, s.MoodMax)
	}
	if s.EnergyAvg != 6 {
		t.Fatalf("energy avg=%v", s.EnergyAvg)
	}
	if s.SleepAvg != 8 || s.SleepCount != 1 {
		t.Fatalf("sleep avg=%v count=%d", s.SleepAvg, s.SleepCount)
	}
}

func TestRenderTrend(t *testing.T) {
	intp := func(v int) *int { return &v }
	samples := []model.MoodSample{
		{Mood: intp(1)},
		{},
		{Mood: intp(10)},
	}
	trend := RenderTrend(samples, 80)
	runes := []rune(trend)
	if len(runes) != 3 {
		t.Fatalf("trend %q has %d cells, want 3", trend, len(runes))
	}
	if runes[0] != '▁' || runes[1] != ' ' || runes[2] != '█' {
		t.Fatalf("unexpected trend %q", trend)
	}
}

func TestRenderTrendClampsToWidth(t *testing.T) {
	intp := func(v int) *int { return &v }
	samples := make([]model.MoodSample, 10)
	for i := range samples {
		v := i + 1
		samples[i] = model.MoodSample{Mood: intp(v)}
	}
	trend := RenderTrend(samples, 4)
	if n := len([]rune(trend)); n != 4 {
		t.Fatalf("trend has %d cells, want 4", n)
	}
	// Most recent samples survive.
	if []rune(trend)[3] != '█' {
		t.Fatalf("expected the newest sample last, got %q", trend)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := FormatTable(
		[]string{"date", "mood"},
		[][]string{{"2024-01-01", "7"}, {"2024-01-02", "10"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], " 7") {
		t.Fatalf("expected right-aligned mood column: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "10") {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}
