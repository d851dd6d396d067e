package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/flavioribeiro/donut-cc/internal/entities"
)

// srtFallbackDuration is the cue duration used when no later timestamp bounds a run.
const srtFallbackDuration = 5 * time.Second

// ExportText renders the text of the given services in "=== Service N ===" sections.
func (s *CaptionStore) ExportText(services []int) string {
	var b strings.Builder
	for _, service := range services {
		c, ok := s.Snapshot(service)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "=== Service %d ===\n", service)
		if text := c.Text(); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ExportSRT renders one SubRip cue per non-empty run, consecutive runs with the
// same timestamp sharing one cue. Cues are placed at the
// run timestamp relative to the first timed run of the service and last until
// the next timed run; runs without a usable timestamp follow the previous cue
// and last srtFallbackDuration.
func (s *CaptionStore) ExportSRT(services []int) string {
	var b strings.Builder
	index := 1
	for _, service := range services {
		c, ok := s.Snapshot(service)
		if !ok {
			continue
		}

		runs := make([]entities.CaptionTextRun, 0, len(c.Runs))
		var base *int64
		for _, r := range c.Runs {
			if r.Text == "" {
				continue
			}
			if base == nil && r.PTS != nil {
				base = r.PTS
			}
			// runs split by a pen change inside one access unit share a cue
			if last := len(runs) - 1; last >= 0 && r.PTS != nil && runs[last].PTS != nil && *r.PTS == *runs[last].PTS {
				runs[last].Text += r.Text
				continue
			}
			runs = append(runs, r)
		}

		cursor := time.Duration(0)
		for i, r := range runs {
			start := cursor
			if r.PTS != nil && base != nil {
				start = ptsDuration(*r.PTS - *base)
			}
			end := start + srtFallbackDuration
			if i+1 < len(runs) && runs[i+1].PTS != nil && base != nil {
				if next := ptsDuration(*runs[i+1].PTS - *base); next > start {
					end = next
				}
			}
			cursor = end

			fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", index, srtTimestamp(start), srtTimestamp(end), strings.TrimRight(r.Text, "\n"))
			index++
		}
	}
	return b.String()
}

func ptsDuration(ticks int64) time.Duration {
	return time.Duration(ticks) * time.Millisecond / (entities.PTSClockRate / 1000)
}

func srtTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d,%03d", ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}
