package transcode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ffmpeg stderr patterns. The probe prints a single
// "Duration: HH:MM:SS.ff" header; the transcode emits recurring
// "time=HH:MM:SS.ff" markers as it advances.
var (
	durationPattern = regexp.MustCompile(`Duration: (\d+:\d{2}:\d{2}\.\d+)`)
	timePattern     = regexp.MustCompile(`time=(\d+:\d{2}:\d{2}\.\d+)`)
)

// maxCapturedLines bounds the stderr tail kept for error reporting
const maxCapturedLines = 50

// ExtractDuration finds the media duration in probe output and returns it
// in whole seconds.
func ExtractDuration(output string) (float64, bool) {
	match := durationPattern.FindStringSubmatch(output)
	if match == nil {
		return 0, false
	}
	seconds, err := parseTimestamp(match[1])
	if err != nil {
		return 0, false
	}
	return math.Round(seconds), true
}

// ExtractProgressTime finds the elapsed transcode time in a stderr line
func ExtractProgressTime(line string) (float64, bool) {
	match := timePattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false
	}
	seconds, err := parseTimestamp(match[1])
	if err != nil {
		return 0, false
	}
	return seconds, true
}

// Percent computes current/total as a percentage clamped to [0,100]
func Percent(current, total float64) float64 {
	if total <= 0 {
		return 0
	}
	percent := current / total * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// parseTimestamp converts "HH:MM:SS.ff" to seconds
func parseTimestamp(ts string) (float64, error) {
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp: %q", ts)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed hours in %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed minutes in %q: %w", ts, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed seconds in %q: %w", ts, err)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// scanProgressLines splits on both CR and LF; ffmpeg terminates its
// recurring progress updates with a bare carriage return.
func scanProgressLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// monitorProgress reads ffmpeg stderr line by line, publishing a clamped,
// non-decreasing percentage for every progress marker. It returns the tail
// of the stream for error reporting. Pure with respect to the process: any
// reader works, so it can be tested against canned text.
func monitorProgress(stderr io.Reader, totalDuration float64, progress ProgressFunc) string {
	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanProgressLines)

	var captured []string
	lastPercent := 0.0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		captured = append(captured, line)
		if len(captured) > maxCapturedLines {
			captured = captured[1:]
		}

		elapsed, ok := ExtractProgressTime(line)
		if !ok {
			continue
		}

		percent := Percent(elapsed, totalDuration)
		if percent < lastPercent {
			// Reporting is monotonic per task
			continue
		}
		lastPercent = percent
		if progress != nil {
			progress(percent)
		}
	}

	if err := scanner.Err(); err != nil {
		// A mid-stream read error ends monitoring early; record it so the
		// failure diagnostic is not silently incomplete
		captured = append(captured, fmt.Sprintf("stderr read error: %v", err))
	}

	return strings.Join(captured, "\n")
}
