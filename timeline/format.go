package timeline

import "fmt"

// Clock renders a millisecond position as a zero-padded minutes:seconds string.
func Clock(positionMs int64) string {
	mins := positionMs / 60_000
	secs := (positionMs - mins*60_000) / 1000
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// LengthClock renders a track length in seconds as a zero-padded minutes:seconds string.
func LengthClock(lengthSeconds float64) string {
	mins := int64(lengthSeconds / 60)
	secs := int64(lengthSeconds - float64(mins)*60)
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Percent returns the playback completion ratio in [0, 1] for rendering progress bars.
func Percent(p Position) float64 {
	if p.LengthSeconds <= 0 {
		return 0
	}
	ratio := float64(p.PositionMs) / 1000 / p.LengthSeconds
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
