package live

import (
	"encoding/json"

	"github.com/loomui/loom/pkg/fiber"
)

// FrameStats is the wire form of fiber.CommitStats.
type FrameStats struct {
	Placements int   `json:"placements"`
	Updates    int   `json:"updates"`
	Moves      int   `json:"moves"`
	Deletions  int   `json:"deletions"`
	Effects    int   `json:"effects"`
	DurationUs int64 `json:"duration_us"`
}

// Frame is one broadcast message. HTML is present only when the
// checksum differs from the previous frame.
type Frame struct {
	Seq      uint64     `json:"seq"`
	Checksum string     `json:"checksum"`
	Stats    FrameStats `json:"stats"`
	HTML     string     `json:"html,omitempty"`
}

func statsToWire(s fiber.CommitStats) FrameStats {
	return FrameStats{
		Placements: s.Placements,
		Updates:    s.Updates,
		Moves:      s.Moves,
		Deletions:  s.Deletions,
		Effects:    s.Effects,
		DurationUs: s.Duration.Microseconds(),
	}
}

func encodeFrame(f Frame) ([]byte, error) {
	return json.Marshal(f)
}
