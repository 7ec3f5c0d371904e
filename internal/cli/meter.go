package cli

import (
	"fmt"
	"strings"

	"github.com/akarpovs/authgate/internal/passwordx"
)

// meterWidth is the number of segments in the strength meter, one per
// scoring criterion.
const meterWidth = 5

// renderStrengthMeter draws a terminal rendition of the password meter,
// e.g. "[###--] Medium".
func renderStrengthMeter(s passwordx.Strength) string {
	filled := s.Score
	if filled > meterWidth {
		filled = meterWidth
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", meterWidth-filled)
	return fmt.Sprintf("[%s] %s", bar, s.Label)
}
