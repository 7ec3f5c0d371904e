// Package passwordx scores password strength for the registration and reset
// flows. Evaluation is pure and performs no I/O.
package passwordx

// Label is the human-readable strength bucket shown next to the meter.
type Label string

const (
	LabelTooWeak Label = "Too weak"
	LabelWeak    Label = "Weak"
	LabelMedium  Label = "Medium"
	LabelStrong  Label = "Strong"
)

// MinRegistrationScore is the lowest score accepted when setting a password.
const MinRegistrationScore = 3

// Strength is the result of evaluating a password: a 0..5 score and its label.
type Strength struct {
	Score int
	Label Label
}

// Acceptable reports whether the password may be submitted to the service.
func (s Strength) Acceptable() bool {
	return s.Score >= MinRegistrationScore
}

// Evaluate scores a password by counting satisfied criteria: length of at
// least 8, a lowercase letter, an uppercase letter, a digit, and a character
// that is none of those. Identical input always yields an identical result.
func Evaluate(password string) Strength {
	score := 0
	if len(password) >= 8 {
		score++
	}

	// Criteria deliberately use ASCII classes: anything outside a-z, A-Z and
	// 0-9 counts as a symbol, matching what the service expects.
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}

	return Strength{Score: score, Label: labelFor(score)}
}

// labelFor maps a score to its bucket. Thresholds are checked from strongest
// down, so a score of exactly 2 lands on Weak and exactly 1 on Too weak.
func labelFor(score int) Label {
	switch {
	case score > 4:
		return LabelStrong
	case score > 2:
		return LabelMedium
	case score > 1:
		return LabelWeak
	default:
		return LabelTooWeak
	}
}
