package models

// Band is a display category derived from a numeric score.
type Band string

const (
	BandNeutral   Band = "neutral"
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandWarning   Band = "warning"
	BandCritical  Band = "critical"
)

func (b Band) String() string {
	return string(b)
}

// ScoreBand classifies a score. A nil score means no data and maps to neutral.
// The same thresholds apply to single grades and to averages.
func ScoreBand(score *float64) Band {
	if score == nil {
		return BandNeutral
	}

	switch s := *score; {
	case s >= 90:
		return BandExcellent
	case s >= 70:
		return BandGood
	case s >= 50:
		return BandWarning
	default:
		return BandCritical
	}
}
