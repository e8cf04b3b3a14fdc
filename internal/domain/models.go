package domain

import "time"

// Importance marks how a question contributes to the auto-fail rule.
type Importance string

const (
	ImportanceNormal   Importance = "normal"
	ImportanceCritical Importance = "critical"
)

// Valid reports whether the importance is one of the known values.
func (i Importance) Valid() bool {
	return i == ImportanceNormal || i == ImportanceCritical
}

// Question is a single bank record. Options and Answer are fixed at load
// time and never mutated afterwards. Fields after TopicTags are opaque
// metadata carried through from the bank; scoring never reads them.
type Question struct {
	ID         string     `json:"id"`
	Prompt     string     `json:"question"`
	Options    []string   `json:"options"`
	Answer     int        `json:"answer"`
	Importance Importance `json:"importance"`
	TopicTags  []string   `json:"topic_tags"`

	SlideRef     *int   `json:"slide_ref"`
	VTTTimestamp string `json:"vtt_timestamp,omitempty"`
	BloomLevel   string `json:"bloom_level,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// AnswerMap maps a question ID to the selected original option index,
// or nil while the question is unanswered.
type AnswerMap map[string]*int

// Tier is the certification level assigned from score and critical-wrong count.
type Tier string

const (
	TierFailed   Tier = "Failed"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Rank orders tiers by ascending score threshold, Failed lowest.
func (t Tier) Rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierPlatinum:
		return 3
	default:
		return 0
	}
}

// ScoreResult is the immutable outcome of one scored attempt.
// CertificateID is empty when Tier is Failed.
type ScoreResult struct {
	ParticipantName string    `json:"participantName"`
	TotalQuestions  int       `json:"totalQuestions"`
	CorrectAnswers  int       `json:"correctAnswers"`
	CriticalWrong   int       `json:"criticalWrong"`
	Score           float64   `json:"score"`
	Tier            Tier      `json:"tier"`
	CompletedAt     time.Time `json:"completedAt"`
	CertificateID   string    `json:"certificateId,omitempty"`
}

// Failure reasons the presentation layer can attach to a Failed result.
const (
	ReasonTimeExpired       = "time-expired"
	ReasonCriticalThreshold = "critical-threshold-exceeded"
	ReasonScoreBelow        = "score-below-threshold"
)
