package models

import "time"

// MaxConfidenceHistory bounds the rolling score history kept per user
const MaxConfidenceHistory = 10

// Emotional state labels produced by the voice stub
const (
	EmotionCalm      = "calm"
	EmotionConfident = "confident"
	EmotionNervous   = "nervous"
	EmotionStressed  = "stressed"
	EmotionUnknown   = "unknown"
)

// EmotionalStates is the fixed set the stub draws from
var EmotionalStates = []string{EmotionCalm, EmotionConfident, EmotionNervous, EmotionStressed}

// VoiceProfile is a best-effort record of past voice checks for a user.
// No reference audio is kept; the voiceprint is only a tag.
type VoiceProfile struct {
	UserID            string    `json:"user_id"`
	Voiceprint        string    `json:"voiceprint"`
	RegisteredPhrase  string    `json:"registered_phrase"`
	ConfidenceHistory []float64 `json:"confidence_history"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AverageConfidence returns the mean of the history as a fraction, 0 when empty
func (p *VoiceProfile) AverageConfidence() float64 {
	if len(p.ConfidenceHistory) == 0 {
		return 0
	}
	var sum float64
	for _, c := range p.ConfidenceHistory {
		sum += c
	}
	return sum / float64(len(p.ConfidenceHistory))
}

// VoiceVerifyRequest holds the form fields of POST /api/voice/verify
type VoiceVerifyRequest struct {
	UserID         string `form:"userId"`
	TransactionID  string `form:"transactionId"`
	ExpectedPhrase string `form:"expectedPhrase"`
}

// VoiceVerifyResponse is the verdict returned to the client
type VoiceVerifyResponse struct {
	Success        bool    `json:"success"`
	Confidence     float64 `json:"confidence"`
	Message        string  `json:"message"`
	EmotionalState string  `json:"emotionalState"`
	VerificationID string  `json:"verificationId"`
}

// VoiceProfileResponse is returned by GET /api/voice/profile/:userId
type VoiceProfileResponse struct {
	Exists              bool    `json:"exists"`
	RegisteredPhrase    string  `json:"registeredPhrase"`
	AverageConfidence   float64 `json:"averageConfidence"`
	VerificationHistory int     `json:"verificationHistory"`
	Message             string  `json:"message"`
}
