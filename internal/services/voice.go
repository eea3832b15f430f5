package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/Ananth-NQI/fraudshield-backend/internal/models"
	"github.com/Ananth-NQI/fraudshield-backend/internal/storage"
	"github.com/Ananth-NQI/fraudshield-backend/internal/utils"
)

const (
	maxVoiceConfidence  = 0.98
	voiceMatchThreshold = 0.65
	confidentThreshold  = 0.85
	stressedThreshold   = 0.5
)

// RandomSource is the randomness the voice stub draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// StubAnalyzer fabricates a biometric verdict from random numbers.
// It does not look at the audio; there is no voice model behind it.
type StubAnalyzer struct {
	rnd RandomSource
}

// NewStubAnalyzer creates an analyzer. A nil source uses the global generator.
func NewStubAnalyzer(rnd RandomSource) *StubAnalyzer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &StubAnalyzer{rnd: rnd}
}

// Analyze returns a pseudo confidence in [0, 0.98] and an emotional state label.
// Users with an existing profile get a small random bonus.
func (a *StubAnalyzer) Analyze(hasProfile bool) (float64, string) {
	audioQuality := a.rnd.Float64()*0.3 + 0.7
	baseConfidence := a.rnd.Float64()*0.4 + 0.6

	bonus := 0.0
	if hasProfile {
		bonus = a.rnd.Float64() * 0.2
	}

	confidence := math.Min(maxVoiceConfidence, (baseConfidence+bonus)*audioQuality)

	state := models.EmotionalStates[a.rnd.IntN(len(models.EmotionalStates))]
	switch {
	case confidence > confidentThreshold:
		state = models.EmotionConfident
	case confidence < stressedThreshold:
		state = models.EmotionStressed
	}

	return confidence, state
}

// VoiceService runs the mocked voice verification flow
type VoiceService struct {
	store    storage.Store
	audit    storage.AuditLog
	analyzer *StubAnalyzer
	minDelay time.Duration
	maxDelay time.Duration
	now      func() time.Time
}

// NewVoiceService creates a voice service. Each verification waits a random
// time in [minDelay, maxDelay) to simulate processing.
func NewVoiceService(store storage.Store, audit storage.AuditLog, analyzer *StubAnalyzer, minDelay, maxDelay time.Duration) *VoiceService {
	if analyzer == nil {
		analyzer = NewStubAnalyzer(nil)
	}
	return &VoiceService{
		store:    store,
		audit:    audit,
		analyzer: analyzer,
		minDelay: minDelay,
		maxDelay: maxDelay,
		now:      time.Now,
	}
}

// Verify scores an audio sample. A low score is returned as an unsuccessful
// verdict, not as an error; only missing input and cancellation fail.
func (s *VoiceService) Verify(ctx context.Context, req models.VoiceVerifyRequest, audio []byte, contentType string) (*models.VoiceVerifyResponse, error) {
	if len(audio) == 0 {
		return nil, newVerificationError(ErrValidation, "No audio file provided")
	}
	if req.UserID == "" || req.TransactionID == "" || req.ExpectedPhrase == "" {
		return nil, newVerificationError(ErrValidation, "Missing required fields: userId, transactionId, or expectedPhrase")
	}

	log.Printf("🎤 Voice verification requested for user %s, transaction %s", req.UserID, req.TransactionID)
	log.Printf("📝 Expected phrase: %q", req.ExpectedPhrase)
	log.Printf("🔊 Audio file received: %d bytes, type: %s", len(audio), contentType)

	if err := sleepContext(ctx, s.minDelay, s.maxDelay); err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error during voice verification", err)
	}

	var (
		confidence float64
		state      string
		scored     bool
	)
	_, err := s.store.RecordVoiceScore(req.UserID, req.ExpectedPhrase, s.now(), func(hasProfile bool) float64 {
		confidence, state = s.analyzer.Analyze(hasProfile)
		scored = true
		return confidence
	})
	if err != nil {
		log.Printf("⚠️  Failed to update voice profile for user %s: %v", req.UserID, err)
		if !scored {
			confidence, state = s.analyzer.Analyze(false)
		}
	}
	match := confidence > voiceMatchThreshold

	percent := confidence * 100
	var message string
	switch {
	case match:
		message = fmt.Sprintf("Voice verified successfully! Biometric match confirmed with %.1f%% confidence. Emotional state: %s.", percent, state)
	case state == models.EmotionStressed:
		message = fmt.Sprintf("Voice verification failed. Emotional stress detected (%s). This may indicate coercion. Security review required.", state)
	default:
		message = fmt.Sprintf("Voice verification failed. Biometric pattern doesn't match registered profile. Confidence: %.1f%%.", percent)
	}

	result := "FAILED"
	outcome := models.OutcomeFailed
	if match {
		result = "SUCCESS"
		outcome = models.OutcomeApproved
	}
	log.Printf("✅ Voice verification result: %s (%.1f%%)", result, percent)

	recordEvent(s.audit, &models.VerificationEvent{
		Kind:           models.EventVoiceVerify,
		UserID:         req.UserID,
		TransactionID:  req.TransactionID,
		Outcome:        outcome,
		Confidence:     percent,
		EmotionalState: state,
	})

	return &models.VoiceVerifyResponse{
		Success:        match,
		Confidence:     percent,
		Message:        message,
		EmotionalState: state,
		VerificationID: utils.GenerateSecureID("voice", s.now()),
	}, nil
}

// Profile summarizes the stored history for a user
func (s *VoiceService) Profile(userID string) (*models.VoiceProfileResponse, error) {
	profile, err := s.store.GetVoiceProfile(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newVerificationError(ErrNotFound, "No voice profile found for this user")
	}
	if err != nil {
		return nil, wrapVerificationError(ErrInternal, "Internal server error", err)
	}

	return &models.VoiceProfileResponse{
		Exists:              true,
		RegisteredPhrase:    profile.RegisteredPhrase,
		AverageConfidence:   profile.AverageConfidence() * 100,
		VerificationHistory: len(profile.ConfidenceHistory),
		Message:             "Voice profile found",
	}, nil
}
