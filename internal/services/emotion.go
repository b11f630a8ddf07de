package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EmotionService asks the external AI endpoint to predict the emotion of a
// free-text answer. The call is strictly best effort: it runs off the
// request path and its failure never affects the stored answer.
type EmotionService struct {
	httpClient *http.Client
	apiURL     string
}

func NewEmotionService(apiURL string) *EmotionService {
	return &EmotionService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     apiURL,
	}
}

func (s *EmotionService) IsAvailable() bool {
	return s.apiURL != ""
}

type predictRequest struct {
	Type    string         `json:"type"`
	Payload predictPayload `json:"payload"`
}

type predictPayload struct {
	AnswerID string `json:"answer_id"`
}

// Predict requests emotion prediction for one stored answer, keyed by its
// row id. The AI service reads the row and writes the prediction back on
// its own.
func (s *EmotionService) Predict(answerSectionUUID string) error {
	if !s.IsAvailable() {
		return nil
	}

	body, err := json.Marshal(predictRequest{
		Type:    "predict",
		Payload: predictPayload{AnswerID: answerSectionUUID},
	})
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Post(s.apiURL+"emotions", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("emotion API returned status %d", resp.StatusCode)
	}
	return nil
}
