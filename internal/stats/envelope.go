package stats

import "encoding/json"

type envelope struct {
	Text    any    `json:"text"`
	Predict string `json:"predict"`
}

// EncodeEnvelope serializes a respondent's answer value into the stored
// envelope form. The predict slot is filled in later, out of band, by the
// emotion service.
func EncodeEnvelope(value any) (string, error) {
	b, err := json.Marshal(envelope{Text: value})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
