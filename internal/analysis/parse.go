package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"solverpro/internal/models"
)

// wire shape with pointers so missing fields are detectable
type analysisPayload struct {
	Complexity       *string  `json:"complexity"`
	Subject          *string  `json:"subject"`
	EstimatedMinutes *float64 `json:"estimatedMinutes"`
	Price            *float64 `json:"price"`
	Description      *string  `json:"description"`
}

// ParseAnalysis decodes provider text into an AIAnalysis, enforcing the
// required fields, the complexity enum and non-negative numbers.
func ParseAnalysis(text string) (*models.AIAnalysis, error) {
	text = stripFences(strings.TrimSpace(text))
	if text == "" {
		return nil, &AnalysisError{Reason: ReasonEmpty, Message: "no response text"}
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &AnalysisError{Reason: ReasonSchema, Message: "response is not valid JSON", Err: err}
	}

	var missing []string
	if payload.Complexity == nil {
		missing = append(missing, "complexity")
	}
	if payload.Subject == nil {
		missing = append(missing, "subject")
	}
	if payload.EstimatedMinutes == nil {
		missing = append(missing, "estimatedMinutes")
	}
	if payload.Price == nil {
		missing = append(missing, "price")
	}
	if payload.Description == nil {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, &AnalysisError{Reason: ReasonSchema, Message: "missing fields: " + strings.Join(missing, ", ")}
	}

	complexity := models.Complexity(strings.ToLower(strings.TrimSpace(*payload.Complexity)))
	if !models.ValidComplexities[complexity] {
		return nil, &AnalysisError{Reason: ReasonSchema, Message: fmt.Sprintf("unknown complexity %q", *payload.Complexity)}
	}
	if *payload.EstimatedMinutes < 0 || *payload.Price < 0 {
		return nil, &AnalysisError{Reason: ReasonSchema, Message: "estimatedMinutes and price must not be negative"}
	}

	return &models.AIAnalysis{
		Complexity:       complexity,
		Subject:          *payload.Subject,
		EstimatedMinutes: *payload.EstimatedMinutes,
		Price:            *payload.Price,
		Description:      *payload.Description,
	}, nil
}

// stripFences removes a ```json ... ``` wrapper some models add.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
