package models

import "time"

// AIAnalysis is the suggestion returned by the image analysis service.
type AIAnalysis struct {
	Complexity       Complexity `json:"complexity"`
	Subject          string     `json:"subject"`
	EstimatedMinutes float64    `json:"estimatedMinutes"`
	Price            float64    `json:"price"`
	Description      string     `json:"description"`
}

// ProblemRecord is one submitted academic problem. The JSON layout is the
// durable storage format, so field names must stay stable.
type ProblemRecord struct {
	ID              string        `json:"id"`
	StudentName     string        `json:"studentName"`
	Phone           string        `json:"phone"`
	Image           string        `json:"image"`
	PackageQuantity int           `json:"packageQuantity"`
	PackageDiscount float64       `json:"packageDiscount"`
	Analysis        *AIAnalysis   `json:"analysis"`
	Status          ProblemStatus `json:"status"`
	Timestamp       time.Time     `json:"timestamp"`
	Paid            bool          `json:"paid"`

	// reserved, not populated by any operation yet
	AssignedTeacher string `json:"assignedTeacher,omitempty"`
	MeetingLink     string `json:"meetingLink,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
}

// Clone returns a deep copy so callers never share the analysis pointer.
func (p ProblemRecord) Clone() ProblemRecord {
	if p.Analysis != nil {
		analysis := *p.Analysis
		p.Analysis = &analysis
	}
	return p
}

// Revenue is the amount this record contributes to collected revenue.
func (p ProblemRecord) Revenue() float64 {
	if !p.Paid || p.Analysis == nil {
		return 0
	}
	return p.Analysis.Price
}
