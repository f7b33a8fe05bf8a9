package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// output of a provider call
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

type AnalysisResponse struct {
	RequestID string             `json:"request_id"`
	Analysis  *AIAnalysis        `json:"analysis"`
	Metadata  GenerationMetadata `json:"metadata"`
}

type DashboardResponse struct {
	Problems []ProblemRecord `json:"problems"`
	Stats    DashboardStats  `json:"stats"`
}

// DashboardStats aggregates the current snapshot.
type DashboardStats struct {
	Pending      int     `json:"pending"`
	InProgress   int     `json:"inProgress"`
	Completed    int     `json:"completed"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Mode          string `json:"mode"`
}

type ContactResponse struct {
	URL string `json:"url"`
}

// PackageView is a catalog entry with its price after discount.
type PackageView struct {
	Quantity        int     `json:"quantity"`
	Label           string  `json:"label"`
	UnitListPrice   float64 `json:"unitListPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	Price           float64 `json:"price"`
}
