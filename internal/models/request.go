package models

import (
	"strings"
)

// ImageAnalysisRequest is what the analysis layer hands to an LLM provider.
type ImageAnalysisRequest struct {
	RequestID         string
	SystemInstruction string
	Prompt            string
	Image             []byte
	MimeType          string
}

type AnalyzeRequest struct {
	Image   string `json:"image"`
	DraftID string `json:"draftId"`
}

// implements the Validator interface
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Image) == "" {
		return &ErrorResponse{Code: "missing_image", Message: "Image field is required"}
	}
	r.DraftID = strings.TrimSpace(r.DraftID)
	return nil
}

type SubmitProblemRequest struct {
	StudentName     string `json:"studentName"`
	Phone           string `json:"phone"`
	Image           string `json:"image"`
	PackageQuantity int    `json:"packageQuantity"`
	AnalysisID      string `json:"analysisId"`
}

func (r *SubmitProblemRequest) Validate() error {
	var details []ValidationErrorDetail
	if strings.TrimSpace(r.StudentName) == "" {
		details = append(details, ValidationErrorDetail{Field: "studentName", Reason: "required"})
	}
	if strings.TrimSpace(r.Phone) == "" {
		details = append(details, ValidationErrorDetail{Field: "phone", Reason: "required"})
	}
	if strings.TrimSpace(r.Image) == "" {
		details = append(details, ValidationErrorDetail{Field: "image", Reason: "required"})
	}
	if r.PackageQuantity < 0 {
		details = append(details, ValidationErrorDetail{Field: "packageQuantity", Reason: "must not be negative"})
	}
	if len(details) > 0 {
		return &ErrorResponse{
			Code:    "missing_fields",
			Message: "Please fill in every field and upload an image",
			Details: details,
		}
	}
	return nil
}

type UpdateStatusRequest struct {
	Status ProblemStatus `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	r.Status = ProblemStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if !ValidStatuses[r.Status] {
		return &ErrorResponse{
			Code:    "invalid_status",
			Message: "Status must be one of: pending, in-progress, completed",
		}
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return &ErrorResponse{Code: "missing_credentials", Message: "Username and password are required"}
	}
	return nil
}

// NavigateRequest asks for the next application mode.
type NavigateRequest struct {
	Mode   string `json:"mode"`
	Intent string `json:"intent"`
}

func (r *NavigateRequest) Validate() error {
	r.Mode = strings.ToUpper(strings.TrimSpace(r.Mode))
	r.Intent = strings.ToLower(strings.TrimSpace(r.Intent))
	if r.Intent == "" {
		return &ErrorResponse{Code: "missing_intent", Message: "Intent is required"}
	}
	return nil
}
