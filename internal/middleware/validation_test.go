package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solverpro/internal/models"
)

type mockRequest struct {
	Value string `json:"value"`
}

func (m *mockRequest) Validate() error {
	if m.Value == "generic_error" {
		return errors.New("failed")
	}
	return nil
}

func TestValidateRequestSuccess(t *testing.T) {
	called := false
	handler := ValidateRequest[*models.UpdateStatusRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		req := GetValidatedRequest[*models.UpdateStatusRequest](r)
		if req.Status != models.StatusInProgress {
			t.Fatalf("expected normalised status in-progress, got %s", req.Status)
		}
	}))

	req := httptest.NewRequest(http.MethodPut, "/test", bytes.NewBufferString(`{"status":" In-Progress "}`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestValidateRequestInvalidJSON(t *testing.T) {
	handler := ValidateRequest[*mockRequest]()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{`))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid json, got %d", rec.Code)
	}
}

func TestValidateRequestTooLarge(t *testing.T) {
	handler := ValidateRequest[*mockRequest]()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	body := `{"value":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestValidateRequestValidationErrors(t *testing.T) {
	t.Run("error response keeps code and details", func(t *testing.T) {
		handler := ValidateRequest[*models.SubmitProblemRequest]()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"studentName":"Ana"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for validation error, got %d", rec.Code)
		}
		var resp models.ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Code != "missing_fields" || len(resp.Details) != 2 {
			t.Fatalf("unexpected error body: %+v", resp)
		}
	})

	t.Run("generic error", func(t *testing.T) {
		handler := ValidateRequest[*mockRequest]()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(`{"value":"generic_error"}`))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for validation error, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "validation_error") {
			t.Fatalf("expected validation_error code, got %s", rec.Body.String())
		}
	})
}
