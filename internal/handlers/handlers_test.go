package handlers

import (
	"context"
	"errors"
	"text/template"

	"solverpro/internal/analysis"
	"solverpro/internal/models"
	"solverpro/internal/submission"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockProviderInfo struct {
	name string
}

func (m *mockProviderInfo) ProviderName() string { return m.name }

type mockPromptManager struct {
	buildPromptFn  func(mode, variant string, data interface{}) (string, error)
	getTemplatesFn func() map[string]map[string]*template.Template
}

func (m *mockPromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	if m.buildPromptFn == nil {
		return "mock prompt", nil
	}
	return m.buildPromptFn(mode, variant, data)
}

func (m *mockPromptManager) GetTemplates() map[string]map[string]*template.Template {
	if m.getTemplatesFn == nil {
		return map[string]map[string]*template.Template{
			"analyze": {
				"default": template.Must(template.New("test").Parse("test")),
			},
		}
	}
	return m.getTemplatesFn()
}

type mockSessions struct {
	flags    map[string]bool
	storeErr error
}

func newMockSessions() *mockSessions {
	return &mockSessions{flags: map[string]bool{}}
}

func (m *mockSessions) Authenticate(_ context.Context, sessionID, username, password string) (bool, error) {
	if username != "admin" || password != "admin123" {
		return false, nil
	}
	if m.storeErr != nil {
		return false, m.storeErr
	}
	m.flags[sessionID] = true
	return true, nil
}

func (m *mockSessions) IsAuthenticated(_ context.Context, sessionID string) bool {
	return m.flags[sessionID]
}

func (m *mockSessions) Logout(_ context.Context, sessionID string) error {
	delete(m.flags, sessionID)
	return nil
}

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, requestID, draftID, image string) (*analysis.Result, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, requestID, draftID, image string) (*analysis.Result, error) {
	return m.analyzeFn(ctx, requestID, draftID, image)
}

type mockSubmitter struct {
	submitFn func(ctx context.Context, in submission.Input) (*models.ProblemRecord, error)
}

func (m *mockSubmitter) Submit(ctx context.Context, in submission.Input) (*models.ProblemRecord, error) {
	return m.submitFn(ctx, in)
}

// mockDashboard keeps records in a map and records every call.
type mockDashboard struct {
	records map[string]models.ProblemRecord
	err     error
	calls   []string
}

func (m *mockDashboard) View(statusFilter, searchText string) models.DashboardResponse {
	m.calls = append(m.calls, "view:"+statusFilter+":"+searchText)
	var problems []models.ProblemRecord
	for _, r := range m.records {
		problems = append(problems, r)
	}
	return models.DashboardResponse{Problems: problems}
}

func (m *mockDashboard) Stats() models.DashboardStats {
	return models.DashboardStats{Pending: len(m.records)}
}

func (m *mockDashboard) SetStatus(_ context.Context, id string, status models.ProblemStatus) (bool, error) {
	m.calls = append(m.calls, "status:"+id+":"+string(status))
	return m.mutate(id, func(r *models.ProblemRecord) { r.Status = status })
}

func (m *mockDashboard) TogglePaid(_ context.Context, id string) (bool, error) {
	m.calls = append(m.calls, "paid:"+id)
	return m.mutate(id, func(r *models.ProblemRecord) { r.Paid = !r.Paid })
}

func (m *mockDashboard) Remove(_ context.Context, id string) (bool, error) {
	m.calls = append(m.calls, "delete:"+id)
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.records[id]
	delete(m.records, id)
	return ok, nil
}

func (m *mockDashboard) Contact(id string) (string, bool) {
	r, ok := m.records[id]
	if !ok {
		return "", false
	}
	return "https://wa.me/" + r.Phone, true
}

func (m *mockDashboard) mutate(id string, fn func(*models.ProblemRecord)) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	r, ok := m.records[id]
	if !ok {
		return false, nil
	}
	fn(&r)
	m.records[id] = r
	return true, nil
}

var errStorage = errors.New("storage down")
