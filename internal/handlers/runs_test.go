package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"hf-council/internal/service"
	"hf-council/internal/service/mocks"
)

func newRunsRouter(h *RunsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/runs", h.List)
	r.Get("/api/runs/{id}", h.Get)
	r.Get("/runs/{id}", h.Page)
	return r
}

func storedRun() service.Session {
	return service.Session{
		RunID:     "run-1",
		Kind:      "council",
		Prompt:    "Explain entropy",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Verdicts: []service.Verdict{
			{Model: "m1", Role: "assistant", Answer: "**Entropy** is mess <script>alert(1)</script>"},
			{Model: "m2", Failure: "bad status 500: oops"},
		},
	}
}

func TestRunsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		query      string
		mockSetup  func(*mocks.MockCouncilService)
		wantStatus int
		wantRuns   int
	}{
		{
			name: "default limit",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().History(gomock.Any(), defaultRunsLimit).Return([]service.Session{
					{RunID: "a", Kind: "ask", Prompt: "p1"},
					{RunID: "b", Kind: "council", Prompt: "p2"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantRuns:   2,
		},
		{
			name:  "explicit limit",
			query: "?limit=5",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().History(gomock.Any(), 5).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantRuns:   0,
		},
		{
			name:       "invalid limit",
			query:      "?limit=-1",
			mockSetup:  func(m *mocks.MockCouncilService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "history disabled",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().History(gomock.Any(), gomock.Any()).Return(nil, service.ErrHistoryDisabled)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockCouncilService(ctrl)
			tt.mockSetup(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/runs"+tt.query, nil)
			w := httptest.NewRecorder()
			newRunsRouter(NewRunsHandler(mockService)).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("List() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp RunsResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(resp.Runs) != tt.wantRuns {
				t.Errorf("List() returned %d runs, want %d", len(resp.Runs), tt.wantRuns)
			}
		})
	}
}

func TestRunsHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockCouncilService)
		wantStatus int
	}{
		{
			name: "found",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Run(gomock.Any(), "run-1").Return(storedRun(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Run(gomock.Any(), "run-1").Return(service.Session{}, service.WrapError(service.ErrNotFound, "run run-1"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Run(gomock.Any(), "run-1").Return(service.Session{}, errors.New("disk on fire"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockCouncilService(ctrl)
			tt.mockSetup(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1", nil)
			w := httptest.NewRecorder()
			newRunsRouter(NewRunsHandler(mockService)).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRunsHandler_Page(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockCouncilService(ctrl)
	mockService.EXPECT().Run(gomock.Any(), "run-1").Return(storedRun(), nil)

	req := httptest.NewRequest(http.MethodGet, "/runs/run-1", nil)
	w := httptest.NewRecorder()
	newRunsRouter(NewRunsHandler(mockService)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Page() status = %v, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"<strong>Entropy</strong>", "Explain entropy", "m1", "m2", "bad status 500: oops"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("page should not pass raw HTML from answers through")
	}
}

func TestRunsHandler_Page_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockCouncilService(ctrl)
	mockService.EXPECT().Run(gomock.Any(), "missing").Return(service.Session{}, service.WrapError(service.ErrNotFound, "run missing"))

	req := httptest.NewRequest(http.MethodGet, "/runs/missing", nil)
	w := httptest.NewRecorder()
	newRunsRouter(NewRunsHandler(mockService)).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Page() status = %v, want 404", w.Code)
	}
}
