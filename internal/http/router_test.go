package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"hf-council/internal/service"
	"hf-council/internal/service/mocks"
)

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockCouncilService(ctrl)

	router := NewRouter(&Deps{CouncilService: mockService})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		mockSetup  func(*mocks.MockCouncilService)
		wantStatus int
	}{
		{
			name:       "POST /api/ask exists",
			method:     http.MethodPost,
			path:       "/api/ask",
			mockSetup:  func(m *mocks.MockCouncilService) {},
			wantStatus: http.StatusBadRequest, // Bad request due to empty body, but route exists
		},
		{
			name:       "GET /api/ask method not allowed",
			method:     http.MethodGet,
			path:       "/api/ask",
			mockSetup:  func(m *mocks.MockCouncilService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:   "POST /api/council convenes",
			method: http.MethodPost,
			path:   "/api/council",
			body:   `{"prompt":"hi"}`,
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Convene(gomock.Any(), service.ConveneRequest{Prompt: "hi"}, nil).
					Return(service.Session{Kind: "council", Prompt: "hi"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/runs lists",
			method: http.MethodGet,
			path:   "/api/runs",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().History(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/runs/{id} loads",
			method: http.MethodGet,
			path:   "/api/runs/abc",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Run(gomock.Any(), "abc").Return(service.Session{RunID: "abc"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /runs/{id} renders",
			method: http.MethodGet,
			path:   "/runs/abc",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Run(gomock.Any(), "abc").Return(service.Session{RunID: "abc", Prompt: "p"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/health",
			method: http.MethodGet,
			path:   "/api/health",
			mockSetup: func(m *mocks.MockCouncilService) {
				m.EXPECT().Members().Return([]string{"m1"})
				m.EXPECT().History(gomock.Any(), 1).Return(nil, service.ErrHistoryDisabled)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/chat",
			mockSetup:  func(m *mocks.MockCouncilService) {},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := mocks.NewMockCouncilService(ctrl)
			tt.mockSetup(mockService)
			router := NewRouter(&Deps{CouncilService: mockService})

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockCouncilService(ctrl)
	router := NewRouter(&Deps{CouncilService: mockService})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
