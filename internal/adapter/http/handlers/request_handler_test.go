package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectease/internal/adapter/http/handlers/mocks"
	"projectease/internal/domain/entities"
	"projectease/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// withActor stands in for the auth middleware.
func withActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", actor)
		c.Next()
	}
}

var (
	testUser  = entities.Actor{ID: "user-1", Role: entities.RoleUser}
	testAdmin = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
)

func TestRequestHandler_CreateRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/requests", h.CreateRequest)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{"type":"other","client_type":"guest"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("project not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/requests", withActor(testUser), h.CreateRequest)

		uc.EXPECT().CreateRequest(gomock.Any(), testUser, gomock.Any()).Return(entities.Request{}, usecase.ErrProjectNotFound)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{"type":"existing","project_id":"nope","client_type":"registered"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "PROJECT_NOT_FOUND" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("guest success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.POST("/v1/requests", h.CreateRequest)

		uc.EXPECT().CreateRequest(gomock.Any(), entities.Actor{}, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Actor, in usecase.CreateRequestInput) (entities.Request, error) {
				if in.ClientType != entities.ClientTypeGuest || in.GuestInfo == nil || in.GuestInfo.Email != "mia@example.com" || in.EstimatedPrice != 9000 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Request{ID: "req-1", Status: entities.RequestStatusPending, ClientType: in.ClientType, GuestInfo: in.GuestInfo}, nil
			},
		)

		body := `{"type":"custom","client_type":"guest","guest_info":{"name":"Mia","email":"mia@example.com"},
			"custom_project":{"name":"Chat bot","description":"support","estimated_price":9000}}`
		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "req-1" || resp["status"] != "pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestRequestHandler_Lists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Now().UTC()

	t.Run("own requests", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.GET("/v1/requests/my", withActor(testUser), h.ListOwn)

		uc.EXPECT().ListOwn(gomock.Any(), testUser).Return([]entities.Request{{ID: "b", CreatedAt: now}, {ID: "a", CreatedAt: now.Add(-time.Hour)}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/requests/my", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var items []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &items)
		if len(items) != 2 || items[0]["id"] != "b" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("all requests forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.GET("/v1/requests", withActor(testUser), h.ListAll)

		uc.EXPECT().ListAll(gomock.Any(), testUser).Return(nil, entities.ErrAuthorization)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/requests", nil))

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.GET("/v1/requests", withActor(testAdmin), h.ListAll)

		uc.EXPECT().ListAll(gomock.Any(), testAdmin).Return(nil, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/requests", nil))

		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestRequestHandler_GetRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "found", want: http.StatusOK},
		{name: "not owner", err: entities.ErrAuthorization, want: http.StatusForbidden},
		{name: "missing", err: usecase.ErrRequestNotFound, want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIRequestUseCase(ctrl)
			h := NewRequestHandler(uc, zap.NewNop())

			r := gin.New()
			r.GET("/v1/requests/:id", withActor(testUser), h.GetRequest)

			uc.EXPECT().GetByID(gomock.Any(), testUser, "req-1").Return(entities.Request{ID: "req-1"}, tc.err)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/requests/req-1", nil))
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestRequestHandler_UpdateRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes partial update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.PUT("/v1/requests/:id", withActor(testAdmin), h.UpdateRequest)

		uc.EXPECT().UpdateRequest(gomock.Any(), testAdmin, "req-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ entities.Actor, _ string, u entities.StatusUpdate) (entities.Request, error) {
				if u.Status == nil || *u.Status != entities.RequestStatusApproved || u.ActualPrice == nil || *u.ActualPrice != 15000 || u.AdminNotes != nil {
					t.Fatalf("unexpected update: %+v", u)
				}
				return entities.Request{ID: "req-1", Status: entities.RequestStatusApproved, ActualPrice: 15000}, nil
			},
		)

		req := httptest.NewRequest(http.MethodPut, "/v1/requests/req-1", bytes.NewBufferString(`{"status":"approved","actual_price":15000}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.PUT("/v1/requests/:id", withActor(testAdmin), h.UpdateRequest)

		uc.EXPECT().UpdateRequest(gomock.Any(), testAdmin, "req-1", gomock.Any()).Return(entities.Request{}, entities.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPut, "/v1/requests/req-1", bytes.NewBufferString(`{"status":"completed"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestRequestHandler_UpdatePaymentOption(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown option", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.PUT("/v1/requests/:id/payment-option", withActor(testUser), h.UpdatePaymentOption)

		req := httptest.NewRequest(http.MethodPut, "/v1/requests/req-1/payment-option", bytes.NewBufferString(`{"payment_option":"monthly"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.PUT("/v1/requests/:id/payment-option", withActor(testUser), h.UpdatePaymentOption)

		uc.EXPECT().UpdatePaymentOption(gomock.Any(), testUser, "req-1", entities.PaymentOptionFull).Return(entities.Request{}, entities.ErrInvalidState)

		req := httptest.NewRequest(http.MethodPut, "/v1/requests/req-1/payment-option", bytes.NewBufferString(`{"payment_option":"full"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc, zap.NewNop())

		r := gin.New()
		r.PUT("/v1/requests/:id/payment-option", withActor(testUser), h.UpdatePaymentOption)

		uc.EXPECT().UpdatePaymentOption(gomock.Any(), testUser, "req-1", entities.PaymentOptionFull).
			Return(entities.Request{ID: "req-1", PaymentOption: entities.PaymentOptionFull, TotalAmount: 10000, AdvanceAmount: 10000}, nil)

		req := httptest.NewRequest(http.MethodPut, "/v1/requests/req-1/payment-option", bytes.NewBufferString(`{"payment_option":"full"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_option"] != "full" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
