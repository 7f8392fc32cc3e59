package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fintrack-ledger/internal/api/middleware"
	"github.com/fintrack-ledger/internal/api/service"
	"github.com/fintrack-ledger/internal/domain/wallet"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUserID = int64(7)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Create(ctx context.Context, userID int64, name, icon string, walletType wallet.Type, initialBalance int64, isDefault bool) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, name, icon, walletType, initialBalance, isDefault)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) Get(ctx context.Context, userID, id int64) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) List(ctx context.Context, userID int64) (*service.WalletList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WalletList), args.Error(1)
}

func (m *MockWalletService) Update(ctx context.Context, userID, id int64, name, icon string, walletType wallet.Type, isDefault bool) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, id, name, icon, walletType, isDefault)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) OverrideBalance(ctx context.Context, userID, id int64, balance int64) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, id, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// setupTestRouter pins the authenticated user the way the identity
// middleware would after validating the header
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, testUserID)
		c.Next()
	})
	return r
}

func TestWalletHandler_Create(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		now := time.Now()
		expected := &wallet.Wallet{
			ID:        1,
			UserID:    testUserID,
			Name:      "Checking",
			Icon:      "🏦",
			Type:      wallet.TypeBank,
			Balance:   100000,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		mockService.On("Create", mock.Anything, testUserID, "Checking", "🏦", wallet.TypeBank, int64(100000), true).Return(expected, nil)

		router := setupTestRouter()
		router.POST("/wallets", handler.Create)

		reqBody := CreateWalletRequest{
			Name:           "Checking",
			Icon:           "🏦",
			Type:           "bank",
			InitialBalance: 100000,
			IsDefault:      true,
		}
		jsonBody, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/wallets", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var response Response
		err := json.Unmarshal(rr.Body.Bytes(), &response)
		assert.NoError(t, err)
		require.NotNil(t, response.Data)

		var body wallet.Wallet
		dataBytes, marshalErr := json.Marshal(response.Data)
		require.NoError(t, marshalErr)
		require.NoError(t, json.Unmarshal(dataBytes, &body))

		assert.Equal(t, expected.ID, body.ID)
		assert.Equal(t, expected.Name, body.Name)
		assert.Equal(t, expected.Balance, body.Balance)
		assert.True(t, body.IsDefault)

		mockService.AssertExpectations(t)
	})

	t.Run("InvalidRequestBody", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/wallets", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/wallets", bytes.NewBufferString(`{"invalid`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownWalletType", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		router := setupTestRouter()
		router.POST("/wallets", handler.Create)

		// binding rejects the type before the service is reached
		req, _ := http.NewRequest(http.MethodPost, "/wallets", bytes.NewBufferString(`{"name":"Stash","type":"crypto"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		mockService.On("Create", mock.Anything, testUserID, "Checking", "", wallet.TypeBank, int64(0), false).
			Return(nil, errors.New("database down"))

		router := setupTestRouter()
		router.POST("/wallets", handler.Create)

		req, _ := http.NewRequest(http.MethodPost, "/wallets", bytes.NewBufferString(`{"name":"Checking","type":"bank"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestWalletHandler_GetByID(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		expected := &wallet.Wallet{ID: 1, UserID: testUserID, Name: "Checking", Type: wallet.TypeBank, Balance: 100000}
		mockService.On("Get", mock.Anything, testUserID, int64(1)).Return(expected, nil)

		router := setupTestRouter()
		router.GET("/wallets/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/wallets/1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		router := setupTestRouter()
		router.GET("/wallets/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/wallets/not-a-number", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		mockService.On("Get", mock.Anything, testUserID, int64(9)).Return(nil, wallet.ErrWalletNotFound{ID: 9})

		router := setupTestRouter()
		router.GET("/wallets/:id", handler.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/wallets/9", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestWalletHandler_Delete(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		mockService.On("Delete", mock.Anything, testUserID, int64(1)).Return(nil)

		router := setupTestRouter()
		router.DELETE("/wallets/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/wallets/1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("StillHasTransactions", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		mockService.On("Delete", mock.Anything, testUserID, int64(1)).
			Return(wallet.ErrWalletHasTransactions{ID: 1, Count: 12})

		router := setupTestRouter()
		router.DELETE("/wallets/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/wallets/1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)

		var response Response
		err := json.Unmarshal(rr.Body.Bytes(), &response)
		assert.NoError(t, err)
		require.NotNil(t, response.Error)
		assert.Equal(t, "CONFLICT", response.Error.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockWalletService)
		handler := NewWalletHandler(logger, mockService)

		mockService.On("Delete", mock.Anything, testUserID, int64(9)).Return(wallet.ErrWalletNotFound{ID: 9})

		router := setupTestRouter()
		router.DELETE("/wallets/:id", handler.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/wallets/9", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}

var _ service.WalletService = (*MockWalletService)(nil)
