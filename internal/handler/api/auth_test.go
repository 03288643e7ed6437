//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"metromobiles/internal/domain/user"
	"metromobiles/internal/handler/api"
	resdto "metromobiles/internal/handler/dto/response"
	"metromobiles/internal/usecase/commands"
	"metromobiles/internal/usecase/queries"
	"metromobiles/tests/common/httptest"
	commandsmock "metromobiles/tests/mock/commands"
	queriesmock "metromobiles/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/google", s.handler.GoogleSignIn)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/profile", func(c *gin.Context) {
		// 認証ミドルウェアの代わり
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		s.handler.Profile(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) view() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       s.userID,
		Name:     "Asha",
		Email:    "asha@example.com",
		Role:     "customer",
		IsActive: true,
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	body := map[string]string{"email": "asha@example.com", "password": "secret1"}
	credentials, err := user.NewCredentials("asha@example.com", "secret1")
	s.Require().NoError(err)

	s.Run("success: returns 200 with token and user", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(&commands.AuthResult{User: s.view(), Token: "jwt-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("jwt-token", response.Token)
		s.Equal("asha@example.com", response.User.Email)
	})

	s.Run("error: 401 for wrong password", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 400 for missing email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"password": "secret1"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 403 for inactive account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), credentials).
			Return(nil, commands.ErrUserInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})
}

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	body := map[string]string{"name": "Asha", "email": "asha@example.com", "password": "secret1"}
	credentials, err := user.NewCredentials("asha@example.com", "secret1")
	s.Require().NoError(err)

	s.Run("success: returns 201 with a live session", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "Asha", credentials).
			Return(&commands.AuthResult{User: s.view(), Token: "jwt-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("jwt-token", response.Token)
	})

	s.Run("error: 409 for taken email", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "Asha", credentials).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})

	s.Run("error: 400 for invalid email", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"name": "Asha", "email": "not-an-email", "password": "secret1"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *AuthHandlerTestSuite) TestGoogleSignIn() {
	url := "/auth/google"
	body := map[string]string{
		"email":     "asha@example.com",
		"name":      "Asha",
		"google_id": "g-123",
	}
	profile := commands.GoogleProfile{Email: "asha@example.com", Name: "Asha", GoogleID: "g-123"}

	s.Run("success: returns 200 with a session", func() {
		s.mockCommands.EXPECT().GoogleSignIn(gomock.Any(), profile).
			Return(&commands.AuthResult{User: s.view(), Token: "jwt-token"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.AuthResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("jwt-token", response.Token)
	})

	s.Run("error: 400 for missing google_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"email": "asha@example.com", "name": "Asha"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *AuthHandlerTestSuite) TestProfile() {
	url := "/auth/profile"

	s.Run("success: returns the authenticated profile", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(s.view(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "some-token")

		var response queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Asha", response.Name)
	})

	s.Run("error: 401 without auth context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 when the user vanished", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "some-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
	s.Equal(http.StatusNoContent, rec.Code)
}
