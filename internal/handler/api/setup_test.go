//go:build unit

package api_test

import (
	"testing"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/handler"
	"library-circulation/internal/handler/api"
	"library-circulation/internal/handler/middleware"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/usecase"
	"library-circulation/tests/common/authtest"
	commandsmock "library-circulation/tests/mock/commands"
	queriesmock "library-circulation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// handlerSuite serves requests through the real router and auth middleware with
// mocked usecases behind the handlers.
type handlerSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	cfg      config.Config
	jwt      *authtest.JWTHelper

	authCommands        *commandsmock.MockAuthCommands
	catalogCommands     *commandsmock.MockCatalogCommands
	circulationCommands *commandsmock.MockCirculationCommands
	userQueries         *queriesmock.MockUserQueries
	bookQueries         *queriesmock.MockBookQueries
	checkoutQueries     *queriesmock.MockCheckoutQueries
	changeQueries       *queriesmock.MockChangeQueries
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = config.NewTestConfig()
	s.jwt = authtest.NewJWTHelper(s.cfg.JWT)

	s.mockCtrl = gomock.NewController(s.T())
	s.authCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.catalogCommands = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	s.circulationCommands = commandsmock.NewMockCirculationCommands(s.mockCtrl)
	s.userQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.bookQueries = queriesmock.NewMockBookQueries(s.mockCtrl)
	s.checkoutQueries = queriesmock.NewMockCheckoutQueries(s.mockCtrl)
	s.changeQueries = queriesmock.NewMockChangeQueries(s.mockCtrl)

	handlers := handler.NewHandlers(
		api.NewAuthHandler(s.authCommands, s.userQueries, s.cfg),
		api.NewBookHandler(s.catalogCommands, s.bookQueries),
		api.NewCheckoutHandler(s.circulationCommands, s.checkoutQueries),
		api.NewChangesHandler(s.changeQueries, s.cfg),
	)
	authMiddleware := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwt.Service(s.T())))

	s.router = gin.New()
	err := handler.NewRouter(s.router, s.cfg, middleware.NewLogger(s.cfg.Log), handlers, authMiddleware)
	s.Require().NoError(err)
}

func (s *handlerSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// login returns an identity for role together with a bearer token for it.
func (s *handlerSuite) login(role user.Role) (user.Identity, string) {
	identity := user.Identity{SubjectID: uuid.NewString(), Role: role}
	return identity, s.jwt.TokenFor(s.T(), identity)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}
