// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/taller01/accountms/internal/accountdelivery"
	"github.com/taller01/accountms/internal/accountrepo"
	"github.com/taller01/accountms/internal/accountservice"
	"github.com/taller01/accountms/internal/clientverifier"
	"github.com/taller01/accountms/internal/middleware"
	"github.com/taller01/accountms/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	verifier := clientverifier.NewHTTP(
		config.ClientServiceBaseURL,
		config.ClientConnectTimeout,
		config.ClientRequestTimeout,
	)
	accountService := accountservice.New(accountRepo, verifier)
	accountHandler := accountdelivery.NewHandler(accountService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts/number/:number", accountHandler.GetByNumber)
	engine.GET("/accounts/owner/:ownerID", accountHandler.ListByOwner)
	engine.PUT("/accounts/:id", accountHandler.Update)
	engine.PATCH("/accounts/:id", accountHandler.UpdatePartial)
	engine.PUT("/accounts/:id/deposit", accountHandler.Deposit)
	engine.PUT("/accounts/:id/withdraw", accountHandler.Withdraw)
	engine.DELETE("/accounts/:id", accountHandler.Delete)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accountcategory", accountdelivery.ValidCategory); err != nil {
			return nil, errors.New("cannot register account category validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
