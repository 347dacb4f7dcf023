package echoapi

import (
	"context"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/attendance"
	"github.com/acuhub/portal/core/campus"
	"github.com/acuhub/portal/core/healthchat"
	"github.com/acuhub/portal/core/material"
	"github.com/acuhub/portal/core/question"
	"github.com/acuhub/portal/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		UserSvc       *user.Service
		AttendanceSvc *attendance.Service
		MaterialSvc   *material.Service
		CampusSvc     *campus.Service
		HealthChatSvc *healthchat.Service
		QuestionSvc   *question.Service

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		// ShutdownSignal is closed when an unrecoverable error asks for a
		// graceful shutdown.
		ShutdownSignal() <-chan struct{}
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan struct{}
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig(conf))

	registerAuthAPI(v1, jwt, s.opts)
	registerUserAPI(v1, jwt, s.opts)
	registerAttendanceAPI(v1, jwt, s.opts)
	registerMaterialAPI(v1, jwt, s.opts)
	registerCampusAPI(v1, s.opts)
	registerHealthChatAPI(v1, jwt, s.opts)
	registerQuestionAPI(v1, jwt, s.opts)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Server.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) ShutdownSignal() <-chan struct{} {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the ACU Portal API!")
}
