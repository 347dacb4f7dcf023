package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/acuhub/portal/apps/api/echo"
	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/attendance"
	"github.com/acuhub/portal/core/biometric"
	"github.com/acuhub/portal/core/campus"
	"github.com/acuhub/portal/core/healthchat"
	"github.com/acuhub/portal/core/material"
	"github.com/acuhub/portal/core/question"
	"github.com/acuhub/portal/core/user"
	emailsvc "github.com/acuhub/portal/services/email"
	logsvc "github.com/acuhub/portal/services/logger"
	"github.com/acuhub/portal/storage/database"
	"github.com/acuhub/portal/storage/database/sqlxrepos"
	"github.com/acuhub/portal/storage/files"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up file store
	fileStore, err := files.NewDiskStore(conf.Upload.Dir)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up file store: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc, conf)
	attSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db), biometric.NewSimulatedVerifier())
	matSvc := material.NewService(sqlxrepos.NewMaterialRepository(db), fileStore, conf)
	campusSvc := campus.NewService(sqlxrepos.NewCampusRepository(db))
	chatSvc := healthchat.NewService(sqlxrepos.NewHealthChatRepository(db))
	qstSvc := question.NewService(sqlxrepos.NewQuestionRepository(db), question.NewTemplateGenerator())

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Conf:          conf,
		Logger:        logger,
		UserSvc:       usrSvc,
		AttendanceSvc: attSvc,
		MaterialSvc:   matSvc,
		CampusSvc:     campusSvc,
		HealthChatSvc: chatSvc,
		QuestionSvc:   qstSvc,
		Validate:      validate,
		Translator:    translator,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case <-server.ShutdownSignal():
		logger.Info("shutdown requested: Start shutdown...")
		stopServer(server, conf, logger)

	case sig := <-quit:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
		stopServer(server, conf, logger)
	}
}

func stopServer(server echoapi.Server, conf *core.Config, logger core.Logger) {
	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
