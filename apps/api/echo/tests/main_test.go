package tests

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

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
	"github.com/acuhub/portal/storage/database/inmem"
	"github.com/acuhub/portal/storage/files"
	testutil "github.com/acuhub/portal/tests"
)

type testApp struct {
	server echoapi.Server
	conf   *core.Config

	usrRepo  *inmem.UserRepository
	attRepo  *inmem.AttendanceRepository
	matRepo  *inmem.MaterialRepository
	chatRepo *inmem.HealthChatRepository
	qstRepo  *inmem.QuestionRepository
}

var campusFixtures = []campus.Location{
	{
		ID: 1, Name: "Main Library", Type: "academic",
		Coordinates: campus.Coordinates{Lat: 7.3780, Lng: 3.9465},
		Facilities:  []string{"wifi", "study_rooms"},
	},
	{
		ID: 2, Name: "Health Center", Type: "health",
		Coordinates:  campus.Coordinates{Lat: 7.3765, Lng: 3.9455},
		OpeningHours: map[string]string{"weekdays": "08:00-17:00"},
	},
	{
		ID: 3, Name: "Sports Complex", Type: "recreation",
		Coordinates: campus.Coordinates{Lat: 7.3760, Lng: 3.9470},
	},
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	conf.Upload.Dir = t.TempDir()

	app := &testApp{
		conf:     conf,
		usrRepo:  inmem.NewUserRepository(),
		attRepo:  inmem.NewAttendanceRepository(),
		matRepo:  inmem.NewMaterialRepository(),
		chatRepo: inmem.NewHealthChatRepository(),
		qstRepo:  inmem.NewQuestionRepository(),
	}

	store, err := files.NewDiskStore(conf.Upload.Dir)
	if err != nil {
		t.Fatalf("NewDiskStore(): %v", err)
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewService(app.usrRepo, mailSvc, conf)
	attSvc := attendance.NewService(app.attRepo, biometric.NewSimulatedVerifier())
	matSvc := material.NewService(app.matRepo, store, conf)
	campusSvc := campus.NewService(inmem.NewCampusRepository(campusFixtures...))
	chatSvc := healthchat.NewService(app.chatRepo)
	qstSvc := question.NewService(app.qstRepo, question.NewTemplateGeneratorWithSource(newSeededSource()))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	app.server = echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         nopLogger{},
		DisableReqLogs: true,
		UserSvc:        usrSvc,
		AttendanceSvc:  attSvc,
		MaterialSvc:    matSvc,
		CampusSvc:      campusSvc,
		HealthChatSvc:  chatSvc,
		QuestionSvc:    qstSvc,
		Validate:       validate,
		Translator:     translator,
	})
	return app
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
