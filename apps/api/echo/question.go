package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/question"
)

type questionApi struct {
	opts *Options
}

func registerQuestionAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := questionApi{opts: opts}

	qg := g.Group("/questions", jwt)
	qg.POST("/generate", api.generate)
	qg.GET("", api.query)
}

func (api *questionApi) generate(ctx echo.Context) error {
	var data question.GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	questions, err := api.opts.QuestionSvc.Generate(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "generating questions")
	}
	return ctx.JSON(http.StatusCreated, questions)
}

func (api *questionApi) query(ctx echo.Context) error {
	filter := new(question.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []question.Question{})
	}
	filter.Clean()

	questions, err := api.opts.QuestionSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}
