package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/healthchat"
	"github.com/acuhub/portal/core/user"
)

type healthChatApi struct {
	opts *Options
}

func registerHealthChatAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := healthChatApi{opts: opts}

	hg := g.Group("/health-chats", jwt)
	hg.POST("", api.create, roleMiddleware(user.RoleStudent))
	hg.GET("", api.query)

	dg := hg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.POST("/messages", api.send)
}

func (api *healthChatApi) create(ctx echo.Context) error {
	var data healthchat.NewChat
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChat")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	chat, err := api.opts.HealthChatSvc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating chat")
	}
	return ctx.JSON(http.StatusCreated, chat)
}

func (api *healthChatApi) query(ctx echo.Context) error {
	filter := new(healthchat.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []healthchat.Chat{})
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	chats, err := api.opts.HealthChatSvc.Query(ctx.Request().Context(), filter, claims.Subject, claims.Role)
	if err != nil {
		return errors.Wrap(err, "querying chats")
	}
	if chats == nil {
		chats = []healthchat.Chat{}
	}
	return ctx.JSON(http.StatusOK, chats)
}

func (api *healthChatApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	chat, err := api.opts.HealthChatSvc.Get(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.Role)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, chat)
}

func (api *healthChatApi) send(ctx echo.Context) error {
	var data healthchat.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	msg, err := api.opts.HealthChatSvc.Send(ctx.Request().Context(), ctx.Param("id"), claims.Subject, claims.Role, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}
