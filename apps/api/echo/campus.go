package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/campus"
)

type campusApi struct {
	opts *Options
}

// registerCampusAPI exposes the campus catalog without authentication;
// locations are public information.
func registerCampusAPI(g *echo.Group, opts *Options) {
	api := campusApi{opts: opts}

	cg := g.Group("/campus")
	cg.GET("/locations", api.query)
	cg.GET("/map", api.getMap)
}

func (api *campusApi) query(ctx echo.Context) error {
	filter := new(campus.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []campus.Location{})
	}

	locations, err := api.opts.CampusSvc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying campus locations")
	}
	if locations == nil {
		locations = []campus.Location{}
	}
	return ctx.JSON(http.StatusOK, locations)
}

func (api *campusApi) getMap(ctx echo.Context) error {
	m, err := api.opts.CampusSvc.Map(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building campus map")
	}
	return ctx.JSON(http.StatusOK, m)
}
