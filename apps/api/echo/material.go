package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/material"
	"github.com/acuhub/portal/core/user"
)

type materialApi struct {
	opts *Options
}

func registerMaterialAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := materialApi{opts: opts}

	mg := g.Group("/materials", jwt)
	mg.POST("", api.upload, staffMiddleware())
	mg.GET("", api.query)

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/download", api.download)
	dg.DELETE("", api.destroy)
}

func (api *materialApi) upload(ctx echo.Context) error {
	var data material.Upload
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Upload")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer file.Close()

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	mat, err := api.opts.MaterialSvc.Upload(
		ctx.Request().Context(),
		claims.Subject,
		data,
		fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, mat)
}

func (api *materialApi) query(ctx echo.Context) error {
	filter := new(material.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []material.Material{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	// students only see public materials
	if claims, err := getContextClaims(ctx); err == nil && claims.Role == user.RoleStudent {
		filter.PublicOnly = true
	}

	materials, err := api.opts.MaterialSvc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying materials")
	}
	if materials == nil {
		materials = []material.Material{}
	}
	return ctx.JSON(http.StatusOK, materials)
}

func (api *materialApi) retrieve(ctx echo.Context) error {
	mat, err := api.opts.MaterialSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mat)
}

// download streams the stored file and bumps the download counter.
func (api *materialApi) download(ctx echo.Context) error {
	mat, content, err := api.opts.MaterialSvc.Download(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	defer content.Close()

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", mat.OriginalFileName))
	return ctx.Stream(http.StatusOK, mat.ContentType, content)
}

// destroy removes a material; only its uploader or an admin may do so.
func (api *materialApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	mat, err := api.opts.MaterialSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if mat.UploadedBy != claims.Subject && claims.Role != user.RoleAdmin {
		return errHttpForbidden
	}

	if err := api.opts.MaterialSvc.Delete(ctx.Request().Context(), mat.ID); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
