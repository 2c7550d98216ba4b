// Package controllers binds HTTP requests to the services. Every handler
// reads the acting user set by the auth middleware, binds and validates the
// request, calls one service method and writes the response envelope.
package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/campusbuzz/internal/app/models/dto"
	"github.com/yigit/campusbuzz/internal/middleware"
	"github.com/yigit/campusbuzz/internal/pkg/imagedata"
)

// actorID returns the acting user, aborting with 401 when the route was
// reached without authentication
func actorID(ctx *gin.Context) (string, bool) {
	id, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return id, true
}

// intQuery reads a positive integer query parameter
func intQuery(ctx *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// formFile returns the uploaded file under name, or nil when the request is
// not multipart or carries no such file
func formFile(ctx *gin.Context, name string) (*multipart.FileHeader, error) {
	if ctx.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := ctx.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

// uploadedImage encodes the optional image field into a data URL. ok is false
// when the response was already written.
func uploadedImage(ctx *gin.Context, images imagedata.Encoder, field string) (url string, ok bool) {
	fh, err := formFile(ctx, field)
	if err != nil {
		middleware.HandleBindError(ctx, err)
		return "", false
	}
	if fh == nil {
		return "", true
	}
	url, err = images.EncodeFile(fh)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return "", false
	}
	return url, true
}
