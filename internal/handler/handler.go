// Package handler holds the echo HTTP handlers. Handlers bind and validate
// requests, call a service and translate domain errors into HTTP errors.
package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"tailorshop/internal/auth"
	"tailorshop/internal/errors"
	"tailorshop/internal/logger"
	"tailorshop/internal/service"
)

// ContextKeyToken is where the jwt middleware stores the parsed token.
const ContextKeyToken = "user"

// maxImageSize caps a single uploaded image.
const maxImageSize = 8 << 20

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Claims returns the verified token claims of the request, or nil for an
// anonymous caller.
func Claims(c echo.Context) *auth.Claims {
	token, ok := c.Get(ContextKeyToken).(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func actor(c echo.Context) (service.Actor, error) {
	claims := Claims(c)
	if claims == nil || claims.UserID == "" {
		return service.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHORIZED",
		})
	}
	return service.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// fail converts a service error into an echo HTTP error.
func fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.WithCtx(c.Request().Context()).Error("request failed", "path", c.Path(), "error", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  "BAD_REQUEST",
	})
}

// bindValid binds the body into req and runs struct validation.
func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

// upload is an image file taken from a multipart form.
type upload struct {
	Filename    string
	ContentType string
	file        multipart.File
}

func (u *upload) Reader() io.Reader { return u.file }

func (u *upload) Close() error { return u.file.Close() }

// formImage opens the image part named field. The caller closes it.
func formImage(c echo.Context, field string) (*upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, badRequest("missing file field \"" + field + "\"")
	}
	if fh.Size > maxImageSize {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, errors.ErrorResponse{
			Error: "image exceeds 8MB",
			Code:  "FILE_TOO_LARGE",
		})
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, badRequest("only image uploads are accepted")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, badRequest("unreadable file")
	}
	return &upload{Filename: fh.Filename, ContentType: contentType, file: f}, nil
}
