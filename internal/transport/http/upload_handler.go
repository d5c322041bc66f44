package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/media"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type UploadHandler struct {
	uploads *service.UploadService
}

func RegisterUploads(e *echo.Echo, jwt *util.JWTManager, uploads *service.UploadService) {
	handler := &UploadHandler{uploads: uploads}

	admin := e.Group("/api/v1/uploads", RequireAuth(jwt), RequireAdmin())
	admin.POST("/images", handler.uploadImage)
}

// uploadImage handles POST /api/v1/uploads/images
func (h *UploadHandler) uploadImage(c echo.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("image file required"))
	}
	file, err := header.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("unable to read image"))
	}
	defer file.Close()

	url, err := h.uploads.UploadImage(c.Request().Context(), media.Upload{
		Reader:      file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("url", url))
}
