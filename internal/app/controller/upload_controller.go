package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
	"github.com/groceteria/groceteria-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(storage *storage.S3Storage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type ItemImageUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// PresignItemImage issues a presigned PUT URL for an item image upload
// POST /api/v1/upload/item-image
func (ctrl *UploadController) PresignItemImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ItemImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedImageTypes); err != nil {
		log.Warn("Rejected item image content type", map[string]interface{}{
			"content_type": req.ContentType,
		})
		apierrors.BadRequest(c, "Only image files are allowed (JPEG, PNG, GIF, WEBP)")
		return
	}

	response, err := ctrl.storage.PresignItemImageUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
		})
		apierrors.InternalError(c, "")
		return
	}

	log.Info("Presigned item image URL generated", map[string]interface{}{
		"filename": req.Filename,
		"key":      response.Key,
	})

	c.JSON(http.StatusOK, response)
}
