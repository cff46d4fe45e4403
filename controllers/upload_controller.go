package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yash9424/first-night-api/services"
	"github.com/yash9424/first-night-api/utils"
)

// UploadProductImage handles POST /api/uploads/product-image (admin
// only) - stores an image in S3 and returns the object key plus a
// presigned URL for immediate preview.
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "An image file is required")
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return
	}

	s3 := services.GetS3Service()
	if s3 == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
		return
	}

	key, err := s3.UploadFile(fileHeader)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("image upload failed")
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store image")
		return
	}

	url, err := s3.GetPresignedURL(key)
	if err != nil {
		url = ""
	}

	respondData(c, http.StatusCreated, gin.H{
		"key": key,
		"url": url,
	})
}

// DeleteProductImage handles DELETE /api/uploads/product-image/*key
// (admin only)
func DeleteProductImage(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Object key is required")
		return
	}

	s3 := services.GetS3Service()
	if s3 == nil {
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
		return
	}

	if err := s3.DeleteFile(key); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete image")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Image deleted"})
}
