package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"school-erp-service/internal/model"
	"school-erp-service/internal/session"
	"school-erp-service/pkg/logger"
	"school-erp-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetActiveData returns the full record bundle of the active school.
func GetActiveData(c echo.Context) error {
	defer prometheus.TrackStoreOperation("bundle_read")(time.Now())
	return c.JSONBlob(http.StatusOK, scoped.ActiveData())
}

// GetCollection returns one named collection of the active school.
func GetCollection(c echo.Context) error {
	key := model.CollectionKey(c.Param("collection"))
	if !model.ValidCollectionKey(key) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}

	prometheus.RecordCollectionOperation("read", string(key))
	defer prometheus.TrackStoreOperation("collection_read")(time.Now())
	return c.JSONBlob(http.StatusOK, scoped.Data(key))
}

// ReplaceCollection replaces one named collection of the active school
// wholesale with the request body.
func ReplaceCollection(c echo.Context) error {
	log := logger.FromContext(c)

	key := model.CollectionKey(c.Param("collection"))
	if !model.ValidCollectionKey(key) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Error("Failed to read request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	prometheus.RecordCollectionOperation("write", string(key))
	defer prometheus.TrackStoreOperation("collection_write")(time.Now())
	if err := scoped.SetData(key, json.RawMessage(body)); err != nil {
		if errors.Is(err, session.ErrNoActiveSchool) {
			return c.JSON(http.StatusPreconditionFailed, echo.Map{"error": "no active school session"})
		}
		log.Error("Failed to save collection", zap.String("collection", string(key)), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid collection payload"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Saved"})
}

// SaveProfile replaces the active school's profile record.
func SaveProfile(c echo.Context) error {
	log := logger.FromContext(c)

	var profile model.SchoolProfile
	if err := c.Bind(&profile); err != nil {
		log.Error("Failed to parse profile", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	prometheus.RecordCollectionOperation("write", "profile")
	defer prometheus.TrackStoreOperation("profile_write")(time.Now())
	if err := scoped.SaveProfile(profile); err != nil {
		if errors.Is(err, session.ErrNoActiveSchool) {
			return c.JSON(http.StatusPreconditionFailed, echo.Map{"error": "no active school session"})
		}
		log.Error("Failed to save profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile save failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile saved"})
}
