package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"school-erp-service/internal/model"
	"school-erp-service/internal/store"
	"school-erp-service/pkg/logger"
	"school-erp-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type schoolRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	SchoolID string `json:"schoolId"`
	Password string `json:"password,omitempty"`
}

// ListSchools returns every tenant directory entry.
func ListSchools(c echo.Context) error {
	prometheus.RecordSchoolOperation("list")
	defer prometheus.TrackStoreOperation("directory")(time.Now())

	return c.JSON(http.StatusOK, sessions.Directory().Schools())
}

// CreateSchool registers a new school and provisions its empty record bundle.
func CreateSchool(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSchoolOperation("create")

	var req schoolRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse school creation request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.SchoolID == "" || req.Password == "" {
		log.Error("Invalid school data", zap.String("name", req.Name), zap.String("school_id", req.SchoolID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, schoolId and password are required"})
	}

	defer prometheus.TrackStoreOperation("directory")(time.Now())
	school, err := sessions.Directory().CreateSchool(model.School{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		LoginID: req.SchoolID,
	}, req.Password)
	if err != nil {
		log.Error("Failed to create school", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "school creation failed"})
	}

	prometheus.SchoolsGauge.Set(float64(len(sessions.Directory().Schools())))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "School created successfully",
		"school":  school,
	})
}

// UpdateSchool replaces a directory entry's fields and syncs the school's
// profile record.
func UpdateSchool(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSchoolOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid school ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid school ID"})
	}

	var req schoolRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse school update request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackStoreOperation("directory")(time.Now())
	school, err := sessions.Directory().UpdateSchool(model.School{
		ID:      uint(id),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		LoginID: req.SchoolID,
	}, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrSchoolNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "school not found"})
		}
		log.Error("Failed to update school", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "school update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "School updated successfully",
		"school":  school,
	})
}

// DeleteSchool removes a directory entry and its record bundle. Deleting the
// active school ends its session.
func DeleteSchool(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSchoolOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid school ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid school ID"})
	}

	defer prometheus.TrackStoreOperation("directory")(time.Now())
	if err := sessions.Directory().DeleteSchool(uint(id)); err != nil {
		log.Error("Failed to delete school", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "school deletion failed"})
	}

	prometheus.SchoolsGauge.Set(float64(len(sessions.Directory().Schools())))
	log.Info("School deleted", zap.Uint64("id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "School deleted successfully"})
}
