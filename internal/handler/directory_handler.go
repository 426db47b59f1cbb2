package handler

import (
	"choosecare-bff/internal/service"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the patient browsing screens.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// GetHospitals lists hospitals, filtered by ?search=
func (h *DirectoryHandler) GetHospitals(c *gin.Context) {
	hospitals, err := h.directory.Hospitals(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err, hospitals)
		return
	}
	utils.SuccessResponse(c, hospitals)
}

// GetHospital returns one hospital's details screen
func (h *DirectoryHandler) GetHospital(c *gin.Context) {
	hospital, err := h.directory.Hospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, hospital)
}

func (h *DirectoryHandler) GetDepartments(c *gin.Context) {
	departments, err := h.directory.Departments(c.Request.Context(), c.Param("id"), c.Query("search"))
	if err != nil {
		respondError(c, err, departments)
		return
	}
	utils.SuccessResponse(c, departments)
}

func (h *DirectoryHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.directory.Doctors(c.Request.Context(), c.Param("id"), c.Query("search"))
	if err != nil {
		respondError(c, err, doctors)
		return
	}
	utils.SuccessResponse(c, doctors)
}
