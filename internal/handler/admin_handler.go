package handler

import (
	"errors"
	"net/http"
	"strings"

	"choosecare-bff/internal/forms"
	"choosecare-bff/internal/middleware"
	"choosecare-bff/internal/service"
	"choosecare-bff/internal/upstream"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AdminHandler serves the hospital, department and doctor management
// screens and staff signup. Every response carries the screen state.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// bindForm reads a form either from a JSON body or from a multipart body
// with a "data" JSON part and an optional "image" file. The returned
// cleanup must run once the upstream call is done.
func bindForm(c *gin.Context, dst any) (*upstream.Image, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, noop, c.ShouldBindJSON(dst)
	}

	if data := c.PostForm("data"); data != "" {
		if err := binding.JSON.BindBody([]byte(data), dst); err != nil {
			return nil, noop, err
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	img := &upstream.Image{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        f,
	}
	return img, func() { _ = f.Close() }, nil
}

func badBody(c *gin.Context) {
	utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
}

// GetScreen returns the current state of a screen
func (h *AdminHandler) GetScreen(c *gin.Context) {
	st, err := h.admin.Screen(middleware.DeviceID(c), c.Param("screen"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, st)
}

// OpenForm shows the add/edit modal
func (h *AdminHandler) OpenForm(c *gin.Context) {
	st, err := h.admin.OpenForm(middleware.DeviceID(c), c.Param("screen"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, st)
}

// CloseForm dismisses the modal
func (h *AdminHandler) CloseForm(c *gin.Context) {
	st, err := h.admin.CloseForm(middleware.DeviceID(c), c.Param("screen"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	utils.SuccessResponse(c, st)
}

// ---- hospitals ----

func (h *AdminHandler) GetHospitals(c *gin.Context) {
	st, err := h.admin.LoadHospitals(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) CreateHospital(c *gin.Context) {
	var form forms.HospitalForm
	img, done, err := bindForm(c, &form)
	if err != nil {
		badBody(c)
		return
	}
	defer done()

	st, err := h.admin.AddHospital(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), form, img)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) UpdateHospital(c *gin.Context) {
	var form forms.HospitalForm
	img, done, err := bindForm(c, &form)
	if err != nil {
		badBody(c)
		return
	}
	defer done()

	st, err := h.admin.UpdateHospital(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"), form, img)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) DeleteHospital(c *gin.Context) {
	st, err := h.admin.DeleteHospital(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

// ---- departments ----

func (h *AdminHandler) GetDepartments(c *gin.Context) {
	st, err := h.admin.LoadDepartments(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	var form forms.DepartmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badBody(c)
		return
	}

	st, err := h.admin.AddDepartment(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), form)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) UpdateDepartment(c *gin.Context) {
	var form forms.DepartmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badBody(c)
		return
	}

	st, err := h.admin.UpdateDepartment(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"), form)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) DeleteDepartment(c *gin.Context) {
	st, err := h.admin.DeleteDepartment(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

// ---- doctors ----

func (h *AdminHandler) GetDoctors(c *gin.Context) {
	st, err := h.admin.LoadDoctors(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var form forms.DoctorForm
	img, done, err := bindForm(c, &form)
	if err != nil {
		badBody(c)
		return
	}
	defer done()

	st, err := h.admin.AddDoctor(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), form, img)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	var form forms.DoctorForm
	img, done, err := bindForm(c, &form)
	if err != nil {
		badBody(c)
		return
	}
	defer done()

	st, err := h.admin.UpdateDoctor(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"), form, img)
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	st, err := h.admin.DeleteDoctor(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), c.Param("id"))
	if err != nil {
		respondError(c, err, st)
		return
	}
	utils.SuccessResponse(c, st)
}

// SignupStaff registers a receptionist or hospital admin
func (h *AdminHandler) SignupStaff(c *gin.Context) {
	var form forms.StaffSignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badBody(c)
		return
	}

	staff, err := h.admin.SignupStaff(c.Request.Context(), middleware.DeviceID(c), c.GetString("token"), form)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    staff,
	})
}
