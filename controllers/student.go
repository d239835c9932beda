package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/services"
	"liftakids-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===== STUDENT CONTROLLERS =====

type StudentRequest struct {
	StudentName            string  `json:"student_name" binding:"required"`
	GuardianName           *string `json:"guardian_name"`
	Contact                *string `json:"contact"`
	Address                *string `json:"address"`
	DateOfBirth            *string `json:"date_of_birth"` // YYYY-MM-DD
	Gender                 string  `json:"gender" binding:"required,oneof=male female other"`
	FinancialRank          string  `json:"financial_rank" binding:"required,oneof=POOR ORPHAN URGENT"`
	RequiredMonthlySupport float64 `json:"required_monthly_support" binding:"required,gt=0"`
	Bio                    *string `json:"bio"`
	InstitutionID          int     `json:"institution_id"`
}

type studentListItem struct {
	models.Student
	SponsorStatus *services.SponsorButtonStatus `json:"sponsor_status,omitempty"`
}

// GetStudents lists students with filters and pagination. When the caller is
// a donor, each row carries its sponsor button status, recomputed on every
// request so cooldowns expire without any background work.
func GetStudents(c *gin.Context) {
	query := config.DB.Model(&models.Student{}).
		Preload("Institution").
		Where("students.delete_at IS NULL")

	if institutionID := c.Query("institution_id"); institutionID != "" {
		query = query.Where("students.institution_id = ?", institutionID)
	}
	if rank := c.Query("financial_rank"); rank != "" {
		query = query.Where("students.financial_rank = ?", rank)
	}
	if sponsored := c.Query("sponsored"); sponsored != "" {
		query = query.Where("students.is_sponsored = ?", sponsored == "true")
	}

	// Area filters go through the institution's location.
	areaFilters := map[string]string{
		"division_id": c.Query("division_id"),
		"district_id": c.Query("district_id"),
		"thana_id":    c.Query("thana_id"),
		"union_id":    c.Query("union_id"),
	}
	joinInstitutions := false
	for _, v := range areaFilters {
		if v != "" {
			joinInstitutions = true
		}
	}
	if joinInstitutions {
		query = query.Joins("JOIN institutions ON institutions.institution_id = students.institution_id")
		for column, v := range areaFilters {
			if v != "" {
				query = query.Where("institutions."+column+" = ?", v)
			}
		}
	}

	// Institutions only ever see their own roster.
	if accountType, _ := c.Get("accountType"); accountType == models.AccountTypeInstitution {
		accountID, _ := c.Get("accountID")
		query = query.Where("students.institution_id = ?", accountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	var students []models.Student
	if err := query.Scopes(Paginate(c)).Order("students.student_id DESC").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	accountType, _ := c.Get("accountType")
	if accountType == models.AccountTypeDonor {
		accountID, _ := c.Get("accountID")
		donorID := accountID.(int)
		service := services.DefaultSponsorshipService()

		items := make([]studentListItem, 0, len(students))
		for _, student := range students {
			item := studentListItem{Student: student}
			if status, err := service.StudentSponsorStatus(donorID, student.StudentID); err == nil {
				item.SponsorStatus = status
			}
			items = append(items, item)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "pagination": NewPaginatedResponse(c, items, total)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pagination": NewPaginatedResponse(c, students, total)})
}

// GetStudent returns one student.
func GetStudent(c *gin.Context) {
	id := c.Param("id")

	var student models.Student
	if err := config.DB.Preload("Institution").
		Where("student_id = ? AND delete_at IS NULL", id).
		First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": student})
}

// SearchStudents answers the directory search box: case-insensitive substring
// match on name or contact.
func SearchStudents(c *gin.Context) {
	term := utils.SanitizeInput(c.Query("searchTerm"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Student{}})
		return
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var students []models.Student
	if err := config.DB.Preload("Institution").
		Where("delete_at IS NULL").
		Where("LOWER(student_name) LIKE ? OR LOWER(COALESCE(contact, '')) LIKE ?", pattern, pattern).
		Order("student_name ASC").
		Limit(50).
		Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": students})
}

// CreateStudent adds a student to a roster. Institutions create only their
// own; admins pass institution_id explicitly.
func CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountType, _ := c.Get("accountType")
	accountID, _ := c.Get("accountID")

	institutionID := req.InstitutionID
	if accountType == models.AccountTypeInstitution {
		institutionID = accountID.(int)
	}
	if institutionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "institution_id is required"})
		return
	}

	var institution models.Institution
	if err := config.DB.Where("institution_id = ? AND delete_at IS NULL", institutionID).
		First(&institution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}
	if !institution.IsApproved() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Institution is awaiting approval"})
		return
	}

	now := time.Now()
	student := models.Student{
		StudentName:            req.StudentName,
		GuardianName:           req.GuardianName,
		Contact:                req.Contact,
		Address:                req.Address,
		Gender:                 req.Gender,
		FinancialRank:          req.FinancialRank,
		RequiredMonthlySupport: req.RequiredMonthlySupport,
		Bio:                    req.Bio,
		InstitutionID:          institutionID,
		CreateAt:               &now,
		UpdateAt:               &now,
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
			return
		}
		student.DateOfBirth = &dob
	}

	if err := config.DB.Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": student})
}

// UpdateStudent edits a student record.
func UpdateStudent(c *gin.Context) {
	id := c.Param("id")

	var student models.Student
	if err := config.DB.Where("student_id = ? AND delete_at IS NULL", id).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if !canManageStudent(c, student) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	student.StudentName = req.StudentName
	student.GuardianName = req.GuardianName
	student.Contact = req.Contact
	student.Address = req.Address
	student.Gender = req.Gender
	student.FinancialRank = req.FinancialRank
	student.RequiredMonthlySupport = req.RequiredMonthlySupport
	student.Bio = req.Bio
	student.UpdateAt = &now
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
			return
		}
		student.DateOfBirth = &dob
	}

	if err := config.DB.Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": student})
}

// DeleteStudent soft deletes a student.
func DeleteStudent(c *gin.Context) {
	id := c.Param("id")

	var student models.Student
	if err := config.DB.Where("student_id = ? AND delete_at IS NULL", id).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if !canManageStudent(c, student) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&student).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student deleted"})
}

// UploadStudentPhoto stores the student photo under UPLOAD_PATH with a random
// filename and records the path.
func UploadStudentPhoto(c *gin.Context) {
	id := c.Param("id")

	var student models.Student
	if err := config.DB.Where("student_id = ? AND delete_at IS NULL", id).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if !canManageStudent(c, student) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo must be JPG or PNG"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	storedPath := filepath.Join(uploadPath, "students", fmt.Sprintf("%s%s", uuid.NewString(), ext))
	if err := os.MkdirAll(filepath.Dir(storedPath), os.ModePerm); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&student).
		Updates(map[string]interface{}{"photo_path": storedPath, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "photo_path": storedPath})
}

// GetStudentSponsorStatus answers the sponsor button query for one student.
func GetStudentSponsorStatus(c *gin.Context) {
	accountID, _ := c.Get("accountID")
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	status, err := services.DefaultSponsorshipService().StudentSponsorStatus(accountID.(int), studentID)
	if err != nil {
		if err == services.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sponsor status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

func canManageStudent(c *gin.Context, student models.Student) bool {
	accountType, _ := c.Get("accountType")
	switch accountType {
	case models.AccountTypeAdmin:
		return true
	case models.AccountTypeInstitution:
		accountID, _ := c.Get("accountID")
		return accountID.(int) == student.InstitutionID
	default:
		return false
	}
}
