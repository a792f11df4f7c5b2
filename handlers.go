package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/mis_backend/config"
	"bitbucket.org/mmdatafocus/mis_backend/models"
	"bitbucket.org/mmdatafocus/mis_backend/models/reports"
	appmetrics "bitbucket.org/mmdatafocus/mis_backend/prometheus"
	"bitbucket.org/mmdatafocus/mis_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 10
	maxPageSize     = 200
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		appmetrics.AuthAttemptsCounter.Inc()
		info, err := models.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			appmetrics.AuthErrorsCounter.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := models.Logout(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logged_out": ok})
	}
}

// sessionUser resolves and validates the caller's session. A nil return
// means the response has already been written.
func sessionUser(c *gin.Context) *models.User {
	user, err := models.GetSessionUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return user
}

// sessionCompany resolves the company the request operates on, checked
// against the caller's role. A nil return means the response has
// already been written.
func sessionCompany(c *gin.Context, user *models.User) *models.Company {
	company, err := models.ResolveCompanyForRole(user.Role, c.Query("company"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return nil
	}
	return &company
}

func companiesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"companies": models.CompaniesForRole(user.Role)})
	}
}

func criteriaFromQuery(c *gin.Context) models.ViewCriteria {
	crit := models.ViewCriteria{
		Search:         c.Query("search"),
		Customers:      c.QueryArray("customer"),
		TransportModes: c.QueryArray("transport"),
		// "status" is the UI's name for the payment status filter.
		PaymentStatuses: append(c.QueryArray("payment"), c.QueryArray("status")...),
	}
	crit.DateFrom = utils.ParseDateOrNil(c.Query("from"))
	crit.DateTo = utils.ParseDateOrNil(c.Query("to"))
	return crit
}

func intQuery(c *gin.Context, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// filteredView fetches the company snapshot, annotates it with derived
// fields and applies the request's criteria. Every read path (table,
// dashboard, both exports) goes through here, so they always agree on
// what the current view is.
func filteredView(c *gin.Context, company models.Company) ([]*models.RowView, bool) {
	rows, err := models.ListMisRows(c.Request.Context(), company)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load records"})
		return nil, false
	}
	views := models.BuildRowViews(rows, time.Now())
	return models.ApplyCriteria(views, criteriaFromQuery(c)), true
}

func listRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		filtered, ok := filteredView(c, *company)
		if !ok {
			return
		}

		pageSize := intQuery(c, "page_size", defaultPageSize)
		if pageSize < 1 {
			pageSize = 1
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		pageItems, page, totalPages := models.Paginate(filtered, pageSize, intQuery(c, "page", 1))

		c.JSON(http.StatusOK, gin.H{
			"company":       company.ID,
			"data":          pageItems,
			"page":          page,
			"page_size":     pageSize,
			"total_pages":   totalPages,
			"total_records": len(filtered),
		})
	}
}

func createRecordsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}

		var input models.NewMisEntry
		if err := c.ShouldBindJSON(&input); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rows, err := models.CreateMisRows(c.Request.Context(), *company, &input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		appmetrics.RecordRowOperation(company.ID, "create")
		c.JSON(http.StatusCreated, gin.H{"data": rows})
	}
}

func updateRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var input models.NewMisRow
		if err := c.ShouldBindJSON(&input); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		row, err := models.UpdateMisRow(c.Request.Context(), *company, id, &input)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		appmetrics.RecordRowOperation(company.ID, "update")
		c.JSON(http.StatusOK, gin.H{"data": row})
	}
}

func deleteRecordHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		if err := models.DeleteMisRow(c.Request.Context(), *company, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		appmetrics.RecordRowOperation(company.ID, "delete")
		c.Status(http.StatusNoContent)
	}
}

func dashboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		filtered, ok := filteredView(c, *company)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, models.BuildDashboard(filtered))
	}
}

// archiveExport uploads a copy of the rendered document when an archive
// bucket is configured. Best-effort: the download succeeds either way.
func archiveExport(c *gin.Context, company models.Company, filename string, contentType string, data []byte) {
	bucket := config.ExportArchiveBucket()
	if bucket == "" || utils.GetStorageProvider() != utils.StorageProviderGCS {
		return
	}
	object := "exports/" + company.ID + "/" + utils.GenerateUniqueFilename() + "_" + filename
	if err := utils.UploadBytesToGCS(c.Request.Context(), bucket, object, contentType, data); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "handlers.go", "archiveExport", "UploadBytesToGCS", object, err)
	}
}

func exportFilename(company models.Company, ext string) string {
	return strings.ReplaceAll(company.Name, " ", "_") + "_data." + ext
}

func exportExcelHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		filtered, ok := filteredView(c, *company)
		if !ok {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "exportExcel")
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		defer appmetrics.TrackExport("excel")(time.Now())
		data, err := reports.RenderExcel(reports.BuildExportTable(*company, filtered))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export unavailable"})
			return
		}
		appmetrics.RecordExport(company.ID, "excel")

		const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename := exportFilename(*company, "xlsx")
		archiveExport(c, *company, filename, contentType, data)

		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, contentType, data)
	}
}

func exportPdfHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sessionUser(c)
		if user == nil {
			return
		}
		company := sessionCompany(c, user)
		if company == nil {
			return
		}
		filtered, ok := filteredView(c, *company)
		if !ok {
			return
		}

		ctx, span := tracer.Start(c.Request.Context(), "exportPdf")
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		defer appmetrics.TrackExport("pdf")(time.Now())
		data, err := reports.RenderPdf(reports.BuildExportTable(*company, filtered))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export unavailable"})
			return
		}
		appmetrics.RecordExport(company.ID, "pdf")

		const contentType = "application/pdf"
		filename := exportFilename(*company, "pdf")
		archiveExport(c, *company, filename, contentType, data)

		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, contentType, data)
	}
}
