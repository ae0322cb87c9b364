package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/repository"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPageNumber   = 1000000
	MaxUploadSize   = 50 * 1024 * 1024 // 50MB
	MaxImageSize    = 10 * 1024 * 1024
)

var allowedImportExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	// Report json names so messages match the payload the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// BindJSON decodes the body into dst and runs struct validation.
func (rv *RequestValidator) BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return rv.Struct(dst)
}

// Struct validates a decoded payload and renders the first failure.
func (rv *RequestValidator) Struct(s any) error {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email", field)
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, fe.Param())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Errorf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}

// ParsePagination validates and parses pagination parameters
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("perPage", strconv.Itoa(DefaultPageSize))
	if limit := strings.TrimSpace(c.Query("limit")); limit != "" && c.Query("perPage") == "" {
		perPageStr = limit
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage, nil
}

// ParseProductFilter validates and parses the storefront listing query.
func (rv *RequestValidator) ParseProductFilter(c *gin.Context) (repository.ProductFilter, error) {
	var f repository.ProductFilter

	page, perPage, err := rv.ParsePagination(c)
	if err != nil {
		return f, err
	}
	f.Page, f.PerPage = page, perPage

	if raw := strings.TrimSpace(c.Query("category")); raw != "" && raw != "all" {
		id, err := parseID(raw)
		if err != nil {
			return f, errors.New("invalid category ID")
		}
		f.CategoryID = &id
	}

	f.Search = strings.TrimSpace(c.Query("search"))
	f.Brand = strings.TrimSpace(c.Query("brand"))

	if raw := strings.ToUpper(strings.TrimSpace(c.Query("stock"))); raw != "" {
		switch models.StockStatus(raw) {
		case models.StockIn, models.StockOut:
			f.Stock = models.StockStatus(raw)
		default:
			return f, errors.New("invalid stock value")
		}
	}

	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errors.New("invalid boolean value for 'featured'")
		}
		f.Featured = v
	}

	sortParam := strings.ToLower(strings.TrimSpace(c.Query("sort")))
	if sortParam != "" && !repository.ValidProductSort(sortParam) {
		return f, errors.New("invalid sort value")
	}
	if sortParam == "" {
		sortParam = repository.SortNewest
	}
	f.Sort = sortParam

	if f.MinPrice, err = parseOptionalFloat(c.Query("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseOptionalFloat(c.Query("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return f, errors.New("minPrice must be less than or equal to maxPrice")
	}

	return f, nil
}

// IsValidImageType checks if the file is a valid image
func (rv *RequestValidator) IsValidImageType(file *multipart.FileHeader) bool {
	if services.IsAllowedImageType(file.Header.Get("Content-Type")) {
		return true
	}

	// Fallback: check by extension
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}

// IsValidImportFile checks the extension of a bulk import upload.
func (rv *RequestValidator) IsValidImportFile(file *multipart.FileHeader) bool {
	return allowedImportExtensions[strings.ToLower(filepath.Ext(file.Filename))]
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader, limit int64) error {
	if file.Size > limit {
		return fmt.Errorf("file too large (max %dMB)", limit/(1024*1024))
	}
	return nil
}

func parseOptionalFloat(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid %s value", name)
	}
	return &v, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
