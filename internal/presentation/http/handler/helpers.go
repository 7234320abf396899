package handler

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/domain/enum"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var registerOnce sync.Once

// RegisterValidation makes binding errors report JSON and form field names
// instead of Go struct field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindJSON decodes the body into dst. It writes the error response and
// returns false when the body is malformed (400) or fails validation (422).
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		response.Error(c, bindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewBadRequestError("Invalid request: " + err.Error())
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return apperror.NewValidationError(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// parseID reads the :id path parameter, writing a 400 when it is not a UUID.
func parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// fieldErrors collects request field problems found while converting a DTO.
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}

func (f *fieldErrors) date(field string, s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := service.ParseDate(*s)
	if err != nil {
		f.add(field, field+" must be YYYY-MM-DD or RFC 3339")
		return nil
	}
	return &t
}

func (f *fieldErrors) workStatus(field string, s *string) *enum.WorkStatus {
	if s == nil {
		return nil
	}
	v, ok := enum.ParseWorkStatus(normalizeEnum(*s))
	if !ok {
		f.add(field, field+" must be pending, in-progress or done")
		return nil
	}
	return &v
}

func (f *fieldErrors) paymentStatus(field string, s string) *enum.PaymentStatus {
	if s == "" {
		return nil
	}
	v, ok := enum.ParsePaymentStatus(normalizeEnum(s))
	if !ok {
		f.add(field, field+" must be unpaid, partial or paid")
		return nil
	}
	return &v
}

func (f *fieldErrors) transactionType(field string, s *string) *enum.TransactionType {
	if s == nil || *s == "" {
		return nil
	}
	v, ok := enum.ParseTransactionType(normalizeEnum(*s))
	if !ok {
		f.add(field, field+" must be in or out")
		return nil
	}
	return &v
}

func (f *fieldErrors) transactionStatus(field string, s *string) *enum.TransactionStatus {
	if s == nil || *s == "" {
		return nil
	}
	v, ok := enum.ParseTransactionStatus(normalizeEnum(*s))
	if !ok {
		f.add(field, field+" must be pending or done")
		return nil
	}
	return &v
}

func (f *fieldErrors) ledgerType(field string, s *string) *enum.LedgerType {
	if s == nil || *s == "" {
		return nil
	}
	v, ok := enum.ParseLedgerType(normalizeEnum(*s))
	if !ok {
		f.add(field, field+" must be income or expense")
		return nil
	}
	return &v
}

func (f *fieldErrors) isoDate(field, s string) string {
	if s == "" {
		return ""
	}
	d, err := service.NormalizeDate(s)
	if err != nil {
		f.add(field, field+" must be YYYY-MM-DD")
		return ""
	}
	return d
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
