package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/wayfare-travel/service-trip/internal/common/domain"
)

// Envelope is the JSON body shape returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Meta carries pagination details for list responses.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta:    &Meta{Total: total, Page: page, Limit: limit, TotalPages: totalPages},
	})
}

// BadRequest writes a 400 response with message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: "bad_request", Message: message},
	})
}

// BindError writes a 400 for a failed ShouldBind call, listing field errors when the validator produced them.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		BadRequest(c, "invalid request body")
		return
	}

	details := make([]string, len(verrs))
	for i, fe := range verrs {
		details[i] = FormatValidationError(fe)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: "validation_failed", Message: "validation failed", Details: details},
	})
}

// FormatValidationError turns a single validator failure into a readable sentence.
func FormatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "gte":
		return fe.Field() + " must be greater than or equal to " + fe.Param()
	case "latitude", "longitude":
		return fe.Field() + " must be a valid " + fe.Tag()
	default:
		return fe.Field() + " failed " + fe.Tag() + " validation"
	}
}

// Error maps err to a status code. Unknown errors become a 500 without leaking details.
func Error(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	message := "internal server error"

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		code = string(appErr.Kind)
		switch appErr.Kind {
		case domain.KindValidation:
			status = http.StatusBadRequest
		case domain.KindNotFound:
			status = http.StatusNotFound
		case domain.KindConflict:
			status = http.StatusConflict
		case domain.KindInvalidState:
			status = http.StatusUnprocessableEntity
		case domain.KindForbidden:
			status = http.StatusForbidden
		}
	} else {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, Envelope{Error: &ErrorBody{Code: code, Message: message}})
}
