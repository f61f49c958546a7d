package handlers

import (
	"accomform_backend/internal/logger"
	"accomform_backend/internal/validator"
	"accomform_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator  *validator.Validator
	errHandler *apperrors.GinErrorHandler
}

func NewBaseHandler(v *validator.Validator, eh *apperrors.GinErrorHandler) *BaseHandler {
	return &BaseHandler{
		validator:  v,
		errHandler: eh,
	}
}

// BindAndValidateJSON binds the body and runs struct validation. On
// failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		h.errHandler.HandleGinError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			h.errHandler.HandleGinError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "internal validator error", err, "path", c.Request.URL.Path)
			h.errHandler.HandleGinError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError writes the error response for a service failure.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.errHandler.HandleGinError(c, err)
}
