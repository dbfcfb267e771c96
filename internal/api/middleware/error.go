package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/constants"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/service"
)

// ErrorHandler translates errors escaping the handlers into the stable
// {code, message} envelope. Classification happens in the services; this
// is the only place codes become HTTP statuses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
			c.Locals(LocalResult, constants.ErrCodeNotFound)
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"code":    constants.ErrCodeNotFound,
				"message": constants.GetErrorMessage(constants.ErrCodeNotFound),
			})
		}

		c.Locals(LocalResult, constants.ErrCodeInternalError)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    constants.ErrCodeInternalError,
			"message": constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == 500 && err.Code != constants.ErrCodeInternalError {
		errorCode = constants.ErrCodeInternalError
	}

	// Validation detail may name offending fields; everything else stays
	// generic (signature failures in particular leak nothing).
	message := constants.GetErrorMessage(errorCode)
	if errorCode == constants.ErrCodeValidationFailed || errorCode == constants.ErrCodeInvalidQuery {
		message = err.Error()
	}

	c.Locals(LocalResult, errorCode)
	return c.Status(status).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
	})
}
