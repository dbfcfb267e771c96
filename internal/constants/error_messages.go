package constants

const (
	ErrCodeInvalidSignature   = "INVALID_SIGNATURE"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidQuery       = "INVALID_QUERY"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

const (
	ErrMsgInvalidSignature   = "missing or invalid signature"
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgValidationFailed   = "request failed validation"
	ErrMsgInvalidQuery       = "invalid query parameters"
	ErrMsgStorageUnavailable = "storage temporarily unavailable"
	ErrMsgNotFound           = "resource not found"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeInvalidSignature:   ErrMsgInvalidSignature,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:   ErrMsgValidationFailed,
	ErrCodeInvalidQuery:       ErrMsgInvalidQuery,
	ErrCodeStorageUnavailable: ErrMsgStorageUnavailable,
	ErrCodeNotFound:           ErrMsgNotFound,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidSignature:
		return 401
	case ErrCodeInvalidRequestBody, ErrCodeValidationFailed, ErrCodeInvalidQuery:
		return 422
	case ErrCodeNotFound:
		return 404
	case ErrCodeStorageUnavailable:
		return 503
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
