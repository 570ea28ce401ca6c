package api

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid report format",

		1100: "country not found",
		1101: "unknown region",
		1102: "rollup is not ready",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidFormat = errorJSON(1010)

	errorCountryNotFound = errorJSON(1100)
	errorUnknownRegion   = errorJSON(1101)
	errorRollupNotReady  = errorJSON(1102)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
