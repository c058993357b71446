package http

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"
)

type ErrorCode struct {
	HTTPCode  int    `json:"http_code"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	CallStack string `json:"-"`
}

func (e ErrorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func CreateErrorHTTPCode(httpCode int) *ErrorCode {
	return &ErrorCode{
		HTTPCode: httpCode,
		Message:  httpPKG.StatusText(httpCode),
	}
}

// DecodeErrorCode recovers the structured error code from an error's
// message, falling back to a generic internal error.
func DecodeErrorCode(err error) *ErrorCode {
	errorCode := new(ErrorCode)
	if jsonErr := json.Unmarshal([]byte(err.Error()), errorCode); jsonErr != nil || errorCode.HTTPCode == 0 {
		errorCode = CreateErrorHTTPCode(httpPKG.StatusInternalServerError)
	}

	errorCode.CallStack = fmt.Sprintf("%+v", err)

	return errorCode
}
