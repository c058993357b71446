package code

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"

	"github.com/pkg/errors"
)

type errorCode struct {
	GeneralCode int    `json:"http_code"`
	Code        int    `json:"code"`
	Message     string `json:"message"`
	OriginError error  `json:"-"`
	CallStack   string `json:"-"`
}

func CreateHTTPError(err *errorCode) *httpErrorCode {
	return &httpErrorCode{
		HTTPCode:  err.GeneralCode,
		errorCode: err,
	}
}

type httpErrorCode struct {
	HTTPCode int `json:"http_code"`
	*errorCode
}

func (e errorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func (e *errorCode) AddErrorMetaData(err error) *errorCode {
	e.OriginError = err
	e.CallStack = fmt.Sprintf("%+v", err)
	return e
}

func (e *errorCode) AddCode(code int, args ...any) *errorCode {
	if httpErrorCodes, ok := errorCodes[e.GeneralCode]; ok {
		if errorCodes, ok := httpErrorCodes[code]; ok {
			e.Code = code
			e.Message = fmt.Sprintf(errorCodes, args...)
		}
	}
	return e
}

const (
	Default     = 0
	RateLimit   = 1
	InvalidBody = 2
	InvalidURL  = 3
)

var errorCodes = map[int]map[int]string{
	httpPKG.StatusTooManyRequests: {
		Default:   "too many requests",
		RateLimit: "rate limit error. expiry: %d",
	},
	httpPKG.StatusNotFound: {
		Default: "not found",
	},
	httpPKG.StatusInternalServerError: {
		Default: "internal error",
	},
	httpPKG.StatusBadRequest: {
		Default:     "bad request",
		InvalidBody: "invalid body",
		InvalidURL:  "invalid url",
	},
	httpPKG.StatusUnauthorized: {
		Default: "unauthorized",
	},
	httpPKG.StatusForbidden: {
		Default: "forbidden",
	},
}

type errorCodeOption func(*errorCode)

func CreateErrorCode(code int, options ...errorCodeOption) *errorCode {
	resCode := httpPKG.StatusInternalServerError
	resMessage := errorCodes[httpPKG.StatusInternalServerError][Default]
	if codes, ok := errorCodes[code]; ok {
		resCode = code

		if errorCodes, ok := codes[Default]; ok {
			resMessage = errorCodes
		}
	}

	errorCode := errorCode{
		GeneralCode: resCode,
		Code:        Default,
		Message:     resMessage,
	}

	for _, option := range options {
		option(&errorCode)
	}

	return &errorCode
}

func ParseErrorCode(err error) *errorCode {
	causeErr := errors.Cause(err)
	switch errorCode := causeErr.(type) {
	case *errorCode:
		return errorCode
	}

	errorCode := CreateErrorCode(httpPKG.StatusInternalServerError).AddErrorMetaData(err)

	return errorCode
}
