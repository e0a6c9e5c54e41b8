package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/post_shop/internal/logging"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindBusiness
	KindAuth
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBusiness:
		return "business"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the error type every handler-facing failure is expressed in.
// Status overrides the default status of the Kind when non-zero.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation, KindBusiness:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Validation(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

func Business(msg string) *Error {
	return &Error{Kind: KindBusiness, Message: msg}
}

func Auth(msg string, err error) *Error {
	return &Error{Kind: KindAuth, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

type Envelope struct {
	ErrorMessage string `json:"errorMessage"`
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
// Not-found failures carry an empty body, everything else the errorMessage envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := render(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

func render(err error) (int, any) {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindNotFound {
			return appErr.StatusCode(), struct{}{}
		}
		return appErr.StatusCode(), Envelope{ErrorMessage: appErr.Message}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, struct{}{}
		}
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, Envelope{ErrorMessage: msg}
	}

	return http.StatusInternalServerError, Envelope{ErrorMessage: "internal server error"}
}
