package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "product not found",
			},
			want: "product not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransient,
				Message: "fetch cart",
				Cause:   errors.New("connection refused"),
			},
			want: "fetch cart: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"unauthorized", Unauthorized("token rejected"), ErrCodeUnauthorized, "token rejected"},
		{"not found", NotFound("product not found"), ErrCodeNotFound, "product not found"},
		{"not found formatted", NotFoundf("product %d not found", 9), ErrCodeNotFound, "product 9 not found"},
		{"validation", Validation("email is required"), ErrCodeValidation, "email is required"},
		{"validation formatted", Validationf("quantity %d out of range", -1), ErrCodeValidation, "quantity -1 out of range"},
		{"transient", Transient("server unavailable"), ErrCodeTransient, "server unavailable"},
		{"transient formatted", Transientf("status %d", 503), ErrCodeTransient, "status 503"},
		{"internal", Internal("corrupt state"), ErrCodeInternal, "corrupt state"},
		{"internal formatted", Internalf("decode %s", "cart"), ErrCodeInternal, "decode cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "email is invalid")
	if err.Field != "email" {
		t.Errorf("Field = %v, want email", err.Field)
	}
	if GetField(err) != "email" {
		t.Errorf("GetField() = %v, want email", GetField(err))
	}
}

func TestValidationFields(t *testing.T) {
	fields := map[string][]string{
		"email":    {"email is invalid"},
		"password": {"password is too short"},
	}
	err := ValidationFields("validation failed", fields)

	got := GetFields(err)
	if len(got) != 2 {
		t.Fatalf("GetFields() returned %d entries, want 2", len(got))
	}
	if got["email"][0] != "email is invalid" {
		t.Errorf("email message = %v", got["email"][0])
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, ErrCodeTransient, "fetch remote cart")

	if err.Code != ErrCodeTransient {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTransient)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "should be nil"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, ErrCodeInternal, "should be %s", "nil"); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("boom")
	err := Wrapf(cause, ErrCodeInternal, "operation %s failed", "sync")

	if err.Message != "operation sync failed" {
		t.Errorf("Message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"unauthorized match", Unauthorized("x"), IsUnauthorized, true},
		{"unauthorized mismatch", NotFound("x"), IsUnauthorized, false},
		{"not found match", NotFound("x"), IsNotFound, true},
		{"validation match", Validation("x"), IsValidation, true},
		{"transient match", Transient("x"), IsTransient, true},
		{"internal match", Internal("x"), IsInternal, true},
		{"plain error", errors.New("x"), IsTransient, false},
		{"nil error", nil, IsUnauthorized, false},
		{"wrapped in fmt", fmt.Errorf("outer: %w", Unauthorized("x")), IsUnauthorized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(Transient("x")); code != ErrCodeTransient {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeTransient)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode = %v, want empty", code)
	}
}
