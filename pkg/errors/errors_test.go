package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeComponentNotFound, "component %q not found", "k1"),
			want: `COMPONENT_NOT_FOUND: component "k1" not found`,
		},
		{
			name: "wrapped cause",
			err:  Wrap(ErrCodeInvalidDocument, errors.New("toml: line 3: expected '='"), "decode %s", "pipeline.toml"),
			want: "INVALID_DOCUMENT: decode pipeline.toml: toml: line 3: expected '='",
		},
		{
			name: "nil cause",
			err:  Wrap(ErrCodeInternal, nil, "render"),
			want: "INTERNAL_ERROR: render",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open pipeline.yaml")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want fs.ErrNotExist", errors.Unwrap(err))
	}
	if err.Message != "open pipeline.yaml" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestCodeLookup(t *testing.T) {
	sentinel := New(ErrCodeWrongKind, "wrong component kind")

	tests := []struct {
		name string
		err  error
		code Code
		msg  string
	}{
		{"direct", sentinel, ErrCodeWrongKind, "wrong component kind"},
		{"fmt wrapped", fmt.Errorf("inject-before sink %q: %w", "k1", sentinel), ErrCodeWrongKind, "wrong component kind"},
		{"outer code wins", Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidDocument, "outer"},
		{"plain", errors.New("plain error"), "", "plain error"},
		{"nil", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if Is(tt.err, ErrCodeDuplicateComponent) {
				t.Error("Is(err, DUPLICATE_COMPONENT) = true")
			}
			if tt.err != nil {
				if got := UserMessage(tt.err); got != tt.msg {
					t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
				}
			}
		})
	}
}
