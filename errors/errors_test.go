package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestWrapNilPassthrough(t *testing.T) {
	if Wrap(CategorySource, "op", nil) != nil {
		t.Error("Wrap(nil) must return nil")
	}
}

func TestResolveErrorUnwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(CategorySource, "file.read", cause)

	if !stderrors.Is(err, cause) {
		t.Errorf("wrapped error lost its cause: %v", err)
	}
	if !IsCategory(err, CategorySource) {
		t.Errorf("category lost: %v", err)
	}
	if IsCategory(err, CategoryDecode) {
		t.Errorf("wrong category matched: %v", err)
	}
	if !strings.Contains(err.Error(), "file.read") {
		t.Errorf("op missing from message: %q", err.Error())
	}
}

func TestUnsupportedFormatCarriesDetail(t *testing.T) {
	detail := stderrors.New("png: short IHDR")
	err := UnsupportedFormat("resolve", detail)

	if !stderrors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("sentinel lost: %v", err)
	}
	if !stderrors.Is(err, detail) {
		t.Errorf("detail lost: %v", err)
	}
	if !IsCategory(err, CategoryDecode) {
		t.Errorf("category: %v", err)
	}
}

func TestUnsupportedFormatWithoutDetail(t *testing.T) {
	err := UnsupportedFormat("resolve", nil)
	if !stderrors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("sentinel lost: %v", err)
	}
}
