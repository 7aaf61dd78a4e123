package source

import (
	"context"
	"io"
	"os"

	"github.com/lwj1994/imagemeta/core"
	apperrors "github.com/lwj1994/imagemeta/errors"
)

// File serves an image from the local filesystem.  The file is opened lazily
// on the first read and held until Release.
//
// A File value carries an open descriptor, so it must not be shared across
// concurrent resolutions; create one per call and Release it at the call
// site.
type File struct {
	path string
	f    *os.File
}

// NewFile creates a File source for path.
func NewFile(path string) *File { return &File{path: path} }

func (s *File) Exists(context.Context) (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.CategorySource, "file.exists", err)
	}
	return !info.IsDir(), nil
}

func (s *File) Length(context.Context) (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CategorySource, "file.length", err)
	}
	return info.Size(), nil
}

func (s *File) SupportsRangeRead() bool { return true }

func (s *File) ReadRange(_ context.Context, start, end int64) ([]byte, error) {
	if end <= start || start < 0 {
		return nil, nil
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	buf := make([]byte, end-start)
	n, err := s.f.ReadAt(buf, start)
	if err != nil && err != io.EOF {
		return nil, apperrors.Wrap(apperrors.CategorySource, "file.read", err)
	}
	return buf[:n], nil
}

// Delegate returns the source itself; files are already range-capable.
func (s *File) Delegate(context.Context) (core.ByteSource, error) { return s, nil }

// Release closes the descriptor if one was opened.
func (s *File) Release(context.Context) error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return apperrors.Wrap(apperrors.CategorySource, "file.release", err)
}

func (s *File) open() error {
	if s.f != nil {
		return nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return apperrors.Wrap(apperrors.CategorySource, "file.open", err)
	}
	s.f = f
	return nil
}
