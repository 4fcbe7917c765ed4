package netutil

import (
	"errors"
	"fmt"
	"io"
)

// SizeLimitError reports a model download that grew past its limit.
type SizeLimitError struct {
	Limit int64
	Read  int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("download exceeds %s limit after %s", FormatSize(e.Limit), FormatSize(e.Read))
}

// IsSizeLimitError reports whether err is a SizeLimitError.
func IsSizeLimitError(err error) bool {
	var sizeErr *SizeLimitError
	return errors.As(err, &sizeErr)
}

// SizeLimitedReader fails a stream that produces more than limit bytes.
// Unlike io.LimitReader it distinguishes "stream ended" from "stream was
// cut off", so an oversized model is an error rather than a truncated file.
type SizeLimitedReader struct {
	src   io.Reader
	limit int64
	read  int64
}

// LimitSize wraps r so that reading more than limit bytes fails with a
// SizeLimitError.
func LimitSize(r io.Reader, limit int64) *SizeLimitedReader {
	return &SizeLimitedReader{src: r, limit: limit}
}

// Read implements io.Reader.
func (l *SizeLimitedReader) Read(p []byte) (int, error) {
	if l.read > l.limit {
		return 0, &SizeLimitError{Limit: l.limit, Read: l.read}
	}

	n, err := l.src.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		return n, &SizeLimitError{Limit: l.limit, Read: l.read}
	}
	return n, err
}

// BytesRead returns how many bytes have been consumed so far.
func (l *SizeLimitedReader) BytesRead() int64 {
	return l.read
}

// FormatSize renders a byte count for log and error messages.
func FormatSize(bytes int64) string {
	const (
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
	)

	switch {
	case bytes >= gib:
		return fmt.Sprintf("%.1f GiB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/kib)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
