package intake

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"

	"lead-intake/internal/apperr"

	"github.com/google/uuid"
)

// Upload is one file part of a multipart submission. Open is called once.
type Upload struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

func UploadFromHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// UploadFromBytes wraps in-memory content.
func UploadFromBytes(name, contentType string, data []byte) Upload {
	return Upload{
		Filename:    name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// read loads the whole upload, reading at most max+1 bytes so an oversize
// part is detected without buffering all of it. The bool reports whether the
// content exceeded max.
func (u Upload) read(max int64) ([]byte, bool, error) {
	if u.Open == nil {
		return nil, false, apperr.Validation("file %q has no content", u.Filename)
	}
	rc, err := u.Open()
	if err != nil {
		return nil, false, fmt.Errorf("open upload %q: %w", u.Filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, max+1))
	if err != nil {
		return nil, false, fmt.Errorf("read upload %q: %w", u.Filename, err)
	}
	if int64(len(data)) > max {
		return nil, true, nil
	}
	return data, false, nil
}

// storedName is the on-disk name: a UUID plus ext.
func storedName(ext string) string {
	return uuid.NewString() + ext
}
