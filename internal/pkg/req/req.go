/*
Package req binds JSON request bodies, mapping decode failures onto errs codes.
*/
package req

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"chatfront/internal/pkg/errs"
)

// MaxJSONBodySize caps request bodies accepted by BindJSON and BindOptionalJSON.
const MaxJSONBodySize int64 = 64 << 10 // 64 KB

// BindJSON decodes a single JSON value from the request body into dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	return decode(w, r, dst)
}

// BindOptionalJSON is BindJSON for endpoints where the body may be omitted.
// It reports whether a value was decoded.
func BindOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) (bool, *errs.CustomError) {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return false, nil
	}

	if customErr := BindJSON(w, r, dst); customErr != nil {
		return false, customErr
	}

	return true, nil
}

func decode(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodySize))

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
