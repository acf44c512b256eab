// Copyright (c) 2026 EasyBuy. All rights reserved.

// Package uploadtest builds multipart upload requests for handler and service tests.
package uploadtest

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/upload"
)

// File is one part of a multipart upload.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Image returns a file with the given type and a body of size bytes.
func Image(name, contentType string, size int) File {
	return File{Name: name, ContentType: contentType, Body: bytes.Repeat([]byte{0xFF}, size)}
}

// Request builds a multipart request with every file under field.
func Request(t *testing.T, method, target, field string, files ...File) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, file := range files {
		partHeader := textproto.MIMEHeader{}
		partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
		partHeader.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(partHeader)
		require.NoError(t, err)
		_, err = part.Write(file.Body)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

// Files streams files through [upload.ParseForm] and returns what a handler
// would pass to a service. The limits are wide enough to keep every byte.
func Files(t *testing.T, field string, files ...File) []*upload.File {
	t.Helper()

	request := Request(t, http.MethodPost, "/", field, files...)
	policy := upload.NewImagePolicy(len(files)+1, 64<<20)

	form, cleanup, err := upload.ParseForm(httptest.NewRecorder(), request, policy)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return form.Files[field]
}
