// Copyright (c) 2026 EasyBuy. All rights reserved.

package upload_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/internal/platform/upload/uploadtest"
)

const maxBytes = 2 * 1024 * 1024

func header(name, contentType string, size int64) *upload.File {
	return &upload.File{Filename: name, ContentType: contentType, Size: size}
}

/*
TestScreen_TooManyFiles rejects the whole request above the file cap.
*/
func TestScreen_TooManyFiles(t *testing.T) {
	policy := upload.NewImagePolicy(5, maxBytes)
	files := make([]*upload.File, 6)
	for i := range files {
		files[i] = header("a.jpg", "image/jpeg", 100)
	}

	decision, err := policy.Screen(files)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Empty(t, decision.Accepted)
}

/*
TestScreen_PerFileRules keeps valid files and reports the rest.
*/
func TestScreen_PerFileRules(t *testing.T) {
	policy := upload.NewImagePolicy(5, maxBytes)

	decision, err := policy.Screen([]*upload.File{
		header("photo.jpg", "image/jpeg", 1024),
		header("huge.png", "image/png", maxBytes+1),
		header("notes.pdf", "application/pdf", 10),
		header("edge.webp", "image/webp", maxBytes),
	})
	require.NoError(t, err)

	require.Len(t, decision.Accepted, 2)
	assert.Equal(t, "photo.jpg", decision.Accepted[0].File.Filename)
	assert.Equal(t, ".jpg", decision.Accepted[0].Extension)
	assert.Equal(t, ".webp", decision.Accepted[1].Extension)

	assert.Equal(t, []upload.Rejected{
		{Filename: "huge.png", Reason: upload.ReasonSize},
		{Filename: "notes.pdf", Reason: upload.ReasonType},
	}, decision.Rejected)
}

/*
TestScreen_NothingUsable distinguishes empty from all-rejected.
*/
func TestScreen_NothingUsable(t *testing.T) {
	policy := upload.NewImagePolicy(5, maxBytes)

	_, err := policy.Screen(nil)
	assert.EqualError(t, err, upload.MsgNoFiles)

	_, err = policy.Screen([]*upload.File{header("a.txt", "text/plain", 3)})
	assert.EqualError(t, err, upload.MsgNoValidFiles)
}

/*
TestParseForm_OversizedPartIsMeasuredNotKept streams a part many times the
per-file limit and still parses the rest of the request.
*/
func TestParseForm_OversizedPartIsMeasuredNotKept(t *testing.T) {
	const limit = 1024
	policy := upload.NewImagePolicy(5, limit)
	request := uploadtest.Request(t, http.MethodPost, "/", "images",
		uploadtest.Image("big.jpg", "image/jpeg", 16*limit),
		uploadtest.Image("ok.jpg", "image/jpeg", 100),
	)

	form, cleanup, err := upload.ParseForm(httptest.NewRecorder(), request, policy)
	require.NoError(t, err)
	defer cleanup()

	files := form.Files["images"]
	require.Len(t, files, 2)
	assert.Equal(t, int64(limit+1), files[0].Size)
	_, err = files[0].Open()
	assert.Error(t, err)

	assert.Equal(t, int64(100), files[1].Size)
	reader, err := files[1].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Len(t, content, 100)

	decision, err := policy.Screen(files)
	require.NoError(t, err)
	require.Len(t, decision.Accepted, 1)
	assert.Equal(t, "ok.jpg", decision.Accepted[0].File.Filename)
	assert.Equal(t, []upload.Rejected{{Filename: "big.jpg", Reason: upload.ReasonSize}}, decision.Rejected)
}

/*
TestParseForm_ExtraFilesAreCountedOnly keeps no content past the file cap but
lets screening reject the request.
*/
func TestParseForm_ExtraFilesAreCountedOnly(t *testing.T) {
	policy := upload.NewImagePolicy(1, 1024)
	request := uploadtest.Request(t, http.MethodPost, "/", "avatar",
		uploadtest.Image("a.png", "image/png", 10),
		uploadtest.Image("b.png", "image/png", 10),
	)

	form, cleanup, err := upload.ParseForm(httptest.NewRecorder(), request, policy)
	require.NoError(t, err)
	defer cleanup()

	files := form.Files["avatar"]
	require.Len(t, files, 2)
	_, err = files[1].Open()
	assert.Error(t, err)

	_, err = policy.Screen(files)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestParseForm_Rejections covers request-level failures.
*/
func TestParseForm_Rejections(t *testing.T) {
	t.Run("not_multipart", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
		request.Header.Set("Content-Type", "application/json")

		_, _, err := upload.ParseForm(httptest.NewRecorder(), request, upload.NewImagePolicy(5, 1024))
		assert.EqualError(t, err, upload.MsgNotMultipart)
	})

	t.Run("too_many_parts", func(t *testing.T) {
		files := make([]uploadtest.File, 30)
		for i := range files {
			files[i] = uploadtest.Image("a.jpg", "image/jpeg", 1)
		}
		request := uploadtest.Request(t, http.MethodPost, "/", "images", files...)

		_, _, err := upload.ParseForm(httptest.NewRecorder(), request, upload.NewImagePolicy(5, 1024))
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}
