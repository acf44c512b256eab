// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package upload receives multipart image uploads and decides which files a
request may keep.

Handlers stream the body with [ParseForm], which never holds more than
MaxFileBytes+1 of any part on disk. Services call [Policy.Screen] after the
ownership check, and only accepted files reach blob storage.
*/
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/blob"
)

// Client-facing messages.
const (
	MsgNoFiles      = "No files uploaded"
	MsgNoValidFiles = "No valid files uploaded"
	MsgTooLarge     = "Upload too large"
	MsgNotMultipart = "Expected a multipart/form-data body"
)

// Rejection reasons.
const (
	ReasonType = "unsupported_type"
	ReasonSize = "too_large"
)

// ImageTypes maps accepted image content types to the extension used for storage.
var ImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Policy limits one upload request.
type Policy struct {
	MaxFiles     int
	MaxFileBytes int64
	AllowedTypes map[string]string
}

// NewImagePolicy returns the image policy with the configured limits.
func NewImagePolicy(maxFiles int, maxFileBytes int64) Policy {
	return Policy{MaxFiles: maxFiles, MaxFileBytes: maxFileBytes, AllowedTypes: ImageTypes}
}

// File is one received file part.
//
// Size counts at most MaxFileBytes+1 bytes: an oversized part is measured only
// far enough to know it is too large, and its content is not kept.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	path        string
}

// Open reads back the kept content.
func (file *File) Open() (io.ReadCloser, error) {
	if file.path == "" {
		return nil, fmt.Errorf("upload: content of %q was not kept", file.Filename)
	}
	return os.Open(file.path)
}

// Accepted is a file that passed screening.
type Accepted struct {
	File        *File
	ContentType string
	Extension   string
}

// Rejected is a file that failed screening, with the reason.
type Rejected struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Decision is the outcome of screening one request.
type Decision struct {
	Accepted []Accepted
	Rejected []Rejected
}

/*
Screen applies the policy to the files of one request.

Rules:
  - no files: 400 No files uploaded
  - more than MaxFiles: 400 for the whole request
  - each file must declare an allowed content type and be at most MaxFileBytes
  - none accepted: 400 No valid files uploaded

Returns:
  - Decision: accepted files in request order, plus rejections
  - error: *apperr.AppError (VALIDATION_ERROR) for the request-level failures
*/
func (policy Policy) Screen(files []*File) (Decision, error) {
	if len(files) == 0 {
		return Decision{}, apperr.ValidationError(MsgNoFiles)
	}
	if len(files) > policy.MaxFiles {
		return Decision{}, policy.tooManyFiles()
	}

	var decision Decision
	for _, file := range files {
		contentType := file.ContentType
		extension, allowed := policy.AllowedTypes[contentType]

		switch {
		case !allowed:
			decision.Rejected = append(decision.Rejected, Rejected{Filename: file.Filename, Reason: ReasonType})
		case file.Size > policy.MaxFileBytes:
			decision.Rejected = append(decision.Rejected, Rejected{Filename: file.Filename, Reason: ReasonSize})
		default:
			decision.Accepted = append(decision.Accepted, Accepted{File: file, ContentType: contentType, Extension: extension})
		}
	}

	if len(decision.Accepted) == 0 {
		return decision, apperr.ValidationError(MsgNoValidFiles)
	}

	return decision, nil
}

func (policy Policy) tooManyFiles() error {
	return apperr.ValidationError(fmt.Sprintf("Too many files. At most %d are allowed", policy.MaxFiles))
}

// # Receiving

const (
	// bodyHeadroom is what a request may carry beyond MaxFiles full-size files.
	// It covers oversized parts, which are read through and discarded.
	bodyHeadroom = 128 << 20

	// extraParts bounds the parts a request may carry beyond MaxFiles.
	extraParts = 16
)

// Form holds the file parts of one request, grouped by field name.
type Form struct {
	Files map[string][]*File
	dir   string
}

// RemoveAll deletes every kept part from disk.
func (form *Form) RemoveAll() error {
	if form.dir == "" {
		return nil
	}
	return os.RemoveAll(form.dir)
}

/*
ParseForm streams a multipart request body part by part.

Rules:
  - each file part is copied to a temp file through a MaxFileBytes+1 limit
  - a part over the limit keeps only its name, type and Size; the rest is drained
  - file parts beyond MaxFiles in one field are measured but never written
  - non-file fields are discarded
  - more than MaxFiles+16 parts: 400 for the whole request

Returns:
  - *Form: the received files
  - func(): removes temp files; callers must defer it
  - error: 400 when the body is not multipart, malformed or beyond the
    total cap; 500 when the temp directory cannot be written
*/
func ParseForm(writer http.ResponseWriter, request *http.Request, policy Policy) (*Form, func(), error) {
	bodyLimit := int64(policy.MaxFiles)*policy.MaxFileBytes + bodyHeadroom
	request.Body = http.MaxBytesReader(writer, request.Body, bodyLimit)

	reader, err := request.MultipartReader()
	if err != nil {
		return nil, func() {}, apperr.ValidationError(MsgNotMultipart)
	}

	form := &Form{Files: map[string][]*File{}}
	fail := func(err error) (*Form, func(), error) {
		_ = form.RemoveAll()
		return nil, func() {}, err
	}

	for parts := 0; ; parts++ {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, func() { _ = form.RemoveAll() }, nil
		}
		if err != nil {
			return fail(classify(err))
		}
		if parts >= policy.MaxFiles+extraParts {
			_ = part.Close()
			return fail(policy.tooManyFiles())
		}

		err = form.receive(part, policy)
		_ = part.Close()
		if err != nil {
			return fail(classify(err))
		}
	}
}

func (form *Form) receive(part *multipart.Part, policy Policy) error {
	if part.FileName() == "" {
		_, err := io.Copy(io.Discard, part)
		return err
	}

	field := part.FormName()
	file := &File{Filename: part.FileName(), ContentType: part.Header.Get("Content-Type")}
	form.Files[field] = append(form.Files[field], file)
	limited := io.LimitReader(part, policy.MaxFileBytes+1)

	if len(form.Files[field]) > policy.MaxFiles {
		size, err := io.Copy(io.Discard, limited)
		file.Size = size
		if err != nil {
			return err
		}
		_, err = io.Copy(io.Discard, part)
		return err
	}

	if err := form.keep(file, limited); err != nil {
		return err
	}
	if file.Size > policy.MaxFileBytes {
		if err := os.Remove(file.path); err != nil {
			return err
		}
		file.path = ""
	}

	_, err := io.Copy(io.Discard, part)
	return err
}

// keep copies content into a fresh temp file inside the form's directory.
func (form *Form) keep(file *File, content io.Reader) error {
	if form.dir == "" {
		dir, err := os.MkdirTemp("", "easybuy-upload-")
		if err != nil {
			return err
		}
		form.dir = dir
	}

	target, err := os.CreateTemp(form.dir, "part-")
	if err != nil {
		return err
	}
	defer target.Close()

	file.path = target.Name()
	file.Size, err = io.Copy(target, content)
	return err
}

// classify turns a receive failure into the client-facing error.
func classify(err error) error {
	var tooLarge *http.MaxBytesError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &tooLarge):
		return apperr.ValidationError(MsgTooLarge)
	case errors.As(err, &pathErr):
		return apperr.Internal(fmt.Errorf("upload_spool_failed: %w", err))
	default:
		return apperr.ValidationError(MsgNotMultipart)
	}
}

// Saver writes one accepted file to storage. [blob.Store] satisfies it.
type Saver interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Save stores an accepted file under a fresh key built from the form field
// name and returns its public URL.
func Save(ctx context.Context, store Saver, field string, file Accepted) (string, error) {
	reader, err := file.File.Open()
	if err != nil {
		return "", fmt.Errorf("upload: failed to open %q: %w", file.File.Filename, err)
	}
	defer reader.Close()

	key := blob.NewKey(field, file.File.Filename, file.Extension)
	return store.Put(ctx, key, reader, file.File.Size, file.ContentType)
}
