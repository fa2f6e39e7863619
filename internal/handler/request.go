package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"product-catalog/internal/model"
)

// Form and JSON field names shared with existing clients.
const (
	fieldCategory    = "categoria"
	fieldName        = "nome"
	fieldDescription = "descricao"
	fieldValue       = "valor"
	fieldImage       = "imagem"
)

// multipartMemory is how much of a multipart body is held in memory
// before file parts spill to disk.
const multipartMemory = 8 << 20

var errBodyTooLarge = errors.New("request body too large")

// NumericText accepts a JSON number or a JSON string and keeps its text.
type NumericText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("valor must be a number or a string: %w", err)
	}
	*n = NumericText(num.String())
	return nil
}

// productRequest is the decoded body of a create or update request.
// Nil fields were absent.
type productRequest struct {
	Category    *string      `json:"categoria"`
	Name        *string      `json:"nome"`
	Description *string      `json:"descricao"`
	Value       *NumericText `json:"valor"`
	Image       *string      `json:"imagem"`

	upload *model.Upload
}

func (req *productRequest) imageInput() model.ImageInput {
	in := model.ImageInput{Upload: req.upload}
	if req.Image != nil {
		in.Reference = *req.Image
	}
	return in
}

// toInput converts the request for create. Absent fields become empty.
func (req *productRequest) toInput() *model.ProductInput {
	in := &model.ProductInput{
		Description: req.Description,
		Image:       req.imageInput(),
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Value != nil {
		in.Value = string(*req.Value)
	}
	return in
}

// toUpdate converts the request for update, keeping presence information.
func (req *productRequest) toUpdate() *model.ProductUpdate {
	u := &model.ProductUpdate{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.imageInput(),
	}
	if req.Value != nil {
		v := string(*req.Value)
		u.Value = &v
	}
	return u
}

// decodeProductRequest reads a JSON, urlencoded or multipart body.
// The returned cleanup must be called once the request is handled.
func decodeProductRequest(w http.ResponseWriter, r *http.Request, maxBytes int64) (*productRequest, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, noop, classifyBodyError(err)
		}
		cleanup := func() {
			_ = r.MultipartForm.RemoveAll()
		}

		req := formRequest(r.MultipartForm.Value)

		file, header, err := r.FormFile(fieldImage)
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			cleanup()
			return nil, noop, classifyBodyError(err)
		}
		if file != nil {
			req.upload = &model.Upload{
				Filename: header.Filename,
				Size:     header.Size,
				Content:  file,
			}
			return req, func() {
				_ = file.Close()
				cleanup()
			}, nil
		}
		return req, cleanup, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, noop, classifyBodyError(err)
		}
		return formRequest(r.PostForm), noop, nil

	default:
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return &req, noop, nil
			}
			return nil, noop, classifyBodyError(err)
		}
		return &req, noop, nil
	}
}

// formRequest maps form values to a request. A key that is present with an
// empty value counts as supplied.
func formRequest(values url.Values) *productRequest {
	lookup := func(key string) *string {
		v, ok := values[key]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}

	req := &productRequest{
		Category:    lookup(fieldCategory),
		Name:        lookup(fieldName),
		Description: lookup(fieldDescription),
		Image:       lookup(fieldImage),
	}
	if v := lookup(fieldValue); v != nil {
		n := NumericText(*v)
		req.Value = &n
	}
	return req
}

func classifyBodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return model.ErrInvalidJSON
}
