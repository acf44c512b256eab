// Copyright (c) 2026 EasyBuy. All rights reserved.

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/easybuy/api/internal/platform/request"
	"github.com/easybuy/api/internal/platform/respond"
	"github.com/easybuy/api/internal/platform/upload"
	"github.com/easybuy/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the product catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new product [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with product endpoints.
//
// # Endpoints
//   - GET    /             : Active catalogue, paginated.
//   - GET    /{id}         : Product detail with images.
//   - POST   /             : Create (auth).
//   - PUT    /{id}         : Partial update (auth, seller only).
//   - DELETE /{id}         : Delete (auth, seller only).
//   - POST   /{id}/images  : Upload images (auth, seller only).
func (handler *Handler) Routes(gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// ## Seller Actions
	router.Group(func(seller chi.Router) {
		seller.Use(gate)
		seller.Post("/", handler.create)
		seller.Put("/{id}", handler.update)
		seller.Delete("/{id}", handler.delete)
		seller.Post("/{id}/images", handler.uploadImages)
	})

	return router
}

// # Response Payloads

type createResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type imagesResponse struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// # Public Endpoints

/*
GET /api/products.

Request:
  - page: int (default 1)
  - limit: int (default 20, max 100)

Response:
  - 200: {data: []Listing, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	listings, meta, err := handler.service.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listings, meta)
}

/*
GET /api/products/{id}.

Response:
  - 200: Detail (images is [] when there are none)
  - 404: Product not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	productID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// # Seller Endpoints

/*
POST /api/products.

Request:
  - Body: CreateInput (name, description, price)

Response:
  - 201: {id, message}
  - 400: Invalid input
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), identity, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, createResponse{ID: product.ID, Message: MsgCreated})
}

/*
PUT /api/products/{id}.

Response:
  - 200: {message}
  - 403: Not the seller
  - 404: Product not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), identity, productID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Message{Message: MsgUpdated})
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), identity, productID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Message{Message: MsgDeleted})
}

/*
POST /api/products/{id}/images.

Request:
  - multipart/form-data, up to 5 images in field "images"

Response:
  - 201: {message, files} with only the accepted files
  - 400: Too many files, or none valid
  - 403/404: Ownership
*/
func (handler *Handler) uploadImages(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	form, cleanup, err := upload.ParseForm(writer, request, handler.service.ImagePolicy())
	defer cleanup()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	urls, err := handler.service.AddImages(request.Context(), identity, productID, form.Files[FieldImages])
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, imagesResponse{Message: MsgImagesUploaded, Files: urls})
}
