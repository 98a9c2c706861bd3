package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// AddBook registers a book from its isbn: the format is validated, the
// collection is checked for a duplicate, the metadata is fetched from
// the external catalog and the record is persisted.
//
// @Summary Add a book by ISBN
// @Tags books
// @Accept json
// @Produce json
// @Param payload body AddBookRequest true "isbn to register"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIError "malformed isbn"
// @Failure 404 {object} APIError "isbn unknown to the catalog"
// @Failure 409 {object} APIError "isbn already registered"
// @Failure 500 {object} APIError
// @Router /books [post]
func (api *APIHandler) AddBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload AddBookRequest
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.logger.Error("failed to add book", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.AddByISBN(r.Context(), payload.ISBN)
	if err != nil {
		api.logger.Error("failed to add book", zap.String("book.isbn", payload.ISBN), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to add the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to add book", zap.String("book.isbn", book.ISBN), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "Book added successfully.", book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// AddBookManually registers a book from a full client supplied record,
// skipping the catalog lookup. isbn, title and authors are required.
//
// @Summary Add a book manually
// @Tags books
// @Accept json
// @Produce json
// @Param payload body Book true "book record"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIError
// @Failure 409 {object} APIError
// @Failure 500 {object} APIError
// @Router /books/manual [post]
func (api *APIHandler) AddBookManually(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var book Book
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	if err := DecodeRequestBody(r, &book); err != nil {
		api.logger.Error("failed to add book manually", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if err := ValidateManualBookRequestBody(&book); err != nil {
		api.logger.Error("failed to add book manually", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.AddManually(r.Context(), book)
	if err != nil {
		api.logger.Error("failed to add book manually", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to add the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to add book manually", zap.String("book.isbn", book.ISBN), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "Book added successfully.", book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllBooks lists the collection one page at a time.
//
// @Summary List books
// @Tags books
// @Produce json
// @Param limit query int false "page size, defaults to 50"
// @Param skip query int false "records to skip, defaults to 0"
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIError
// @Router /books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	page := ParsePageRequest(r.URL.Query())
	books, pagination, err := api.bookService.GetAll(r.Context(), page)
	if err != nil {
		api.logger.Error("failed to get all books", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all books", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all books", zap.String("request.id", requestID))
	resp := PaginatedResponse(requestID, http.StatusOK, "Books fetched successfully.", books, pagination, nil)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneBook fetches a single book record by its isbn.
//
// @Summary Fetch one book
// @Tags books
// @Produce json
// @Param isbn path string true "book isbn"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /books/{isbn} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	book, err := api.bookService.GetOne(r.Context(), isbn)
	if err != nil {
		api.logger.Error("failed to get book", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to get the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get book", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Book fetched successfully.", book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook applies a partial update onto a book record. The isbn field
// of the payload is ignored, the key is immutable.
//
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "book isbn"
// @Param payload body BookUpdate true "fields to update"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Failure 500 {object} APIError
// @Router /books/{isbn} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update BookUpdate
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	if err := DecodeRequestBody(r, &update); err != nil {
		api.logger.Error("failed to update book", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.Update(r.Context(), isbn, update)
	if err != nil {
		api.logger.Error("failed to update book", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to update the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update book", zap.String("book.isbn", book.ISBN), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Book updated successfully.", book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// DeleteOneBook removes a book record by its isbn.
//
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param isbn path string true "book isbn"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /books/{isbn} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	err := api.bookService.Delete(r.Context(), isbn)
	if err != nil {
		api.logger.Error("failed to delete book", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to delete the book", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete book", zap.String("book.isbn", isbn), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Book deleted successfully.", EmptyData)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateReadingStatus moves a book to another reading status.
//
// @Summary Update the reading status
// @Tags books
// @Accept json
// @Produce json
// @Param isbn path string true "book isbn"
// @Param payload body StatusUpdateRequest true "new reading status"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /books/{isbn}/status [put]
func (api *APIHandler) UpdateReadingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload StatusUpdateRequest
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	isbn := ps.ByName("isbn")
	if err := DecodeRequestBody(r, &payload); err != nil {
		api.logger.Error("failed to update reading status", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the reading status", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.UpdateReadingStatus(r.Context(), isbn, payload.ReadingStatus)
	if err != nil {
		api.logger.Error("failed to update reading status", zap.String("book.isbn", isbn), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to update the reading status", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update reading status",
		zap.String("book.isbn", book.ISBN),
		zap.String("book.status", string(book.ReadingStatus)),
		zap.String("request.id", requestID),
	)
	resp := GenericResponse(requestID, http.StatusOK, "Reading status updated successfully.", book)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// SearchBooks filters the collection by free-text query, title, author,
// category and reading status. At least one criteria is required;
// supplying several narrows the result to their intersection.
//
// @Summary Search books
// @Tags search
// @Produce json
// @Param query query string false "substring matched against title, authors or description"
// @Param title query string false "title substring"
// @Param author query string false "author substring"
// @Param category query string false "category substring"
// @Param reading_status query string false "exact reading status" Enums(unread, in_progress, read)
// @Param limit query int false "page size, defaults to 50"
// @Param skip query int false "records to skip, defaults to 0"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError "no criteria supplied or unknown reading status"
// @Failure 500 {object} APIError
// @Router /search [get]
func (api *APIHandler) SearchBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	filter, err := ParseSearchFilter(r.URL.Query())
	if err != nil {
		api.logger.Error("search rejected: unknown reading status", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "unknown reading status. expect unread or in_progress or read.", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if filter.IsZero() {
		api.logger.Error("search rejected: no criteria supplied", zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "at least one search criteria is required", EmptyData)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	page := ParsePageRequest(r.URL.Query())
	books, pagination, err := api.bookService.Search(r.Context(), filter, page)
	if err != nil {
		api.logger.Error("failed to search books", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to search books", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to search books", zap.String("request.id", requestID))
	resp := PaginatedResponse(requestID, http.StatusOK, "Books searched successfully.", books, pagination, filter.Criteria())
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetBooksByAuthor lists the books whose authors contain the given substring.
//
// @Summary List books by author
// @Tags search
// @Produce json
// @Param author path string true "author substring"
// @Success 200 {object} APIResponse
// @Router /authors/{author}/books [get]
func (api *APIHandler) GetBooksByAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	api.listBooks(w, r, "author", func(page PageRequest) ([]Book, Pagination, error) {
		return api.bookService.ByAuthor(r.Context(), ps.ByName("author"), page)
	})
}

// GetBooksByCategory lists the books whose categories contain the given substring.
//
// @Summary List books by category
// @Tags search
// @Produce json
// @Param category path string true "category substring"
// @Success 200 {object} APIResponse
// @Router /categories/{category}/books [get]
func (api *APIHandler) GetBooksByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	api.listBooks(w, r, "category", func(page PageRequest) ([]Book, Pagination, error) {
		return api.bookService.ByCategory(r.Context(), ps.ByName("category"), page)
	})
}

// GetBooksByStatus lists the books holding the exact given reading status.
//
// @Summary List books by reading status
// @Tags search
// @Produce json
// @Param status path string true "read, unread or in_progress"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIError
// @Router /statuses/{status}/books [get]
func (api *APIHandler) GetBooksByStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	api.listBooks(w, r, "status", func(page PageRequest) ([]Book, Pagination, error) {
		return api.bookService.ByStatus(r.Context(), ps.ByName("status"), page)
	})
}

// listBooks factorizes the filtered listing handlers: parse the window,
// run the lookup and shape the paginated response.
func (api *APIHandler) listBooks(w http.ResponseWriter, r *http.Request, kind string, lookup func(PageRequest) ([]Book, Pagination, error)) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	page := ParsePageRequest(r.URL.Query())
	books, pagination, err := lookup(page)
	if err != nil {
		api.logger.Error("failed to list books by "+kind, zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, HTTPStatusFromError(err), "failed to list books by "+kind, err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to list books by "+kind, zap.String("request.id", requestID))
	resp := PaginatedResponse(requestID, http.StatusOK, "Books fetched successfully.", books, pagination, nil)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetReadingStatistics aggregates reading counts over the whole collection.
//
// @Summary Reading statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIError
// @Router /statistics [get]
func (api *APIHandler) GetReadingStatistics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	stats, err := api.bookService.Statistics(r.Context())
	if err != nil {
		api.logger.Error("failed to get reading statistics", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get reading statistics", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get reading statistics", zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Reading statistics fetched successfully.", stats)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
