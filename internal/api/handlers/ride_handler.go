package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/gocomet/ride-records/pkg/errors"
)

const maxBodyBytes = 1 << 20

// MsgBodyNotObject is returned when the create body is not a JSON object
const MsgBodyNotObject = "Request body must be a JSON object"

// CreateRide handles POST /rides
func (h *Handlers) CreateRide(c *gin.Context) {
	decoder := json.NewDecoder(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		// an empty body is an empty object; the field rules report what is missing
		if !errors.Is(err, io.EOF) {
			h.respondError(c, apperrors.Validation(MsgBodyNotObject))
			return
		}
	}
	// the object must be the whole body
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		h.respondError(c, apperrors.Validation(MsgBodyNotObject))
		return
	}
	if body == nil {
		body = map[string]interface{}{}
	}

	created, err := h.Rides.CreateRide(c.Request.Context(), body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListRides handles GET /rides
func (h *Handlers) ListRides(c *gin.Context) {
	page, err := h.Rides.ListRides(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetRide handles GET /rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		// no such row can exist
		h.respondError(c, apperrors.ErrRidesNotFound)
		return
	}

	found, err := h.Rides.GetRide(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
