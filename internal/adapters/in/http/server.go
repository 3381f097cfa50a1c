// Package http provides the inbound HTTP adapter: JSON endpoints, token
// authentication, and rate limiting on top of echo.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"lockerhub/internal/core/application/usecases/commands"
	"lockerhub/internal/core/application/usecases/queries"
	"lockerhub/internal/core/domain/model/account"
	"lockerhub/internal/core/domain/model/kernel"
	"lockerhub/internal/core/domain/model/locker"
	"lockerhub/internal/core/domain/model/parcel"
	"lockerhub/internal/core/ports"
	"lockerhub/internal/notify"
	"lockerhub/internal/pkg/diaglog"
	"lockerhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	provisionLockerHandler commands.ProvisionLockerCommandHandler
	registerParcelHandler  commands.RegisterParcelCommandHandler
	placeParcelHandler     commands.PlaceParcelCommandHandler
	applyTransitionHandler commands.ApplyTransitionCommandHandler

	getAvailableCellsHandler    queries.GetAvailableCellsQueryHandler
	getUncollectedParcelsHandler queries.GetUncollectedParcelsQueryHandler

	notifications *notify.Queue
	diagnostics   *diaglog.Buffer
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	provisionLockerHandler commands.ProvisionLockerCommandHandler,
	registerParcelHandler commands.RegisterParcelCommandHandler,
	placeParcelHandler commands.PlaceParcelCommandHandler,
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	getAvailableCellsHandler queries.GetAvailableCellsQueryHandler,
	getUncollectedParcelsHandler queries.GetUncollectedParcelsQueryHandler,
	notifications *notify.Queue,
	diagnostics *diaglog.Buffer,
) *Server {
	return &Server{
		provisionLockerHandler:       provisionLockerHandler,
		registerParcelHandler:        registerParcelHandler,
		placeParcelHandler:           placeParcelHandler,
		applyTransitionHandler:       applyTransitionHandler,
		getAvailableCellsHandler:     getAvailableCellsHandler,
		getUncollectedParcelsHandler: getUncollectedParcelsHandler,
		notifications:                notifications,
		diagnostics:                  diagnostics,
	}
}

// RegisterRoutes mounts all endpoints. Everything under /api/v1 requires a
// resolved identity; /health does not.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *TokenAuth, limiter *RateLimiter) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", limiter.Middleware(), auth.Middleware())
	api.POST("/lockers", s.ProvisionLocker)
	api.POST("/parcels", s.RegisterParcel)
	api.POST("/parcels/:id/place", s.PlaceParcel)
	api.POST("/parcels/:id/status", s.ApplyTransition)
	api.GET("/cells/available", s.GetAvailableCells)
	api.GET("/parcels/uncollected", s.GetUncollectedParcels)
	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/dismiss", s.DismissNotification)
	api.GET("/diagnostics", s.GetDiagnostics)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewCellRequest describes one cell in a provisioning request.
type NewCellRequest struct {
	Code string `json:"code"`
	Size string `json:"size"`
}

// NewLockerRequest is the body for POST /api/v1/lockers.
type NewLockerRequest struct {
	DeviceID string           `json:"deviceId"`
	City     string           `json:"city"`
	Street   string           `json:"street"`
	Cells    []NewCellRequest `json:"cells"`
}

// ProvisionLocker handles POST /api/v1/lockers - registers a new locker
// with its initial cells.
func (s *Server) ProvisionLocker(c echo.Context) error {
	actor, ok := identityFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req NewLockerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	address, err := kernel.NewAddress(req.City, req.Street)
	if err != nil {
		return mapError(c, err)
	}

	cells := make([]commands.CellSpec, 0, len(req.Cells))
	for _, cellReq := range req.Cells {
		size, sizeErr := locker.SizeClassFromString(cellReq.Size)
		if sizeErr != nil {
			return mapError(c, sizeErr)
		}
		cells = append(cells, commands.CellSpec{Code: cellReq.Code, Size: size})
	}

	lockerID := kernel.NewUUID()
	cmd, err := commands.NewProvisionLockerCommand(actor, lockerID, req.DeviceID, address, cells)
	if err != nil {
		return mapError(c, err)
	}

	if err = s.provisionLockerHandler.Handle(c.Request().Context(), cmd); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": lockerID.String()})
}

// NewParcelRequest is the body for POST /api/v1/parcels.
type NewParcelRequest struct {
	Recipient string `json:"recipient"`
}

// RegisterParcel handles POST /api/v1/parcels - registers a new parcel.
func (s *Server) RegisterParcel(c echo.Context) error {
	actor, ok := identityFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req NewParcelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewRegisterParcelCommand(actor, parcelID, req.Recipient)
	if err != nil {
		return mapError(c, err)
	}

	if err = s.registerParcelHandler.Handle(c.Request().Context(), cmd); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": parcelID.String()})
}

// PlaceParcelRequest is the body for POST /api/v1/parcels/:id/place.
// At least one filter field is required.
type PlaceParcelRequest struct {
	DeviceID string `json:"deviceId"`
	City     string `json:"city"`
	Street   string `json:"street"`
}

// PlacementResponse reports the allocated cell.
type PlacementResponse struct {
	LockerID string `json:"lockerId"`
	CellID   string `json:"cellId"`
	CellCode string `json:"cellCode"`
}

// PlaceParcel handles POST /api/v1/parcels/:id/place - allocates a cell for
// the parcel.
func (s *Server) PlaceParcel(c echo.Context) error {
	actor, ok := identityFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid parcel id")
	}

	var req PlaceParcelRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	filter := ports.LockerFilter{DeviceID: req.DeviceID, City: req.City, Street: req.Street}
	cmd, err := commands.NewPlaceParcelCommand(actor, parcelID, filter)
	if err != nil {
		return mapError(c, err)
	}

	result, err := s.placeParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, PlacementResponse{
		LockerID: result.LockerID.String(),
		CellID:   result.CellID.String(),
		CellCode: result.CellCode,
	})
}

// TransitionRequest is the body for POST /api/v1/parcels/:id/status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// ApplyTransition handles POST /api/v1/parcels/:id/status - moves the
// parcel to a new lifecycle status.
func (s *Server) ApplyTransition(c echo.Context) error {
	actor, ok := identityFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	parcelID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid parcel id")
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return badRequest(c, "Unknown status: "+req.Status)
	}

	cmd, err := commands.NewApplyTransitionCommand(actor, parcelID, status)
	if err != nil {
		return mapError(c, err)
	}

	if err = s.applyTransitionHandler.Handle(c.Request().Context(), cmd); err != nil {
		return mapError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AvailableCellJSON is one free cell in the inventory response.
type AvailableCellJSON struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Size string `json:"size"`
}

// AvailableLockerJSON is one locker row in the inventory response.
type AvailableLockerJSON struct {
	ID                 string              `json:"id"`
	DeviceID           string              `json:"deviceId"`
	City               string              `json:"city"`
	Street             string              `json:"street"`
	AvailableCellCount int                 `json:"availableCellCount"`
	Cells              []AvailableCellJSON `json:"cells"`
}

// GetAvailableCells handles GET /api/v1/cells/available - free-cell
// inventory with filtering and paging.
func (s *Server) GetAvailableCells(c echo.Context) error {
	offset, limit, err := pagingParams(c)
	if err != nil {
		return badRequest(c, "Invalid paging parameters")
	}

	query, err := queries.NewGetAvailableCellsQuery(
		c.QueryParam("deviceId"),
		c.QueryParam("city"),
		c.QueryParam("street"),
		offset,
		limit,
	)
	if err != nil {
		return mapError(c, err)
	}

	lockers, err := s.getAvailableCellsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return mapError(c, err)
	}

	response := make([]AvailableLockerJSON, 0, len(lockers))
	for _, row := range lockers {
		cells := make([]AvailableCellJSON, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, AvailableCellJSON{
				ID:   cell.ID.String(),
				Code: cell.Code,
				Size: cell.Size,
			})
		}
		response = append(response, AvailableLockerJSON{
			ID:                 row.ID.String(),
			DeviceID:           row.DeviceID,
			City:               row.City,
			Street:             row.Street,
			AvailableCellCount: row.AvailableCellCount,
			Cells:              cells,
		})
	}

	return c.JSON(http.StatusOK, response)
}

// UncollectedParcelJSON is one pending parcel in the response.
type UncollectedParcelJSON struct {
	ID        string  `json:"id"`
	Recipient string  `json:"recipient"`
	Status    string  `json:"status"`
	CellID    *string `json:"cellId"`
}

// GetUncollectedParcels handles GET /api/v1/parcels/uncollected.
func (s *Server) GetUncollectedParcels(c echo.Context) error {
	query := queries.NewGetUncollectedParcelsQuery()

	parcels, err := s.getUncollectedParcelsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return mapError(c, err)
	}

	response := make([]UncollectedParcelJSON, 0, len(parcels))
	for _, row := range parcels {
		var cellID *string
		if row.CellID != nil {
			str := row.CellID.String()
			cellID = &str
		}
		response = append(response, UncollectedParcelJSON{
			ID:        row.ID.String(),
			Recipient: row.Recipient,
			Status:    row.Status,
			CellID:    cellID,
		})
	}

	return c.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications - visible transient
// notifications in insertion order.
func (s *Server) GetNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, s.notifications.Entries())
}

// DismissNotification handles POST /api/v1/notifications/:id/dismiss.
// Dismissing an expired or unknown notification succeeds silently.
func (s *Server) DismissNotification(c echo.Context) error {
	handle, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid notification id")
	}

	s.notifications.Dismiss(handle)
	return c.NoContent(http.StatusNoContent)
}

// GetDiagnostics handles GET /api/v1/diagnostics - the recent diagnostic
// entries, oldest first. Admin only.
func (s *Server) GetDiagnostics(c echo.Context) error {
	actor, ok := identityFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	if err := actor.RequireRole(account.Admin); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, s.diagnostics.Entries())
}

func pagingParams(c echo.Context) (offset int, limit int, err error) {
	if raw := c.QueryParam("offset"); raw != "" {
		if offset, err = parseNonNegativeInt(raw); err != nil {
			return 0, 0, err
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = parseNonNegativeInt(raw); err != nil {
			return 0, 0, err
		}
	}
	return offset, limit, nil
}

func parseNonNegativeInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Missing identity",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates domain and application errors into HTTP responses.
func mapError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, parcel.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, locker.ErrCellStateConflict):
		status = http.StatusConflict
	case errors.Is(err, account.ErrForbidden), errors.Is(err, account.ErrIdentityNotApproved):
		status = http.StatusForbidden
	case errors.Is(err, ports.ErrConcurrentReservation):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrNoCellsSpecified):
		status = http.StatusBadRequest
	}

	return c.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
