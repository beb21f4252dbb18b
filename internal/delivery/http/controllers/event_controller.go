package controllers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"eventinvite/internal/delivery/http/helpers"
	"eventinvite/internal/domain"
)

// maxRosterBytes caps uploaded roster files at 5 MiB.
const maxRosterBytes = 5 << 20

// CreateEventRequest is the request body for POST /components/create-event.
// Field names follow the front-end form. When a roster file is attached the
// same fields arrive as multipart form values instead of JSON.
type CreateEventRequest struct {
	EventTitle       string `json:"eventTitle"`
	EventAddress     string `json:"eventAddress"`
	EventDescription string `json:"eventDescription"`
	MainUserName     string `json:"mainUserName"`
	MainUserEmail    string `json:"mainUserEmail"`
	MainUserPhone    string `json:"mainUserPhone"`
	MainUserAddress  string `json:"mainUserAddress"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventTitle) == "" {
		errs = append(errs, "eventTitle is required")
	}
	if strings.TrimSpace(c.MainUserName) == "" {
		errs = append(errs, "mainUserName is required")
	}
	return errs
}

// CreateEventResponse is the success body for POST /components/create-event.
type CreateEventResponse struct {
	EventID     string `json:"eventId"`
	EventURL    string `json:"eventUrl"`
	ImportError string `json:"importError,omitempty"`
}

// JoinEventRequest is the request body for POST /join-event/{eventID}.
type JoinEventRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	HasCar        bool   `json:"hasCar"`
	CanGiveRides  bool   `json:"canGiveRides"`
	MaxPassengers int    `json:"maxPassengers"`
}

// Validate implements Validator. The identifier field requirement depends on
// the deployment policy and is enforced by the service.
func (j JoinEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(j.Name) == "" {
		errs = append(errs, "name is required")
	}
	if j.MaxPassengers < 0 {
		errs = append(errs, "maxPassengers must not be negative")
	}
	return errs
}

// JoinEventResponse is the success body for POST /join-event/{eventID}.
type JoinEventResponse struct {
	Success bool `json:"success"`
	Updated bool `json:"updated"`
}

// SendInvitationsResponse is the success body for POST /invite-participants/{eventID}.
type SendInvitationsResponse struct {
	Success          bool `json:"success"`
	TotalInvitations int  `json:"totalInvitations"`
	SuccessfulSends  int  `json:"successfulSends"`
	FailedSends      int  `json:"failedSends"`
}

// EventController serves the event creation, join, and invitation routes.
type EventController struct {
	Logger      *slog.Logger
	Events      domain.EventService
	Invitations domain.InvitationService
}

func NewEventController(logger *slog.Logger, events domain.EventService, invitations domain.InvitationService) *EventController {
	return &EventController{
		Logger:      logger,
		Events:      events,
		Invitations: invitations,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event and returns its id and shareable join URL. Accepts JSON, or multipart/form-data with the same field names plus an optional "roster" CSV file of invitees. A malformed roster does not fail the request; the parse error is reported in importError.
// @Tags events
// @Accept json,mpfd
// @Produce json
// @Param event body CreateEventRequest true "Event fields"
// @Success 201 {object} controllers.CreateEventResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /components/create-event [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	var rosterBytes []byte

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxRosterBytes); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart payload")
			return
		}
		req = CreateEventRequest{
			EventTitle:       r.FormValue("eventTitle"),
			EventAddress:     r.FormValue("eventAddress"),
			EventDescription: r.FormValue("eventDescription"),
			MainUserName:     r.FormValue("mainUserName"),
			MainUserEmail:    r.FormValue("mainUserEmail"),
			MainUserPhone:    r.FormValue("mainUserPhone"),
			MainUserAddress:  r.FormValue("mainUserAddress"),
		}
		if errs := req.Validate(); len(errs) > 0 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
			return
		}
		data, err := readRosterFile(r)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		rosterBytes = data
	} else if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event := domain.NewEvent(req.EventTitle, req.EventAddress, req.EventDescription, domain.ContactInfo{
		Name:    req.MainUserName,
		Email:   req.MainUserEmail,
		Phone:   req.MainUserPhone,
		Address: req.MainUserAddress,
	}, time.Now())

	result, err := c.Events.CreateEvent(r.Context(), event, rosterBytes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "unexpected error")
		return
	}

	resp := CreateEventResponse{
		EventID:  result.Event.ID,
		EventURL: result.EventURL,
	}
	if result.ImportError != nil {
		resp.ImportError = result.ImportError.Error()
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// readRosterFile returns the bytes of the optional "roster" upload, or nil
// when no file was attached.
func readRosterFile(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("roster")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("roster file is unreadable")
	}
	defer func(f multipart.File) { _ = f.Close() }(file)
	data, err := io.ReadAll(io.LimitReader(file, maxRosterBytes))
	if err != nil {
		return nil, errors.New("roster file is unreadable")
	}
	return data, nil
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the full event record, including confirmed and invited participants.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /event/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "unexpected error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// JoinEvent godoc
// @Summary Join an event or update a previous submission
// @Description Inserts the participant, or replaces the existing record whose identifier field matches the submission. Submitting twice with the same identifier never creates two records.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param participant body JoinEventRequest true "Participant fields"
// @Success 200 {object} controllers.JoinEventResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /join-event/{eventID} [post]
func (c *EventController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req JoinEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant := &domain.Participant{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		HasCar:        req.HasCar,
		CanGiveRides:  req.CanGiveRides,
		MaxPassengers: req.MaxPassengers,
	}
	updated, err := c.Events.JoinEvent(r.Context(), eventID, participant)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "unexpected error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, JoinEventResponse{Success: true, Updated: updated})
}

// SendInvitations godoc
// @Summary Send invitation emails for an event
// @Description Sends one invitation per invited participant, concurrently. Individual send failures are counted in the response, never reported as a request failure. Marks the event's invitations as sent.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.SendInvitationsResponse
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /invite-participants/{eventID} [post]
func (c *EventController) SendInvitations(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	result, err := c.Invitations.SendInvitations(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "unexpected error")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, SendInvitationsResponse{
		Success:          true,
		TotalInvitations: result.Total,
		SuccessfulSends:  result.Succeeded,
		FailedSends:      result.Failed,
	})
}
