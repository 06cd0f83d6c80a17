package http

import (
	"net/http"

	"conciergerie/internal/core"
	"conciergerie/internal/log"
	"conciergerie/internal/metrics"
	"conciergerie/internal/repository"
	"conciergerie/internal/services"
)

// visible returns the properties and bookings the caller may list.
// Clients see their own bookings and the properties they booked.
func visible(id Identity, snap core.Snapshot) ([]core.Property, []core.Booking) {
	if id.Role != core.RoleClient {
		return metrics.ResolveScope(id.Scope(), snap.Properties, snap.Bookings)
	}
	bookings := metrics.ClientBookings(id.UserID, snap.Bookings)
	booked := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		booked[b.PropertyID] = struct{}{}
	}
	props := make([]core.Property, 0)
	for _, p := range snap.Properties {
		if _, ok := booked[p.ID]; ok {
			props = append(props, p)
		}
	}
	return props, bookings
}

// loadVisible reads a snapshot and narrows it to the caller.
func (s *Server) loadVisible(w http.ResponseWriter, r *http.Request) (core.Snapshot, bool) {
	snap, err := repository.LoadSnapshot(r.Context(), s.repo)
	if err != nil {
		writeServiceError(w, r, err, log.OpList)
		return core.Snapshot{}, false
	}
	id, _ := CurrentIdentity(r)
	props, bookings := visible(id, snap)
	return core.Snapshot{
		Properties: props,
		Bookings:   bookings,
		Documents:  metrics.ScopeDocuments(bookings, snap.Documents),
		CheckIns:   metrics.ScopeCheckIns(bookings, snap.CheckIns),
	}, true
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, snap.Properties)
	}
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, snap.Bookings)
	}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, snap.Documents)
	}
}

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, snap.CheckIns)
	}
}

func (s *Server) handleCheckInBoard(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, metrics.BuildCheckInBoard(snap.CheckIns))
	}
}

func (s *Server) handlePlanning(w http.ResponseWriter, r *http.Request) {
	if snap, ok := s.loadVisible(w, r); ok {
		writeJSON(w, http.StatusOK, metrics.BuildPlanning(snap.Properties, snap.Bookings))
	}
}

func (s *Server) handleListOwners(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpList)
		return
	}
	props, err := s.repo.ListProperties(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpList)
		return
	}
	writeJSON(w, http.StatusOK, metrics.ListOwners(users, props))
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadVisible(w, r)
	if !ok {
		return
	}
	msgs, err := s.repo.ListMessages(r.Context())
	if err != nil {
		writeServiceError(w, r, err, log.OpList)
		return
	}
	writeJSON(w, http.StatusOK, metrics.ScopeMessages(snap.Bookings, msgs))
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.messages.Templates())
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	b, err := s.bookings.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, log.OpCreate)
		return
	}
	// Every cached overview may include the new booking.
	s.overviews.Invalidate()
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req services.SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	m, err := s.messages.Send(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, log.OpAppend)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
