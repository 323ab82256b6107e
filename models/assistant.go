package models

// RouteRequest is an inbound conversational message to be routed to a domain.
type RouteRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// RouteResponse names the domain that should own the turn.
type RouteResponse struct {
	Route string `json:"route"`
}

// SummaryPayload is the payload for the best-effort conversation summary task.
type SummaryPayload struct {
	UserID     string   `json:"user_id"`
	Transcript []string `json:"transcript"`
}

// ReminderPayload is the payload for the tour reminder task scheduled when a
// booking is confirmed.
type ReminderPayload struct {
	Domain     string `json:"domain"`
	UserID     string `json:"user_id"`
	BookingRef string `json:"booking_ref"`
	StartISO   string `json:"start_iso"`
}
