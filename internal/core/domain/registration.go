package domain

// Registration is a (user, event) membership pair. The store enforces
// uniqueness on the pair; joining twice leaves a single row.
type Registration struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// Participant is one roster entry for an event, as shown to its creator.
type Participant struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
