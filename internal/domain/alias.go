package domain

// Alias maps a short name to a ticket id. Many aliases may point at the
// same ticket; duplicates are tolerated and lookup returns the first match.
type Alias struct {
	TicketID string
	Alias    string
}
