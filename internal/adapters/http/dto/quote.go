package dto

// QuoteResponse carries a single displayed quote.
type QuoteResponse struct {
	Quote string `json:"quote"`
}

// QuoteListResponse carries the full managed quote list.
type QuoteListResponse struct {
	Quotes []string `json:"quotes"`
	Count  int      `json:"count"`
}

// CastRequest asks for a quote to be pushed to a composer. Text is
// optional; when empty the server casts a freshly picked quote.
type CastRequest struct {
	Text string `json:"text" validate:"omitempty,notempty"`
}

// CastResponse reports which channel handled the cast and the notice to
// show the user.
type CastResponse struct {
	Channel string `json:"channel"`
	Notice  string `json:"notice"`
}

// UnlockRequest opens an admin session.
type UnlockRequest struct {
	Password string `json:"password" validate:"required"`
}

// UnlockResponse carries the opaque session token for subsequent admin
// requests.
type UnlockResponse struct {
	Token string `json:"token"`
}

// AddQuoteRequest appends a new quote to the front of the list.
type AddQuoteRequest struct {
	Text string `json:"text" validate:"required,notempty"`
}

// ConfirmRequest carries the explicit confirmation destructive admin
// operations require.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// SetSecretRequest changes the admin secret.
type SetSecretRequest struct {
	Secret string `json:"secret" validate:"required"`
}
