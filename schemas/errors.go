package schemas

import "errors"

var (
	// ErrMissingKeywords indicates an alert without search keywords.
	ErrMissingKeywords = errors.New("schemas: keywords are required")

	// ErrMissingCookie indicates a cookie payload without the session token.
	ErrMissingCookie = errors.New("schemas: li_at cookie is required")

	// ErrMissingID indicates a request without its target identifier.
	ErrMissingID = errors.New("schemas: id is required")

	// ErrScoreOutOfRange indicates a relevance score outside 0-100.
	ErrScoreOutOfRange = errors.New("schemas: relevance score out of range")

	// ErrInvalidDate indicates a date not in YYYY, YYYY-MM, or YYYY-MM-DD form.
	ErrInvalidDate = errors.New("schemas: invalid partial date")

	// ErrInvalidRemote indicates an unknown remote work level.
	ErrInvalidRemote = errors.New("schemas: invalid remote level")
)
