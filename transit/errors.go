package transit

import "errors"

// Errors
var (
	ErrUnknownNode     = errors.New("unknown node ID")
	ErrMalformedLine   = errors.New("malformed input line")
	ErrBadHeader       = errors.New("bad turn header")
	ErrBadAction       = errors.New("bad action descriptor")
	ErrBadDialect      = errors.New("unknown output dialect")
	ErrNoSession       = errors.New("journal session not found")
	ErrJournalClosed   = errors.New("journal is closed")
	ErrBadJournalParam = errors.New("bad journal parameter")
)
