package llm

import "errors"

var (
	ErrUnsupportedProvider   = errors.New("unknown or unsupported provider")
	ErrMissingCredential     = errors.New("missing credential")
	ErrConnectionUnavailable = errors.New("connection unavailable")
	ErrBackend               = errors.New("backend error")
	ErrEmptyResponse         = errors.New("empty response")
)
