package domain

import "errors"

var (
	ErrMalformedPayload    = errors.New("malformed payload")
	ErrStaleUpdate         = errors.New("stale update discarded")
	ErrSubmissionRejected  = errors.New("order rejected")
	ErrOrderNotFound       = errors.New("order not found")
	ErrWSDisconnect        = errors.New("websocket disconnected")
	ErrInvalidOrderRequest = errors.New("invalid order parameters")
)
