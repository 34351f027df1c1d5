package events

import "errors"

var (
	// ErrPublisherClosed is returned when sending or listening after Close
	ErrPublisherClosed = errors.New("event publisher closed")

	// ErrNoConnection is returned by a publisher without a Redis client
	ErrNoConnection = errors.New("event publisher has no redis connection")
)
