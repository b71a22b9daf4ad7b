package usecase

import (
	"context"
	"errors"
)

// Element is a single node in a parsed document tree.
type Element interface {
	Text() string
	Attr(name string) (string, bool)
	FindFirst(tag string, attrs map[string]string) (Element, bool)
	FindAll(tag string, attrs map[string]string) []Element
}

// Page is a queryable document tree built from raw markup.
type Page interface {
	FindFirst(tag string, attrs map[string]string) (Element, bool)
	FindAll(tag string, attrs map[string]string) []Element
}

// Requester fetches a page and returns it as a parsed document tree.
type Requester interface {
	Get(ctx context.Context, url string) (Page, error)
}

// Storer persists collected reviews to a destination.
type Storer interface {
	Save(reviews []string, destination string) error
}

// Fetch failure reasons. Each one is terminal for the crawl: the loop
// keeps what it has accumulated instead of retrying.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrFetchFailed = errors.New("fetch failed")
	ErrTransport   = errors.New("transport failure")
)
