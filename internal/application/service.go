// Package application holds the resource services over the Festify REST API
// and the pure query helpers the pages use on fetched data.
package application

import (
	"context"
	"io"
	"net/url"

	"github.com/sirupsen/logrus"
)

// API is the transport the services call. *backend.Client satisfies it.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
	PublicGet(ctx context.Context, path string, out any) error
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// pathOf joins escaped segments onto base: pathOf("/api/events", "college", id).
func pathOf(base string, segments ...string) string {
	p := base
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}
