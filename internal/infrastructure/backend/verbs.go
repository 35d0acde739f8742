package backend

import (
	"context"
	"net/http"
)

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.AuthenticatedRequest(ctx, path, RequestOptions{Method: http.MethodGet}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.AuthenticatedRequest(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.AuthenticatedRequest(ctx, path, RequestOptions{Method: http.MethodPut, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.AuthenticatedRequest(ctx, path, RequestOptions{Method: http.MethodPatch, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.AuthenticatedRequest(ctx, path, RequestOptions{Method: http.MethodDelete}, nil)
}

func (c *Client) PublicGet(ctx context.Context, path string, out any) error {
	return c.PublicRequest(ctx, path, RequestOptions{Method: http.MethodGet}, out)
}

func (c *Client) PublicPost(ctx context.Context, path string, body, out any) error {
	return c.PublicRequest(ctx, path, RequestOptions{Method: http.MethodPost, Body: body}, out)
}

func (c *Client) PublicPut(ctx context.Context, path string, body, out any) error {
	return c.PublicRequest(ctx, path, RequestOptions{Method: http.MethodPut, Body: body}, out)
}

func (c *Client) PublicPatch(ctx context.Context, path string, body, out any) error {
	return c.PublicRequest(ctx, path, RequestOptions{Method: http.MethodPatch, Body: body}, out)
}

func (c *Client) PublicDelete(ctx context.Context, path string) error {
	return c.PublicRequest(ctx, path, RequestOptions{Method: http.MethodDelete}, nil)
}
