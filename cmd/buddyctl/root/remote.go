package root

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"treehouse/internal/app/action"
	"treehouse/internal/app/replay"
	"treehouse/internal/app/status"
)

type remoteSession struct {
	base   string
	client *client.Client
}

func newRemoteSession(base string) (*remoteSession, error) {
	c, err := client.NewClient(
		client.WithDialTimeout(2*time.Second),
		client.WithClientReadTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	return &remoteSession{base: base, client: c}, nil
}

func (r *remoteSession) Act(ctx context.Context, req action.Request) (action.Response, error) {
	var out action.Response
	err := r.do(ctx, consts.MethodPost, "/api/buddy/actions", req, &out)
	return out, err
}

func (r *remoteSession) Status(ctx context.Context) (status.Response, error) {
	var out status.Response
	err := r.do(ctx, consts.MethodGet, "/api/buddy/state", nil, &out)
	return out, err
}

func (r *remoteSession) Events(ctx context.Context, req replay.Request) (replay.Response, error) {
	q := url.Values{}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if len(req.Types) > 0 {
		q.Set("type", strings.Join(req.Types, ","))
	}
	if req.OccurredFrom > 0 {
		q.Set("occurred_from", strconv.FormatInt(req.OccurredFrom, 10))
	}
	if req.OccurredTo > 0 {
		q.Set("occurred_to", strconv.FormatInt(req.OccurredTo, 10))
	}
	path := "/api/buddy/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out replay.Response
	err := r.do(ctx, consts.MethodGet, path, nil, &out)
	return out, err
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r *remoteSession) do(ctx context.Context, method, path string, body, out any) error {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetMethod(method)
	req.SetRequestURI(r.base + path)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(b)
	}

	if err := r.client.Do(ctx, req, resp); err != nil {
		return fmt.Errorf("store is owned by the server at %s, which is unreachable: %w", r.base, err)
	}
	if resp.StatusCode() != consts.StatusOK {
		var e apiError
		if json.Unmarshal(resp.Body(), &e) == nil && e.Error.Message != "" {
			return fmt.Errorf("server rejected request: %s", e.Error.Message)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode server response: %w", err)
	}
	return nil
}
