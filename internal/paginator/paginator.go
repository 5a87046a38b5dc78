package paginator

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/meetup-data/internal/anonymize"
	"github.com/scan-io-git/meetup-data/internal/record"
)

// DefaultPageSize is the page size requested when Config.PageSize is unset.
const DefaultPageSize = 100

// Response is the part of an HTTP response the paginator needs.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport issues a single GET. params are appended to url as a query string.
type Transport interface {
	Get(ctx context.Context, url string, headers, params map[string]string) (*Response, error)
}

// Failure reasons passed to Recorder.RequestFailed.
const (
	ReasonTransport = "transport"
	ReasonStatus    = "status"
	ReasonDecode    = "decode"
)

// Recorder observes fetch progress. Implementations must tolerate being called
// once per page and once per failure.
type Recorder interface {
	PageFetched(records int)
	RequestFailed(reason string)
}

// Config holds everything a Paginator needs to know about the remote API and
// the run. It is passed at construction so tests can point at a fake endpoint.
type Config struct {
	BaseURL      string
	PageSize     int
	MaxPages     int // 0 means follow continuation links until they run out
	Verbosity    int // 0 quiet, 1 URLs and status codes, 2 also every record
	StopAfterOne bool
	Level        anonymize.Level
}

// Paginator fetches every page of a Query, anonymizing records as they arrive.
type Paginator struct {
	cfg       Config
	transport Transport
	logger    hclog.Logger
	recorder  Recorder
}

// New creates a Paginator. A nil recorder disables progress reporting.
func New(cfg Config, transport Transport, logger hclog.Logger, recorder Recorder) *Paginator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if !cfg.Level.Valid() {
		cfg.Level = anonymize.Redacted
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Paginator{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		recorder:  recorder,
	}
}

// Fetch retrieves all records for q, following meta.next links one request
// at a time. Any non-200 response or undecodable body aborts the whole fetch;
// no partial result is returned in that case.
func (p *Paginator) Fetch(ctx context.Context, token string, q Query) ([]record.Value, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}
	target := p.resolveURL(q.Endpoint())
	params := p.mergeParams(q)
	piFields := q.PIFields()

	var items []record.Value
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		requestURL := RequestURL(target, params)
		if p.cfg.Verbosity > 0 {
			p.logger.Info("request", "url", requestURL)
		}

		resp, err := p.transport.Get(ctx, target, headers, params)
		if err != nil {
			p.recorder.RequestFailed(ReasonTransport)
			return nil, &TransportError{URL: requestURL, Err: err}
		}
		if p.cfg.Verbosity > 0 {
			p.logger.Info("response", "status", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			p.recorder.RequestFailed(ReasonStatus)
			return nil, p.statusError(requestURL, resp)
		}

		doc, err := record.Parse(resp.Body)
		if err != nil {
			p.recorder.RequestFailed(ReasonDecode)
			return nil, p.decodeError(requestURL, resp.Body, err)
		}

		results, err := pageRecords(doc)
		if err != nil {
			p.recorder.RequestFailed(ReasonDecode)
			return nil, p.decodeError(requestURL, resp.Body, err)
		}
		if p.cfg.StopAfterOne && len(results) > 1 {
			results = results[:1]
		}

		for _, item := range results {
			anon := anonymize.Anonymize(item, piFields, p.cfg.Level)
			if p.cfg.Verbosity > 1 {
				// record JSON goes in the message: field values are quoted and escaped
				p.logger.Info("record: " + record.Compact(anon))
			}
			items = append(items, anon)
		}
		p.recorder.PageFetched(len(results))

		next, ok := nextLink(doc)
		if p.cfg.StopAfterOne || !ok {
			p.logger.Debug("last page reached", "pages", page, "records", len(items))
			return items, nil
		}
		if p.cfg.MaxPages > 0 && page >= p.cfg.MaxPages {
			p.logger.Warn("page limit reached, remaining pages are not fetched",
				"max_pages", p.cfg.MaxPages,
				"next", next,
			)
			return items, nil
		}

		target = p.resolveURL(next)
		params = nil
	}
}

// resolveURL returns absolute links unchanged and prefixes paths with the base URL.
func (p *Paginator) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return p.cfg.BaseURL + path
}

// mergeParams overlays the query's own parameters on the request defaults.
func (p *Paginator) mergeParams(q Query) map[string]string {
	params := map[string]string{
		"format": "json",
		"page":   strconv.Itoa(p.cfg.PageSize),
	}
	if q.Order() != "" {
		params["order"] = q.Order()
	}
	for k, v := range q.Params() {
		params[k] = v
	}
	return params
}

func (p *Paginator) statusError(requestURL string, resp *Response) error {
	tErr := &TransportError{URL: requestURL, StatusCode: resp.StatusCode}

	doc, err := record.Parse(resp.Body)
	switch {
	case err != nil:
		p.logger.Error("request failed", "status", resp.StatusCode, "body", string(resp.Body))
	case doc.IsMapping():
		args := []interface{}{"status", resp.StatusCode}
		doc.Each(func(key string, val record.Value) {
			detail := Detail{Key: key, Value: detailValue(val)}
			tErr.Details = append(tErr.Details, detail)
			args = append(args, detail.Key, detail.Value)
		})
		p.logger.Error("request failed", args...)
	default:
		p.logger.Error("request failed", "status", resp.StatusCode, "body", record.Compact(doc))
	}
	return tErr
}

func (p *Paginator) decodeError(requestURL string, body []byte, err error) error {
	p.logger.Error("failed to decode response", "url", requestURL, "error", err, "body", string(body))
	return &DecodeError{URL: requestURL, Body: body, Err: err}
}

// pageRecords extracts the record sequence of one page. A mapping with a
// results key yields that list; a bare array is the list itself; any other
// mapping is a single record.
func pageRecords(doc record.Value) ([]record.Value, error) {
	if results, ok := doc.Get("results"); ok {
		switch {
		case results.IsSequence():
			return results.Items(), nil
		case results.IsNull():
			return nil, nil
		default:
			return nil, fmt.Errorf("results is a %s: %w", results.Kind(), errUnexpectedDocument)
		}
	}

	switch {
	case doc.IsSequence():
		return doc.Items(), nil
	case doc.IsMapping():
		return []record.Value{doc}, nil
	default:
		return nil, errUnexpectedDocument
	}
}

// nextLink returns meta.next when it is a non-empty string.
func nextLink(doc record.Value) (string, bool) {
	meta, ok := doc.Get("meta")
	if !ok {
		return "", false
	}
	next, ok := meta.Get("next")
	if !ok {
		return "", false
	}
	s, ok := next.AsString()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func detailValue(v record.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return record.Compact(v)
}

// RequestURL renders the URL a GET with params would hit. Parameters are
// encoded in key order, the way the HTTP client appends them.
func RequestURL(target string, params map[string]string) string {
	if len(params) == 0 {
		return target
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + values.Encode()
}

type nopRecorder struct{}

func (nopRecorder) PageFetched(int)      {}
func (nopRecorder) RequestFailed(string) {}
