package solr

import (
	"bytes"
	"context"
	"net/url"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

// Source is the index-backed data source: the write half feeds update
// messages into one collection, the read half is limited to Count. Fetch
// is unsupported; records flow toward the index here, not out of it.
type Source struct {
	expiscor.UnsupportedTransactions

	name       string
	collection string
	client     *Client

	Codec           SchemaCodec
	IncludeChildren bool

	props expiscor.Properties
}

var _ expiscor.DataSource = (*Source)(nil)

// NewSource creates a data source feeding the named collection.
func NewSource(name string, client *Client, collection string) *Source {
	return &Source{
		name:       name,
		collection: collection,
		client:     client,
		Codec:      NewSchemaCodec(),
		props:      make(expiscor.Properties),
	}
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Properties() expiscor.Properties {
	return s.props
}

// Client exposes the underlying transport, which also serves as the Getter
// for schema downloads.
func (s *Source) Client() *Client {
	return s.client
}

// countReply covers the select handler's counting response plus the shared
// exception envelope.
type countReply struct {
	Response struct {
		NumFound int64 `json:"numFound"`
	} `json:"response"`
	Exception *struct {
		Msg     string `json:"msg"`
		RspCode int    `json:"rspCode"`
	} `json:"exception"`
}

// Count asks the collection how many documents it holds.
func (s *Source) Count(ctx context.Context) (int64, error) {
	ref := "/solr/" + url.PathEscape(s.collection) + "/select?q=*:*&rows=0&wt=json"
	var reply countReply
	if err := s.client.GetJSON(ctx, ref, &reply); err != nil {
		return 0, expiscor.WrapError("count documents in "+s.collection, err)
	}
	if reply.Exception != nil && reply.Exception.Msg != "" {
		return 0, expiscor.ServerError(reply.Exception.Msg, reply.Exception.RspCode)
	}
	return reply.Response.NumFound, nil
}

// Fetch is not supported: this source is a feed destination.
func (s *Source) Fetch(context.Context) (*expiscor.Table, error) {
	return nil, expiscor.Unsupported("fetch")
}

// Add feeds the document as an add message.
func (s *Source) Add(ctx context.Context, doc *expiscor.Document) error {
	return s.sendDocument(ctx, OpAdd, doc, false)
}

// Update feeds the document as a partial update; every non-key field
// carries the set directive.
func (s *Source) Update(ctx context.Context, doc *expiscor.Document) error {
	return s.sendDocument(ctx, OpUpdate, doc, true)
}

// Delete feeds a keyed delete for the document.
func (s *Source) Delete(ctx context.Context, doc *expiscor.Document) error {
	return s.sendDocument(ctx, OpDelete, doc, false)
}

// AddTable feeds every table row as one add message.
func (s *Source) AddTable(ctx context.Context, t *expiscor.Table) error {
	var buf bytes.Buffer
	uw := NewUpdateWriter(OpAdd, &buf)
	if err := uw.WriteHeader(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := uw.WriteTable(t, false, 1); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := uw.WriteTrailer(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	return s.postUpdate(ctx, &buf)
}

// Commit posts a lone commit directive to the collection.
func (s *Source) Commit(ctx context.Context) error {
	return s.sendDirective(ctx, func(uw *UpdateWriter) error { return uw.WriteCommit() })
}

// Optimize posts a lone optimize directive to the collection.
func (s *Source) Optimize(ctx context.Context) error {
	return s.sendDirective(ctx, func(uw *UpdateWriter) error { return uw.WriteOptimize() })
}

// Shutdown releases nothing today; the transport's connection pool belongs
// to the caller.
func (s *Source) Shutdown() error {
	return nil
}

// SchemaURL names the live schema descriptor for this collection, suitable
// for DownloadAndSave.
func (s *Source) SchemaURL() string {
	return s.client.BaseURL + "/solr/" + url.PathEscape(s.collection) +
		"/admin/file?file=schema.xml&contentType=text/xml"
}

// DownloadSchema copies the live schema descriptor to path.
func (s *Source) DownloadSchema(ctx context.Context, path string) error {
	return DownloadAndSave(ctx, s.client, s.SchemaURL(), path)
}

func (s *Source) sendDocument(ctx context.Context, op Operation, doc *expiscor.Document, updateMode bool) error {
	var buf bytes.Buffer
	uw := NewUpdateWriter(op, &buf)
	uw.IncludeChildren(s.IncludeChildren)
	if err := uw.WriteHeader(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := uw.WriteDocument(doc, updateMode, 1); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := uw.WriteTrailer(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	return s.postUpdate(ctx, &buf)
}

func (s *Source) sendDirective(ctx context.Context, write func(*UpdateWriter) error) error {
	var buf bytes.Buffer
	uw := NewUpdateWriter(OpAdd, &buf)
	if err := uw.WriteHeader(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := write(uw); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	if err := uw.WriteTrailer(); err != nil {
		return expiscor.WrapError("encode update message", err)
	}
	return s.postUpdate(ctx, &buf)
}

func (s *Source) postUpdate(ctx context.Context, body *bytes.Buffer) error {
	ref := "/solr/" + url.PathEscape(s.collection) + "/update?wt=json"
	var reply adminReply
	if err := s.client.Post(ctx, ref, "text/xml; charset=utf-8", body, &reply); err != nil {
		return expiscor.WrapError("post update to "+s.collection, err)
	}
	return reply.err()
}
