package solr

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

// Admin manages collection lifecycle on one server. Success and failure of
// every call are derived the same way: the JSON reply is parsed for an
// exception envelope, and a non-empty message means failure carrying that
// message and the server's numeric code.
type Admin struct {
	client *Client
}

func NewAdmin(client *Client) *Admin {
	return &Admin{client: client}
}

// adminReply is the superset of every collection-admin response this
// client reads.
type adminReply struct {
	Collections []string `json:"collections"`
	Exception   *struct {
		Msg     string `json:"msg"`
		RspCode int    `json:"rspCode"`
	} `json:"exception"`
}

// err converts a parsed exception envelope into a data source error;
// an absent or empty-message envelope signals success.
func (r adminReply) err() error {
	if r.Exception == nil || r.Exception.Msg == "" {
		return nil
	}
	return expiscor.ServerError(r.Exception.Msg, r.Exception.RspCode)
}

// List returns the collection names known to the server.
func (a *Admin) List(ctx context.Context) ([]string, error) {
	var reply adminReply
	if err := a.client.GetJSON(ctx, "/solr/admin/collections?action=LIST&wt=json", &reply); err != nil {
		return nil, expiscor.WrapError("list collections", err)
	}
	if err := reply.err(); err != nil {
		return nil, err
	}
	return reply.Collections, nil
}

// Exists reports whether the named collection is present.
func (a *Admin) Exists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, expiscor.NewError("collection name is required")
	}
	names, err := a.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Create provisions a collection from a config set.
func (a *Admin) Create(ctx context.Context, configSet, name string, shards, replicationFactor int) error {
	if configSet == "" || name == "" {
		return expiscor.NewError("config set and collection name are required")
	}
	ref := fmt.Sprintf(
		"/solr/admin/collections?action=CREATE&name=%s&collection.configName=%s&numShards=%d&replicationFactor=%d&wt=json",
		url.QueryEscape(name), url.QueryEscape(configSet), shards, replicationFactor)
	return a.call(ctx, ref, "create collection "+name)
}

// Reload reloads the named collection so config changes take effect.
func (a *Admin) Reload(ctx context.Context, name string) error {
	if name == "" {
		return expiscor.NewError("collection name is required")
	}
	ref := "/solr/admin/collections?action=RELOAD&name=" + url.QueryEscape(name) + "&wt=json"
	return a.call(ctx, ref, "reload collection "+name)
}

// Delete removes the named collection.
func (a *Admin) Delete(ctx context.Context, name string) error {
	if name == "" {
		return expiscor.NewError("collection name is required")
	}
	ref := "/solr/admin/collections?action=DELETE&name=" + url.QueryEscape(name) + "&wt=json"
	return a.call(ctx, ref, "delete collection "+name)
}

func (a *Admin) call(ctx context.Context, ref, what string) error {
	var reply adminReply
	if err := a.client.GetJSON(ctx, ref, &reply); err != nil {
		return expiscor.WrapError(what, err)
	}
	return reply.err()
}
