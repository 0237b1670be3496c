package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client is the REST surface used by the services layer.
type Client interface {
	SearchComputers(ctx context.Context, filter string) ([]Computer, error)
	ComputersByManagementIDs(ctx context.Context, ids []string) ([]Computer, error)
	Password(ctx context.Context, managementID, username, guid string) (string, error)
	SetPassword(ctx context.Context, managementID, username, password string) error
	History(ctx context.Context, managementID string) ([]HistoryEntry, error)
	Audit(ctx context.Context, managementID, username, guid string) ([]PasswordAuditEntry, error)
	Accounts(ctx context.Context, managementID string) ([]Account, error)
	PendingRotations(ctx context.Context) ([]PendingRotation, error)
	Settings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, update SettingsUpdate) error
	APIIntegrations(ctx context.Context) ([]APIIntegration, error)
}

// RESTClient implements Client on top of a Transport.
type RESTClient struct {
	transport *Transport
	pageSize  int
}

func NewRESTClient(t *Transport, pageSize int) *RESTClient {
	return &RESTClient{transport: t, pageSize: pageSize}
}

// PageSize is the page size requested from list endpoints.
func (c *RESTClient) PageSize() int {
	return c.pageSize
}

func (c *RESTClient) computersQuery(filter string, page int) string {
	q := url.Values{}
	q.Add("section", "GENERAL")
	q.Add("section", "HARDWARE")
	q.Set("page", strconv.Itoa(page))
	q.Set("page-size", strconv.Itoa(c.pageSize))
	if filter != "" {
		q.Set("filter", filter)
	}
	return string(EndpointComputers) + "?" + q.Encode()
}

// SearchComputers returns every computer matching an RSQL filter.
func (c *RESTClient) SearchComputers(ctx context.Context, filter string) ([]Computer, error) {
	return collectPages[Computer](ctx, c.transport, func(page int) string {
		return c.computersQuery(filter, page)
	})
}

// ComputersByManagementIDs fetches the computers with the given management
// IDs in a single request. Callers keep len(ids) within the page size.
func (c *RESTClient) ComputersByManagementIDs(ctx context.Context, ids []string) ([]Computer, error) {
	filter := "general.managementId=in=(" + strings.Join(ids, ",") + ")"

	var resp Page[Computer]
	if err := c.transport.SendJSON(ctx, http.MethodGet, c.computersQuery(filter, 0), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *RESTClient) Password(ctx context.Context, managementID, username, guid string) (string, error) {
	params := map[string]string{"managementId": managementID, "username": username}
	endpoint := EndpointPassword
	if guid != "" {
		params["guid"] = guid
		endpoint = EndpointPasswordGUID
	}

	var resp passwordResponse
	if err := c.transport.SendJSON(ctx, http.MethodGet, endpoint.Build(params), nil, &resp); err != nil {
		return "", err
	}
	return resp.Password, nil
}

func (c *RESTClient) SetPassword(ctx context.Context, managementID, username, password string) error {
	path := EndpointSetPassword.Build(map[string]string{"managementId": managementID})
	body := setPasswordRequest{LapsUserPasswordList: []passwordListItem{{Username: username, Password: password}}}
	return c.transport.SendJSON(ctx, http.MethodPut, path, body, nil)
}

func (c *RESTClient) History(ctx context.Context, managementID string) ([]HistoryEntry, error) {
	var resp Page[HistoryEntry]
	path := EndpointHistory.Build(map[string]string{"managementId": managementID})
	if err := c.transport.SendJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *RESTClient) Audit(ctx context.Context, managementID, username, guid string) ([]PasswordAuditEntry, error) {
	params := map[string]string{"managementId": managementID, "username": username}
	endpoint := EndpointAudit
	if guid != "" {
		params["guid"] = guid
		endpoint = EndpointAuditGUID
	}

	var resp Page[PasswordAuditEntry]
	if err := c.transport.SendJSON(ctx, http.MethodGet, endpoint.Build(params), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *RESTClient) Accounts(ctx context.Context, managementID string) ([]Account, error) {
	var resp Page[Account]
	path := EndpointAccounts.Build(map[string]string{"managementId": managementID})
	if err := c.transport.SendJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *RESTClient) PendingRotations(ctx context.Context) ([]PendingRotation, error) {
	var resp Page[PendingRotation]
	if err := c.transport.SendJSON(ctx, http.MethodGet, string(EndpointPendingRotations), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *RESTClient) Settings(ctx context.Context) (Settings, error) {
	var s Settings
	err := c.transport.SendJSON(ctx, http.MethodGet, string(EndpointSettings), nil, &s)
	return s, err
}

func (c *RESTClient) UpdateSettings(ctx context.Context, update SettingsUpdate) error {
	return c.transport.SendJSON(ctx, http.MethodPut, string(EndpointSettings), update, nil)
}

// APIIntegrations walks every page of the API integrations list.
func (c *RESTClient) APIIntegrations(ctx context.Context) ([]APIIntegration, error) {
	return collectPages[APIIntegration](ctx, c.transport, func(page int) string {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("page-size", strconv.Itoa(c.pageSize))
		return string(EndpointAPIIntegrations) + "?" + q.Encode()
	})
}

// collectPages requests pages starting at 0 until totalCount results were
// seen or a page comes back empty.
func collectPages[T any](ctx context.Context, t *Transport, pathFor func(page int) string) ([]T, error) {
	var all []T
	for page := 0; ; page++ {
		var resp Page[T]
		if err := t.SendJSON(ctx, http.MethodGet, pathFor(page), nil, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if len(resp.Results) == 0 || len(all) >= resp.TotalCount {
			return all, nil
		}
	}
}
