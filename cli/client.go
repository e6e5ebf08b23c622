package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hmcts/cpp-context-businessprocesses-sub000/http/server"
)

func newClient(url string, timeout time.Duration, username string, password string) *client {
	return &client{
		url:      url,
		username: username,
		password: password,

		httpClient: &http.Client{Timeout: timeout},
	}
}

// client calls the daemon's HTTP read API. A 4xx or 5xx response is decoded
// as a [server.Problem] and returned as the error.
type client struct {
	url      string
	username string
	password string

	httpClient *http.Client
}

func (c *client) getTaskHistory(taskId string) (server.TaskHistoryRes, error) {
	var res server.TaskHistoryRes
	if err := c.get("/v1/task-history/"+taskId, &res); err != nil {
		return server.TaskHistoryRes{}, err
	}
	return res, nil
}

func (c *client) checkReadiness() error {
	return c.get(server.PathHealth, nil)
}

func (c *client) get(path string, body any) error {
	req, err := http.NewRequest(http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %v", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var problem server.Problem
		if err := json.NewDecoder(resp.Body).Decode(&problem); err != nil {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		return problem
	}

	if body == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(body); err != nil {
		return fmt.Errorf("failed to decode response body: %v", err)
	}
	return nil
}
