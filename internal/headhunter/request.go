package headhunter

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hh-screener/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	maxLogBody      = 200
)

type ItemResponse struct {
	Items   []Item
	Found   int
	Pages   int
	Page    int
	PerPage int `json:"per_page"`
}

type Item interface{}

// GetItems makes GET request to HeadHunter API and return items from all pages
// together with the total number of found items. maxPages limits the number of
// fetched pages when positive.
func (c *Client) GetItems(url string, q url.Values, maxPages int) ([]Item, int, error) {
	var items []Item

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	req = c.setHeaders(req)
	// Additional headers. For GET requests only
	req.Header.Set("Content-Type", contentType)
	req.URL.RawQuery = q.Encode()

	resp, err := c.request(req)
	if err != nil {
		return nil, 0, err
	}

	response, err := c.parseItemResponse(resp)
	if err != nil {
		return nil, 0, err
	}

	c.logger.Debug("got response from HH.ru", zap.Int("pages", response.Pages), zap.Int("max items per page", response.PerPage))

	items = append(items, response.Items...)
	fetched := 1

	for response.Page < (response.Pages - 1) {
		if maxPages > 0 && fetched >= maxPages {
			c.logger.Debug("page limit reached", zap.Int("pages", fetched))
			break
		}

		c.logger.Debug("additional request needed", zap.String("reason", fmt.Sprintf(
			"current page (%d) < all page count (%d)", response.Page+1, response.Pages),
		))

		resp, err = c.request(addPage(req, response.Page+1))
		if err != nil {
			return nil, 0, err
		}

		response, err = c.parseItemResponse(resp)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, response.Items...)
		fetched++
	}

	return items, response.Found, nil
}

func (c *Client) parseItemResponse(resp *http.Response) (*ItemResponse, error) {
	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("bad response from HH.ru", zap.String("body", utils.TruncateForLog(string(data), maxLogBody)))
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response *ItemResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("empty response")
	}

	return response, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func (c *Client) getJSON(url string, q url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return err
	}

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("bad response from HH.ru", zap.String("body", utils.TruncateForLog(string(data), maxLogBody)))
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// readBody reads and closes the response body, unpacking gzip when needed.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// addPage adds page parameter to request URL.
func addPage(req *http.Request, page int) *http.Request {
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	return req
}
