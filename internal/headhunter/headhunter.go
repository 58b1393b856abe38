package headhunter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	userAgent = "spigell/hh-screener (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a hh.ru client. Vacancy search is public, so the token may be
// empty.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Vacancies, error) {
	return c.search(params)
}

func (c *Client) GetVacancy(id string) (*Vacancy, error) {
	return c.getVacancy(id)
}
