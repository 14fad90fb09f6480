package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the public product catalog API (dummyjson-compatible).
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a sane default timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Product is the catalog's product shape, passed through to the storefront.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// ProductList is the paged envelope the catalog wraps results in.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// List returns a page of products.
func (c *Client) List(ctx context.Context, limit, skip int) (*ProductList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	u := c.BaseURL + "/products"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	var out ProductList
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one product by id.
func (c *Client) Get(ctx context.Context, id int) (*Product, error) {
	var out Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.BaseURL, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs a full-text product search.
func (c *Client) Search(ctx context.Context, query string) (*ProductList, error) {
	u := c.BaseURL + "/products/search?q=" + url.QueryEscape(query)
	var out ProductList
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories lists the catalog's category slugs.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, c.BaseURL+"/products/category-list", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ByCategory returns the products of one category.
func (c *Client) ByCategory(ctx context.Context, category string) (*ProductList, error) {
	u := c.BaseURL + "/products/category/" + url.PathEscape(category)
	var out ProductList
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog responded %d for %s", resp.StatusCode, u)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
