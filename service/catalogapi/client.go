package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"brickstock.GO/config"
	"brickstock.GO/core/cache"
)

// detailCooldown is how long minifig detail lookups stay suppressed after a
// 429. During the window lookups short-circuit to "no data" instead of
// retrying: completeness traded for availability.
const detailCooldown = 60 * time.Second

// responseCacheTTL is the redis TTL for whole set inventories.
const responseCacheTTL = 6 * time.Hour

// Client talks to the remote part catalog. One instance per process; the
// minifig detail cache and the rate-limit cooldown timestamp live on it for
// the process lifetime.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	details *cache.Cache
	// cooldownUntil is unix nanos; 0 means no active cooldown.
	cooldownUntil atomic.Int64
}

// NewClient creates a catalog client for the given endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		details: cache.NewCache(),
	}
}

// NewClientFromEnv builds a client from CATALOG_API_URL / CATALOG_API_KEY.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("CATALOG_API_URL"), os.Getenv("CATALOG_API_KEY"))
}

// FetchSetInventory returns the full part list of a set, following the
// pagination cursor until exhausted. The caller never sees partial pages.
// Results are cached in redis (when configured) keyed by set id.
func (c *Client) FetchSetInventory(ctx context.Context, setID string) ([]RemotePart, error) {
	cacheKey := "catalogapi:set:" + setID + ":parts"
	var parts []RemotePart
	if hitRedis(ctx, cacheKey, &parts) {
		return parts, nil
	}

	url := fmt.Sprintf("%s/sets/%s/parts/", c.baseURL, setID)
	for url != "" {
		page, next, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, raw := range page {
			parts = append(parts, remotePartFromJSON(raw))
		}
		url = next
	}

	putRedis(ctx, cacheKey, parts)
	return parts, nil
}

// FetchSetMinifigs returns the set's minifigs. The list endpoint omits the
// cross-vendor design id, so each fig gets an individually rate-limited
// detail lookup, cached per process lifetime.
func (c *Client) FetchSetMinifigs(ctx context.Context, setID string) ([]RemoteMinifig, error) {
	url := fmt.Sprintf("%s/sets/%s/minifigs/", c.baseURL, setID)
	var figs []RemoteMinifig
	for url != "" {
		page, next, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, raw := range page {
			fig := remoteMinifigFromJSON(raw)
			if fig.FigID != "" {
				detail := c.fetchMinifigDetail(ctx, fig.FigID)
				if detail.DesignID != "" {
					fig.DesignID = detail.DesignID
				}
				if fig.ImageURL == "" {
					fig.ImageURL = detail.ImageURL
				}
			}
			figs = append(figs, fig)
		}
		url = next
	}
	return figs, nil
}

// FetchColors returns the catalog's color list (paginated). Used by the
// scheduled catalog sync job.
func (c *Client) FetchColors(ctx context.Context) ([]RemoteColor, error) {
	url := c.baseURL + "/colors/"
	var colors []RemoteColor
	for url != "" {
		page, next, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, raw := range page {
			colors = append(colors, remoteColorFromJSON(raw))
		}
		url = next
	}
	return colors, nil
}

// fetchPage GETs one page and returns its results plus the next cursor
// (absolute URL, empty when exhausted). Non-2xx here is a hard failure:
// this is the primary endpoint, not a sub-lookup.
func (c *Client) fetchPage(ctx context.Context, url string) ([]map[string]interface{}, string, error) {
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, "", err
	}
	if status < 200 || status >= 300 {
		return nil, "", fmt.Errorf("catalog request %s: status %d", url, status)
	}

	var page struct {
		Results []map[string]interface{} `json:"results"`
		Next    *string                  `json:"next"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, "", fmt.Errorf("catalog response %s: %w", url, err)
	}
	next := ""
	if page.Next != nil {
		next = *page.Next
	}
	return page.Results, next, nil
}

// minifigDetail is what the detail endpoint adds over the list endpoint.
type minifigDetail struct {
	DesignID string
	ImageURL string
}

// fetchMinifigDetail is a best-effort sub-lookup. It never aborts the batch:
// 429 starts the cooldown window, 403/404/malformed JSON count as "not
// found," and all outcomes (including misses) are cached so one process
// never asks twice.
func (c *Client) fetchMinifigDetail(ctx context.Context, figID string) minifigDetail {
	if v, ok := c.details.Get("minifig:" + figID); ok {
		return v.(minifigDetail)
	}
	if c.inCooldown() {
		return minifigDetail{}
	}

	body, status, err := c.get(ctx, fmt.Sprintf("%s/minifigs/%s/", c.baseURL, figID))
	if err != nil {
		log.Printf("catalogapi: minifig %s detail failed: %v", figID, err)
		return minifigDetail{}
	}
	switch {
	case status == http.StatusTooManyRequests:
		c.startCooldown()
		log.Printf("catalogapi: rate limited, suppressing detail lookups for %s", detailCooldown)
		return minifigDetail{}
	case status == http.StatusForbidden || status == http.StatusNotFound:
		log.Printf("catalogapi: minifig %s not found (status %d)", figID, status)
		c.details.Set("minifig:"+figID, minifigDetail{}, 0, nil)
		return minifigDetail{}
	case status < 200 || status >= 300:
		log.Printf("catalogapi: minifig %s detail status %d", figID, status)
		return minifigDetail{}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Printf("catalogapi: minifig %s detail malformed: %v", figID, err)
		c.details.Set("minifig:"+figID, minifigDetail{}, 0, nil)
		return minifigDetail{}
	}
	detail := minifigDetail{
		DesignID: pickString(raw, "design_id", "external_ids.bricklink", "part_num"),
		ImageURL: pickString(raw, "minifig_img_url", "img_url", "image_url"),
	}
	c.details.Set("minifig:"+figID, detail, 0, nil)
	return detail
}

func (c *Client) inCooldown() bool {
	until := c.cooldownUntil.Load()
	return until > 0 && time.Now().UnixNano() < until
}

func (c *Client) startCooldown() {
	c.cooldownUntil.Store(time.Now().Add(detailCooldown).UnixNano())
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "key "+c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog request %s: %w", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog response %s: %w", url, err)
	}
	return body, resp.StatusCode, nil
}

// hitRedis loads a cached JSON response when redis is configured.
func hitRedis(ctx context.Context, key string, out interface{}) bool {
	if config.RedisClient == nil {
		return false
	}
	raw, err := config.RedisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func putRedis(ctx context.Context, key string, value interface{}) {
	if config.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	config.RedisClient.Set(ctx, key, raw, responseCacheTTL)
}
