// Package tmdb looks up movie metadata from The Movie Database. Results are
// cached in redis so repeated catalog searches do not burn through the API
// quota.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cine-taquilla/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type MovieResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

type searchResponse struct {
	Results []MovieResult `json:"results"`
}

type Client struct {
	config   utils.TMDBConfig
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewClient(config utils.TMDBConfig, cache *redis.Client, cacheTTL time.Duration, log *zap.Logger) *Client {
	return &Client{
		config:   config,
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(zap.String("client", "tmdb")),
	}
}

// Search returns movies matching the query, in Spanish, cache-first.
func (c *Client) Search(ctx context.Context, query string) ([]MovieResult, error) {
	cacheKey := "tmdb:search:" + query

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var results []MovieResult
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				c.log.Debug("TMDB cache hit", zap.String("query", query))
				return results, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.log.Warn("TMDB cache read failed", zap.Error(err))
		}
	}

	endpoint := fmt.Sprintf("%s/search/movie?query=%s&language=es-ES",
		c.config.BaseURL, url.QueryEscape(query))

	var resp searchResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("tmdb search %q: %w", query, err)
	}

	if c.cache != nil {
		if payload, err := json.Marshal(resp.Results); err == nil {
			if err := c.cache.Set(ctx, cacheKey, payload, c.cacheTTL).Err(); err != nil {
				c.log.Warn("TMDB cache write failed", zap.Error(err))
			}
		}
	}

	return resp.Results, nil
}

// GetMovie returns a single movie by its TMDB id.
func (c *Client) GetMovie(ctx context.Context, movieID int64) (*MovieResult, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?language=es-ES", c.config.BaseURL, movieID)

	var result MovieResult
	if err := c.get(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("tmdb movie %d: %w", movieID, err)
	}

	return &result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
