// Package ranking submits finished sessions to a remote leaderboard.
package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/milk9111/hellshooter/game"
	"github.com/milk9111/hellshooter/prefabs"
)

var ErrDisabled = errors.New("ranking: no url configured")

// Entry is the JSON body posted for one session.
type Entry struct {
	Player     string `json:"player"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	Kills      int    `json:"kills"`
	DurationMS int64  `json:"duration_ms"`
	Won        bool   `json:"won"`
}

func EntryFrom(player string, r game.Result) Entry {
	return Entry{
		Player:     player,
		Level:      r.Level,
		Score:      r.Score,
		Kills:      r.Kills,
		DurationMS: r.Duration.Milliseconds(),
		Won:        r.Won,
	}
}

// Notice reports how a background submission ended.
type Notice struct {
	Entry Entry
	Err   error
}

// Client posts results without blocking the game loop. Outcomes arrive on
// Notices; when nobody reads them they are dropped.
type Client struct {
	url     string
	player  string
	timeout time.Duration
	http    *http.Client

	notices chan Notice
	wg      sync.WaitGroup
}

func NewClient(spec prefabs.RankingSpec, player string) *Client {
	timeout := time.Duration(spec.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:     spec.URL,
		player:  player,
		timeout: timeout,
		http:    &http.Client{},
		notices: make(chan Notice, 8),
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

func (c *Client) Notices() <-chan Notice {
	return c.notices
}

// Submit implements game.Reporter.
func (c *Client) Submit(r game.Result) {
	if !c.Enabled() {
		return
	}
	entry := EntryFrom(c.player, r)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		err := c.Post(ctx, entry)
		if err != nil {
			log.Printf("ranking: submit: %v", err)
		}
		select {
		case c.notices <- Notice{Entry: entry, Err: err}:
		default:
		}
	}()
}

// Post sends one entry and waits for the response.
func (c *Client) Post(ctx context.Context, entry Entry) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("ranking: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ranking: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ranking: post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ranking: post: unexpected status %s", resp.Status)
	}
	return nil
}

// Wait blocks until every pending submission finished.
func (c *Client) Wait() {
	c.wg.Wait()
}
