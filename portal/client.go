// Package portal reports game sessions to the hosting learning portal.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	noncePath  = "/wp-admin/admin-ajax.php?action=get_rest_nonce"
	resultPath = "/wp-json/chimpvine/v1/get-game-result"
	submitPath = "/wp-json/chimpvine/v1/submit-game-result"
	updatePath = "/wp-json/chimpvine/v1/update-game-result"

	timeLayout = "2006-01-02 15:04:05"
)

type Options struct {
	Enabled bool
	Domain  string
	GameID  int
	HTTP    *http.Client
	Log     *zap.Logger
	// Now is used for timestamps; defaults to time.Now in UTC.
	Now func() time.Time
}

// Client talks to the portal REST API. A disabled client accepts every
// call and does nothing.
type Client struct {
	opts Options
	http *http.Client
	log  *zap.Logger

	mu           sync.Mutex
	nonce        string
	userInstance int
	active       bool
	ready        bool
	level        int
}

func NewClient(opts Options) *Client {
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Client{opts: opts, http: opts.HTTP, log: opts.Log, level: 1}
}

func (c *Client) Enabled() bool { return c.opts.Enabled }

// Level is the level the portal last reported, 1 until Init succeeds.
func (c *Client) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

type nonceResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

type resultResponse struct {
	Level int `json:"Level"`
}

// Init fetches a nonce and the player's current level.
func (c *Client) Init(ctx context.Context) (int, error) {
	if !c.opts.Enabled {
		c.mu.Lock()
		c.ready = true
		c.mu.Unlock()
		return 1, nil
	}
	if c.opts.Domain == "" {
		return 1, fmt.Errorf("portal domain is not set")
	}

	var nr nonceResponse
	if err := c.do(ctx, http.MethodGet, noncePath, "", nil, &nr); err != nil {
		return 1, fmt.Errorf("fetch nonce: %w", err)
	}
	if !nr.Success {
		return 1, fmt.Errorf("fetch nonce: portal refused")
	}

	var rr resultResponse
	path := fmt.Sprintf("%s?gameid=%d", resultPath, c.opts.GameID)
	if err := c.do(ctx, http.MethodGet, path, nr.Data, nil, &rr); err != nil {
		return 1, fmt.Errorf("fetch game result: %w", err)
	}
	level := rr.Level
	if level <= 0 {
		level = 1
	}

	c.mu.Lock()
	c.nonce = nr.Data
	c.level = level
	c.ready = true
	c.mu.Unlock()
	c.log.Info("🌐 portal ready", zap.Int("level", level))
	return level, nil
}

type startPayload struct {
	GameID                 int    `json:"GameID"`
	Level                  int    `json:"Level"`
	GameStartLocalDateTime string `json:"GameStartLocalDateTime"`
	SoundOnOff             int    `json:"SoundOnOff"`
	MusicOnOff             int    `json:"MusicOnOff"`
	LevelPassed            int    `json:"LevelPassed"`
	IsLevelEnd             int    `json:"islevelend"`
}

type endPayload struct {
	UserInstance         int    `json:"userinstance"`
	PointsEarned         int    `json:"PointsEarned"`
	TotalPoints          int    `json:"TotalPoints"`
	GameEndLocalDateTime string `json:"GameEndLocalDateTime"`
	LevelPassed          int    `json:"LevelPassed"`
	IsLevelEnd           int    `json:"islevelend"`
	LevelData            string `json:"LevelData"`
}

type instanceResponse struct {
	UserInstance int `json:"userinstance"`
}

// PostStart opens a play session. A second call while one is open is
// skipped.
func (c *Client) PostStart(ctx context.Context, level int, sound, music bool) error {
	if !c.opts.Enabled {
		return nil
	}
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		c.log.Warn("⚠️ portal session already active, skipping start")
		return nil
	}
	c.active = true
	nonce := c.nonce
	c.mu.Unlock()

	body := startPayload{
		GameID:                 c.opts.GameID,
		Level:                  level,
		GameStartLocalDateTime: c.opts.Now().Format(timeLayout),
		SoundOnOff:             boolInt(sound),
		MusicOnOff:             boolInt(music),
	}
	var resp instanceResponse
	if err := c.do(ctx, http.MethodPost, submitPath, nonce, body, &resp); err != nil {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
		return fmt.Errorf("post start: %w", err)
	}
	c.mu.Lock()
	c.userInstance = resp.UserInstance
	c.mu.Unlock()
	return nil
}

// PostEnd closes the open play session. Without one it is skipped.
func (c *Client) PostEnd(ctx context.Context, points, total int, levelData string, completed bool) error {
	if !c.opts.Enabled {
		return nil
	}
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		c.log.Warn("⚠️ no portal session to end, skipping")
		return nil
	}
	c.active = false
	nonce, instance := c.nonce, c.userInstance
	c.mu.Unlock()

	body := endPayload{
		UserInstance:         instance,
		PointsEarned:         points,
		TotalPoints:          total,
		GameEndLocalDateTime: c.opts.Now().Format(timeLayout),
		LevelPassed:          boolInt(completed),
		IsLevelEnd:           1,
		LevelData:            levelData,
	}
	var resp instanceResponse
	if err := c.do(ctx, http.MethodPost, updatePath, nonce, body, &resp); err != nil {
		return fmt.Errorf("post end: %w", err)
	}
	c.mu.Lock()
	c.userInstance = resp.UserInstance
	c.mu.Unlock()
	return nil
}

func (c *Client) do(ctx context.Context, method, path, nonce string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.opts.Domain+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.opts.Domain+path, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if nonce != "" {
		req.Header.Set("X-WP-Nonce", nonce)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
