package session

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/seezee/launcherhub/internal/models"
)

// The operations in this file back the folder browser and the library's
// recents/favourites rows. The fs operations load like the list fetches;
// recents and favourites leave isLoading alone and only touch the stored
// error when they fail.

// ListDrives returns the agent's drive roots ("C:\", "D:\", or "/").
func (c *Client) ListDrives(ctx context.Context) ([]string, bool) {
	c.begin()
	var body struct {
		Drives []string `json:"drives"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/fs/drives", nil, nil, &body); err != nil {
		c.finish(failure(err, "Failed to list drives"), nil)
		return nil, false
	}
	c.finish("", nil)
	if body.Drives == nil {
		body.Drives = []string{}
	}
	return body.Drives, true
}

// ListDirectory returns the subdirectories of path as resolved by the agent.
func (c *Client) ListDirectory(ctx context.Context, path string) (string, []models.DirectoryEntry, bool) {
	if strings.TrimSpace(path) == "" {
		c.SetError("path is required")
		return "", nil, false
	}
	c.begin()
	var body struct {
		Path        string                  `json:"path"`
		Directories []models.DirectoryEntry `json:"directories"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/fs/list", url.Values{"path": {path}}, nil, &body); err != nil {
		c.finish(failure(err, "Failed to list directory"), nil)
		return "", nil, false
	}
	c.finish("", nil)
	if body.Directories == nil {
		body.Directories = []models.DirectoryEntry{}
	}
	return body.Path, body.Directories, true
}

// CreateDirectory makes a new directory on the PC and returns its absolute path.
func (c *Client) CreateDirectory(ctx context.Context, path string) (string, bool) {
	if strings.TrimSpace(path) == "" {
		c.SetError("path is required")
		return "", false
	}
	c.begin()
	var body struct {
		Path string `json:"path"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/fs/create", nil, models.PathRequest{Path: path}, &body); err != nil {
		c.finish(failure(err, "Failed to create folder"), nil)
		return "", false
	}
	c.finish("", nil)
	return body.Path, true
}

// TrackRecentPlay moves id to the front of the agent's recent list.
func (c *Client) TrackRecentPlay(ctx context.Context, id string) ([]models.RecentPlay, bool) {
	list, err := c.trackRecent(ctx, id)
	if err != nil {
		c.SetError(failure(err, "Failed to track recent play"))
		return nil, false
	}
	return list, true
}

// trackRecent posts id to the recent list without touching the stored error.
func (c *Client) trackRecent(ctx context.Context, id string) ([]models.RecentPlay, error) {
	var body struct {
		RecentPlays []models.RecentPlay `json:"recentPlays"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/track-recent", nil, map[string]string{"id": id}, &body); err != nil {
		return nil, err
	}
	return body.RecentPlays, nil
}

// RecentPlays returns the agent's recent list, newest first.
func (c *Client) RecentPlays(ctx context.Context) ([]models.RecentPlay, bool) {
	var body struct {
		RecentPlays []models.RecentPlay `json:"recentPlays"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/recent-plays", nil, nil, &body); err != nil {
		c.SetError(failure(err, "Failed to load recent plays"))
		return nil, false
	}
	if body.RecentPlays == nil {
		body.RecentPlays = []models.RecentPlay{}
	}
	return body.RecentPlays, true
}

// Favorites returns the favourite item ids.
func (c *Client) Favorites(ctx context.Context) ([]string, bool) {
	var body struct {
		Favorites []string `json:"favorites"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/favorites", nil, nil, &body); err != nil {
		c.SetError(failure(err, "Failed to load favorites"))
		return nil, false
	}
	if body.Favorites == nil {
		body.Favorites = []string{}
	}
	return body.Favorites, true
}

// ToggleFavorite adds id to the favourites if absent and removes it otherwise.
// It returns the agent's updated list.
func (c *Client) ToggleFavorite(ctx context.Context, id string) ([]string, bool) {
	if strings.TrimSpace(id) == "" {
		c.SetError("id is required")
		return nil, false
	}
	current, ok := c.Favorites(ctx)
	if !ok {
		return nil, false
	}
	action := "add"
	for _, f := range current {
		if f == id {
			action = "remove"
			break
		}
	}

	var body struct {
		Favorites []string `json:"favorites"`
	}
	req := models.FavoriteRequest{ID: id, Action: action}
	if err := c.Do(ctx, http.MethodPost, "/api/favorites", nil, req, &body); err != nil {
		c.SetError(failure(err, "Failed to update favorites"))
		return nil, false
	}
	if body.Favorites == nil {
		body.Favorites = []string{}
	}
	return body.Favorites, true
}
