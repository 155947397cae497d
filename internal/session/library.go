package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/seezee/launcherhub/internal/models"
)

// nextFolderSeq reserves a sequence number for a folder list write.
func (c *Client) nextFolderSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.folderSeq++
	return c.folderSeq
}

// applyFolders installs list unless a newer folder response was applied. Caller holds c.mu.
func (c *Client) applyFolders(seq uint64, list []models.FolderConfig) bool {
	if seq <= c.folderApplied {
		return false
	}
	c.folderApplied = seq
	if list == nil {
		list = []models.FolderConfig{}
	}
	c.folders = list
	return true
}

// staleFolders reports whether a newer folder response already landed. Caller holds c.mu.
func (c *Client) staleFolders(seq uint64) bool { return seq <= c.folderApplied }

// nextGameSeq reserves a sequence number for a game list write.
func (c *Client) nextGameSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameSeq++
	return c.gameSeq
}

// applyGames installs list unless a newer game response was applied. Caller holds c.mu.
func (c *Client) applyGames(seq uint64, list []models.GameItem) bool {
	if seq <= c.gameApplied {
		return false
	}
	c.gameApplied = seq
	if list == nil {
		list = []models.GameItem{}
	}
	c.games = list
	return true
}

// staleGames reports whether a newer game response already landed. Caller holds c.mu.
func (c *Client) staleGames(seq uint64) bool { return seq <= c.gameApplied }

// FetchFolders replaces the cached folder list with the agent's.
// On failure the stale list is kept and returned with ok false.
func (c *Client) FetchFolders(ctx context.Context) (folders []models.FolderConfig, ok bool) {
	seq := c.nextFolderSeq()
	c.begin()

	var body struct {
		Folders *[]models.FolderConfig `json:"folders"`
	}
	err := c.Do(ctx, http.MethodGet, "/api/folders", nil, nil, &body)
	if err == nil && body.Folders == nil {
		err = &MalformedError{Path: "/api/folders"}
	}
	if err != nil {
		msg := failure(err, "Failed to fetch folders")
		c.finish("", func() {
			if !c.staleFolders(seq) {
				c.err = msg
			}
		})
		return c.Folders(), false
	}

	c.finish("", func() { c.applyFolders(seq, *body.Folders) })
	return c.Folders(), true
}

// FetchGames replaces the cached game list. A successful fetch also marks
// the session connected. On failure the stale list is kept.
func (c *Client) FetchGames(ctx context.Context) (games []models.GameItem, ok bool) {
	seq := c.nextGameSeq()
	c.begin()

	var body struct {
		Games *[]models.GameItem `json:"games"`
	}
	err := c.Do(ctx, http.MethodGet, "/api/games", nil, nil, &body)
	if err == nil && body.Games == nil {
		err = &MalformedError{Path: "/api/games"}
	}
	if err != nil {
		msg := failure(err, "Failed to fetch games")
		c.finish("", func() {
			if !c.staleGames(seq) {
				c.err = msg
			}
		})
		return c.Games(), false
	}

	c.finish("", func() {
		if c.applyGames(seq, *body.Games) {
			c.connected = true
		}
	})
	return c.Games(), true
}

// AddFolder registers a scan root on the agent. The label defaults to the
// path's last segment and the type to games. Returns nil on failure.
func (c *Client) AddFolder(ctx context.Context, label, path string, typ models.FolderType) *models.FolderConfig {
	path = strings.TrimSpace(path)
	if path == "" {
		c.SetError("path is required")
		return nil
	}
	if typ == "" {
		typ = models.FolderGames
	}
	if !typ.Valid() {
		c.SetError("folder type must be games or tools")
		return nil
	}
	if strings.TrimSpace(label) == "" {
		label = baseName(path)
	}

	seq := c.nextFolderSeq()
	c.begin()

	var body struct {
		Folder  *models.FolderConfig   `json:"folder"`
		Folders *[]models.FolderConfig `json:"folders"`
	}
	req := models.AddFolderRequest{Label: label, Path: path, Type: typ}
	err := c.Do(ctx, http.MethodPost, "/api/folders", nil, req, &body)
	if err == nil && body.Folder == nil {
		err = &MalformedError{Path: "/api/folders"}
	}
	if err != nil {
		c.finish(failure(err, "Failed to add folder"), nil)
		return nil
	}

	c.finish("", func() {
		if body.Folders != nil {
			c.applyFolders(seq, *body.Folders)
			return
		}
		list := append(append([]models.FolderConfig{}, c.folders...), *body.Folder)
		c.applyFolders(seq, list)
	})
	folder := *body.Folder
	return &folder
}

// RemoveFolder deletes a scan root by id. The cached list only changes on success.
func (c *Client) RemoveFolder(ctx context.Context, id string) bool {
	if strings.TrimSpace(id) == "" {
		c.SetError("folder id is required")
		return false
	}

	seq := c.nextFolderSeq()
	c.begin()

	var body struct {
		Folders *[]models.FolderConfig `json:"folders"`
	}
	err := c.Do(ctx, http.MethodDelete, "/api/folders", url.Values{"id": {id}}, nil, &body)
	if err != nil {
		c.finish(failure(err, "Failed to remove folder"), nil)
		return false
	}

	c.finish("", func() {
		if body.Folders != nil {
			c.applyFolders(seq, *body.Folders)
			return
		}
		list := make([]models.FolderConfig, 0, len(c.folders))
		for _, f := range c.folders {
			if f.ID != id {
				list = append(list, f)
			}
		}
		c.applyFolders(seq, list)
	})
	return true
}

// LaunchGame asks the agent to start item, preferring its Steam app id over
// the executable path. A successful launch is recorded as a recent play.
func (c *Client) LaunchGame(ctx context.Context, item models.GameItem) bool {
	var req models.LaunchRequest
	switch {
	case item.SteamAppID != "":
		req.SteamAppID = item.SteamAppID
	case item.ExecPath != "":
		req.ExecPath = item.ExecPath
	default:
		c.SetError("No launch target for " + displayName(item))
		return false
	}

	c.begin()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	err := c.Do(ctx, http.MethodPost, "/api/launch", nil, req, &body)
	if err != nil {
		c.finish(failure(err, "Failed to launch "+displayName(item)), nil)
		return false
	}
	if !body.Success {
		msg := body.Error
		if msg == "" {
			msg = body.Message
		}
		if msg == "" {
			msg = "Failed to launch " + displayName(item)
		}
		c.finish(msg, nil)
		return false
	}
	c.finish("", nil)

	if item.ID != "" {
		if _, err := c.trackRecent(ctx, item.ID); err != nil {
			slog.Debug("session: track recent play", "id", item.ID, "err", err)
		}
	}
	return true
}

// baseName returns the last non-empty segment of a Windows or POSIX path.
func baseName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" {
		return path
	}
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func displayName(item models.GameItem) string {
	if item.Title != "" {
		return item.Title
	}
	if item.ID != "" {
		return item.ID
	}
	return "item"
}
