package kodi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vmunix/listbridge/internal/host"
)

const (
	videoPlaylistID = 1
	globalSearchID  = "script.globalsearch"

	notificationMillis = 5000

	moviePathPrefix = "videodb://movies/titles/"
)

// MoviePath returns the library path Kodi resolves to a movie's file.
func MoviePath(movieID int) string {
	return moviePathPrefix + strconv.Itoa(movieID)
}

// playItem opens library movies by id and anything else as a file.
func playItem(path string) map[string]any {
	if rest, ok := strings.CutPrefix(path, moviePathPrefix); ok {
		if id, err := strconv.Atoi(strings.TrimSuffix(rest, "/")); err == nil && id > 0 {
			return map[string]any{"movieid": id}
		}
	}
	return map[string]any{"file": path}
}

// Play clears the video playlist, closes open dialogs and starts path.
func (c *Client) Play(ctx context.Context, path string) error {
	if err := c.Call(ctx, "Playlist.Clear", map[string]any{"playlistid": videoPlaylistID}, nil); err != nil {
		return fmt.Errorf("clear playlist: %w", err)
	}
	if err := c.Call(ctx, "Dialog.Close", map[string]any{"dialog": "all", "force": true}, nil); err != nil {
		return fmt.Errorf("close dialogs: %w", err)
	}
	if err := c.Call(ctx, "Player.Open", map[string]any{"item": playItem(path)}, nil); err != nil {
		return fmt.Errorf("open player: %w", err)
	}
	c.log.Info("playback started", "path", path)
	return nil
}

// GlobalSearch runs the global search add-on with query.
func (c *Client) GlobalSearch(ctx context.Context, query string) error {
	params := map[string]any{
		"addonid": globalSearchID,
		"params":  map[string]string{"searchstring": query},
	}
	if err := c.Call(ctx, "Addons.ExecuteAddon", params, nil); err != nil {
		return fmt.Errorf("global search: %w", err)
	}
	return nil
}

// Notify shows an on-screen notification. Failures are logged, not returned.
func (c *Client) Notify(ctx context.Context, n host.Notification) {
	image := "info"
	switch n.Level {
	case host.LevelWarning:
		image = "warning"
	case host.LevelError:
		image = "error"
	}
	params := map[string]any{
		"title":       n.Heading,
		"message":     n.Message,
		"image":       image,
		"displaytime": notificationMillis,
	}
	if err := c.Call(ctx, "GUI.ShowNotification", params, nil); err != nil {
		c.log.Warn("notification failed", "heading", n.Heading, "error", err)
	}
}

var (
	_ host.Player   = (*Client)(nil)
	_ host.Notifier = (*Client)(nil)
)
