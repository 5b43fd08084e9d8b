package drives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"drivesync/pkg/logging"
)

const channelDBSuffix = ".sqlite3"

// ChannelDatabaseDir returns where channel databases live on a drive mounted at
// mountPoint.
func ChannelDatabaseDir(mountPoint, contentDir string) string {
	return filepath.Join(mountPoint, contentDir, "content", "databases")
}

// ProbeChannels lists the channels installed on the drive mounted at mountPoint.
// A drive without a content directory has no channels. Databases that cannot be
// read are skipped.
func ProbeChannels(ctx context.Context, mountPoint, contentDir string) ([]ChannelInfo, error) {
	dir := ChannelDatabaseDir(mountPoint, contentDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var channels []ChannelInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), channelDBSuffix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(entry.Name(), channelDBSuffix)
		info, err := readChannelMetadata(ctx, filepath.Join(dir, entry.Name()), id)
		if err != nil {
			logging.Warn("Drives", "skipping channel database %s: %v", entry.Name(), err)
			continue
		}
		channels = append(channels, info)
	}

	sort.SliceStable(channels, func(i, j int) bool {
		if channels[i].Name != channels[j].Name {
			return channels[i].Name < channels[j].Name
		}
		return channels[i].ID < channels[j].ID
	})
	return channels, nil
}

// readChannelMetadata opens a channel database read-only and reads the row
// describing channel id.
func readChannelMetadata(ctx context.Context, path, id string) (ChannelInfo, error) {
	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return ChannelInfo{}, err
	}
	defer db.Close()

	info := ChannelInfo{ID: id}
	row := db.QueryRowContext(ctx,
		`SELECT name, version FROM content_channelmetadata WHERE id = ?`, id)
	if err := row.Scan(&info.Name, &info.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChannelInfo{}, fmt.Errorf("no metadata for channel %s", id)
		}
		return ChannelInfo{}, err
	}
	return info, nil
}
