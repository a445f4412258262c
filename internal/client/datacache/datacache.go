package datacache

import (
	"context"
	"maps"
	"time"

	"github.com/dmitrijs2005/gophcache/internal/client/cache"
	"github.com/dmitrijs2005/gophcache/internal/client/models"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

const (
	DefaultMessagesPersistLimit = 20
	DefaultFanOutLimit          = 8
)

type DataCache struct {
	cache         *cache.Cache
	log           logging.Logger
	now           func() time.Time
	messagesLimit int
	fanOut        int
}

type Option func(*DataCache)

func WithLogger(l logging.Logger) Option {
	return func(d *DataCache) { d.log = logging.OrDiscard(l) }
}

// WithClock overrides the time source used by SetQueryTime.
func WithClock(now func() time.Time) Option {
	return func(d *DataCache) { d.now = now }
}

// WithMessagesPersistLimit sets how many messages of a folder are persisted.
// Non-positive values keep the default.
func WithMessagesPersistLimit(n int) Option {
	return func(d *DataCache) {
		if n > 0 {
			d.messagesLimit = n
		}
	}
}

func WithFanOutLimit(n int) Option {
	return func(d *DataCache) {
		if n > 0 {
			d.fanOut = n
		}
	}
}

func New(c *cache.Cache, opts ...Option) *DataCache {
	d := &DataCache{
		cache:         c,
		log:           logging.Discard(),
		now:           time.Now,
		messagesLimit: DefaultMessagesPersistLimit,
		fanOut:        DefaultFanOutLimit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Flush waits for pending persistence.
func (d *DataCache) Flush(ctx context.Context) error { return d.cache.Flush(ctx) }

// Close flushes pending persistence and stops accepting more.
func (d *DataCache) Close(ctx context.Context) error { return d.cache.Close(ctx) }

func read[T any](ctx context.Context, d *DataCache, c Concept, key string, provided T) T {
	return cache.Read(ctx, d.cache, key, fallbackFor(c, provided))
}

func reset[T any](ctx context.Context, d *DataCache, c Concept, key string) {
	d.cache.Write(ctx, key, emptyOf[T](c))
}

// Now reads the clock that stamps query times.
func (d *DataCache) Now() time.Time { return d.now() }

func (d *DataCache) SetQueryTime(ctx context.Context, name string) {
	d.cache.Write(ctx, QueryKey(name), d.now().UnixMilli())
}

// GetQueryTime returns the epoch millis of the last refresh of name, or 0.
func (d *DataCache) GetQueryTime(ctx context.Context, name string) int64 {
	return read(ctx, d, ConceptQueryTime, QueryKey(name), int64(0))
}

func (d *DataCache) SetMeta(ctx context.Context, meta models.Meta) {
	d.cache.Write(ctx, KeyMeta, maps.Clone(meta))
}

// GetMeta returns the stored meta, or initial when there is none.
func (d *DataCache) GetMeta(ctx context.Context, initial models.Meta) models.Meta {
	return maps.Clone(read(ctx, d, ConceptMeta, KeyMeta, initial))
}

func (d *DataCache) ResetMeta(ctx context.Context) {
	reset[models.Meta](ctx, d, ConceptMeta, KeyMeta)
}

func (d *DataCache) SetUser(ctx context.Context, u *models.User) {
	d.cache.Write(ctx, KeyUser, u)
}

func (d *DataCache) GetUser(ctx context.Context) *models.User {
	return read[*models.User](ctx, d, ConceptUser, KeyUser, nil)
}

func (d *DataCache) ResetUser(ctx context.Context) {
	reset[*models.User](ctx, d, ConceptUser, KeyUser)
}

func (d *DataCache) SetSettings(ctx context.Context, s models.Settings) {
	d.cache.Write(ctx, KeySettings, s)
}

func (d *DataCache) GetSettings(ctx context.Context) models.Settings {
	return read(ctx, d, ConceptSettings, KeySettings, models.Settings{})
}

// MergeSettings applies the non-nil fields of p over the current settings and
// returns the result.
func (d *DataCache) MergeSettings(ctx context.Context, p models.SettingsPatch) models.Settings {
	s := d.GetSettings(ctx).Merge(p)
	d.SetSettings(ctx, s)
	return s
}

func (d *DataCache) SetFolders(ctx context.Context, f models.Folders) {
	d.cache.Write(ctx, KeyFolders, f.Clone())
}

func (d *DataCache) GetFolders(ctx context.Context) models.Folders {
	return read(ctx, d, ConceptFolders, KeyFolders, models.Folders{}).Clone()
}

func (d *DataCache) ResetFolders(ctx context.Context) {
	reset[models.Folders](ctx, d, ConceptFolders, KeyFolders)
}

// SetFolderMessages keeps every message in memory but persists only the
// first messagesLimit of them, the newest ones.
//
// Mappings are copied in and out, so only Set* changes what the cache holds.
func (d *DataCache) SetFolderMessages(ctx context.Context, folderID string, m models.FolderMessages) {
	persisted := m
	if m.Len() > d.messagesLimit {
		persisted = m.Head(d.messagesLimit)
	}
	d.cache.Write(ctx, MessagesKey(folderID), m.Clone(), persisted)
}

func (d *DataCache) GetFolderMessages(ctx context.Context, folderID string) models.FolderMessages {
	return read(ctx, d, ConceptFolderMessages, MessagesKey(folderID), models.FolderMessages{}).Clone()
}

func (d *DataCache) ResetFolderMessages(ctx context.Context, folderID string) {
	reset[models.FolderMessages](ctx, d, ConceptFolderMessages, MessagesKey(folderID))
}

func (d *DataCache) SetFile(ctx context.Context, fileID string, b []byte) {
	d.cache.Write(ctx, FileKey(fileID), b)
}

// GetFile returns the stored blob or nil.
func (d *DataCache) GetFile(ctx context.Context, fileID string) []byte {
	return read[[]byte](ctx, d, ConceptFile, FileKey(fileID), nil)
}

func (d *DataCache) RemoveFile(ctx context.Context, fileID string) {
	d.cache.Delete(ctx, FileKey(fileID))
}

// ResetSession normalizes everything tied to the signed-in account, then
// drops the rest of the memory tier so the next session reads from the store.
func (d *DataCache) ResetSession(ctx context.Context) {
	d.ResetFoldersMessages(ctx)
	d.ResetFolders(ctx)
	d.ResetUser(ctx)
	d.ResetMeta(ctx)
	d.cache.Clear()
	d.log.Info(ctx, "session reset")
}
