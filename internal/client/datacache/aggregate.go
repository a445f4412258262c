package datacache

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophcache/internal/client/models"
)

// GetFoldersMessages reads the messages of every known folder concurrently
// and returns them keyed by folder id in folder order. A folder whose read
// fails contributes an empty mapping.
func (d *DataCache) GetFoldersMessages(ctx context.Context) models.FoldersMessages {
	ids := d.GetFolders(ctx).Keys()
	results := make([]models.FolderMessages, len(ids))

	var g errgroup.Group
	g.SetLimit(d.fanOut)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = d.GetFolderMessages(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	out := models.NewOrdered[models.FolderMessages]()
	for i, id := range ids {
		out.Set(id, results[i])
	}
	return out
}

// ResetFoldersMessages resets the messages of every known folder and returns
// once all resets are issued.
func (d *DataCache) ResetFoldersMessages(ctx context.Context) {
	ids := d.GetFolders(ctx).Keys()

	var g errgroup.Group
	g.SetLimit(d.fanOut)
	for _, id := range ids {
		g.Go(func() error {
			d.ResetFolderMessages(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
}
