package datacache

import (
	"context"

	"github.com/dmitrijs2005/gophcache/internal/client/models"
)

// SetUploadingFile records that part lastUploadedPart of totalParts was
// acknowledged. The final part removes the progress record. The first part
// stores the whole file so the upload can be resumed after a restart.
// Parts are not checked for monotonicity.
func (d *DataCache) SetUploadingFile(ctx context.Context, fileID string, fileSize int64, file []byte, lastUploadedPart, totalParts int) {
	key := UploadKey(fileID)
	progress := models.UploadProgress{LastUploadedPart: lastUploadedPart, TotalParts: totalParts}

	if progress.Complete() {
		d.cache.Delete(ctx, key)
		d.log.Debug(ctx, "upload complete", "file", fileID, "size", fileSize)
	} else {
		d.cache.Write(ctx, key, &progress)
	}
	if lastUploadedPart == 0 {
		d.SetFile(ctx, fileID, file)
	}
}

// GetUploadingFile returns the resumable progress of fileID. ok is false when
// the upload never started or has completed.
func (d *DataCache) GetUploadingFile(ctx context.Context, fileID string) (models.UploadProgress, bool) {
	p := read[*models.UploadProgress](ctx, d, ConceptUploadProgress, UploadKey(fileID), nil)
	if p == nil {
		return models.UploadProgress{}, false
	}
	return *p, true
}

// UploadStatus tells a finished upload from one that never started. The
// distinction only holds within the process that completed it.
func (d *DataCache) UploadStatus(ctx context.Context, fileID string) models.UploadState {
	if d.cache.Tombstoned(UploadKey(fileID)) {
		return models.UploadCompleted
	}
	if _, ok := d.GetUploadingFile(ctx, fileID); ok {
		return models.UploadInProgress
	}
	return models.UploadNotStarted
}
