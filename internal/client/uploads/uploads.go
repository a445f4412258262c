// Package uploads drives resumable chunked uploads, recording progress in the
// offline cache so an interrupted upload continues where it stopped.
package uploads

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophcache/internal/client/models"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

var (
	// ErrNothingToResume means there is no recorded progress or no stored
	// file for the upload.
	ErrNothingToResume = errors.New("nothing to resume")

	ErrPartSizeChanged = errors.New("part size changed since upload started")

	ErrInvalidPartSize = errors.New("invalid part size")
)

// Progress is the part of the cache facade the uploader needs.
type Progress interface {
	SetUploadingFile(ctx context.Context, fileID string, fileSize int64, file []byte, lastUploadedPart, totalParts int)
	GetUploadingFile(ctx context.Context, fileID string) (models.UploadProgress, bool)
	GetFile(ctx context.Context, fileID string) []byte
}

// Sender transmits one part. part is zero-based.
type Sender func(ctx context.Context, fileID string, part, total int, chunk []byte) error

type Uploader struct {
	Cache    Progress
	PartSize int64
	// Send is nil when parts are accepted locally.
	Send Sender
	Log  logging.Logger
}

// Parts returns how many parts of partSize a file of size bytes needs. An
// empty file is one empty part. A non-positive partSize yields 0.
func Parts(size, partSize int64) int {
	if partSize <= 0 {
		return 0
	}
	if size == 0 {
		return 1
	}
	return int((size + partSize - 1) / partSize)
}

func (u *Uploader) Start(ctx context.Context, fileID string, data []byte) error {
	return u.run(ctx, fileID, data, 0)
}

// Resume continues an interrupted upload from the part after the last one
// acknowledged.
func (u *Uploader) Resume(ctx context.Context, fileID string) error {
	if err := u.checkPartSize(); err != nil {
		return err
	}
	p, ok := u.Cache.GetUploadingFile(ctx, fileID)
	if !ok {
		return ErrNothingToResume
	}
	data := u.Cache.GetFile(ctx, fileID)
	if data == nil {
		return ErrNothingToResume
	}
	if Parts(int64(len(data)), u.PartSize) != p.TotalParts {
		return ErrPartSizeChanged
	}
	return u.run(ctx, fileID, data, p.LastUploadedPart+1)
}

func (u *Uploader) run(ctx context.Context, fileID string, data []byte, from int) error {
	if err := u.checkPartSize(); err != nil {
		return err
	}
	size := int64(len(data))
	total := Parts(size, u.PartSize)

	for part := from; part < total; part++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := int64(part) * u.PartSize
		end := min(start+u.PartSize, size)
		if u.Send != nil {
			if err := u.Send(ctx, fileID, part, total, data[start:end]); err != nil {
				return fmt.Errorf("send part %d/%d: %w", part+1, total, err)
			}
		}

		u.Cache.SetUploadingFile(ctx, fileID, size, data, part, total)
		u.logger().Debug(ctx, "part uploaded", "file", fileID, "part", part+1, "total", total)
	}
	return nil
}

func (u *Uploader) checkPartSize() error {
	if u.PartSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPartSize, u.PartSize)
	}
	return nil
}

func (u *Uploader) logger() logging.Logger {
	return logging.OrDiscard(u.Log)
}
