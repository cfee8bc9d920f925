package job

import (
	"Parley/internal/api/dto"
	"Parley/internal/pkg/consts"
	"Parley/internal/pkg/minio"
	pkgmongo "Parley/internal/pkg/mongo"
	"Parley/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// MediaCleanupJob 清理超期且未被任何消息引用的临时媒体文件
type MediaCleanupJob struct {
	messageRepo pkgmongo.MessageRepo
}

func NewMediaCleanupJob(messageRepo pkgmongo.MessageRepo) *MediaCleanupJob {
	return &MediaCleanupJob{messageRepo: messageRepo}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	allMedia, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		log.Error("failed to get media temp hash", "err", err)
		return
	}

	now := time.Now().Unix()
	expiration := int64(24 * 60 * 60)
	count := 0

	for fileKey, val := range allMedia {
		var meta dto.MediaTempMetadata
		if err := json.Unmarshal([]byte(val), &meta); err != nil {
			log.Warn("invalid media meta format", "fileKey", fileKey)
			continue
		}

		if now-meta.CreatedAt <= expiration {
			continue
		}

		// 已入正式消息的媒体不归临时清理管
		referenced, err := s.messageRepo.HasImageRef(ctx, fileKey)
		if err != nil {
			log.Error("failed to check image reference", "fileKey", fileKey, "err", err)
			continue
		}
		if referenced {
			if err = redis.HDel(ctx, consts.MediaTempKey, fileKey); err != nil {
				log.Error("failed to remove media token from redis", "fileKey", fileKey, "err", err)
			}
			continue
		}

		if err = minio.DeleteFile(ctx, minio.TempBucket, fileKey); err != nil {
			log.Error("failed to delete expired file from minio", "fileKey", fileKey, "err", err)
			continue
		}

		if err = redis.HDel(ctx, consts.MediaTempKey, fileKey); err != nil {
			log.Error("failed to remove media token from redis", "fileKey", fileKey, "err", err)
		}

		count++
		log.Info("cleanup expired media resource", "fileKey", fileKey, "mime", meta.MimeType)
	}

	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}
