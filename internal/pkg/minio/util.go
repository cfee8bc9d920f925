package minio

import (
	"Parley/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO指定存储桶
func UploadFile(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// CopyToMain 将临时桶中的对象拷贝到主桶，正式持久化
func CopyToMain(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: MainBucket, Object: objectName},
		minio.CopySrcOptions{Bucket: TempBucket, Object: objectName},
	)
	if err != nil {
		return fmt.Errorf("failed to promote object: %w", err)
	}
	return nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, bucket, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.InternalUseSSL || cfg.InternalEndpoint == "" {
		protocol = "https"
	}

	endpoint := cfg.ExternalEndpoint
	if !cfg.UsePublicLink && cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, MainBucket, objectName)
}
