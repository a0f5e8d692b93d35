package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

var ErrNotInitialized = errors.New("minio client is not initialized")

// ObjectInfo 桶内对象的简要信息
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", ErrNotInitialized
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return ErrNotInitialized
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// ListFiles 列出前缀下的全部对象
func ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	if Client == nil {
		return nil, ErrNotInitialized
	}

	objects := make([]ObjectInfo, 0)
	for obj := range Client.ListObjects(ctx, BucketName, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, LastModified: obj.LastModified})
	}
	return objects, nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	return publicBase() + objectName
}

// ObjectNameFromURL 从公共 URL 还原对象名，非本桶地址返回 false
func ObjectNameFromURL(url string) (string, bool) {
	base := publicBase()
	if !strings.HasPrefix(url, base) {
		return "", false
	}
	return strings.TrimPrefix(url, base), true
}

func publicBase() string {
	protocol := "http"
	if publicSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/", protocol, publicEndpoint, BucketName)
}
