package minio

import (
	"context"
	"io"
)

// Storage 把包级函数包装成对象存储实现，供服务注入
type Storage struct{}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return UploadFile(ctx, objectName, reader, size, contentType)
}

func (s *Storage) Delete(ctx context.Context, objectName string) error {
	return DeleteFile(ctx, objectName)
}

func (s *Storage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return ListFiles(ctx, prefix)
}

func (s *Storage) PublicURL(objectName string) string {
	return GetPublicURL(objectName)
}

func (s *Storage) ObjectName(url string) (string, bool) {
	return ObjectNameFromURL(url)
}
