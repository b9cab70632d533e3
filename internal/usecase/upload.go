package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"storefront/internal/validator"
)

// 画像アップロードの上限（KB）
const maxImageKB = 2048

var imageExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true}

// multipartに依存しないアップロードファイル
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// 画像の保存先（infra/filestore）
type FileStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// jpeg/png/jpg かつ 2048KB以下
func imageRule(field string, up *Upload) validator.Rule {
	ok := up == nil ||
		(imageExts[strings.ToLower(filepath.Ext(up.Filename))] && up.Size <= maxImageKB*1024)
	return validator.Must(field, ok,
		fmt.Sprintf("The %s field must be a jpeg, png or jpg image of at most %d kilobytes.", field, maxImageKB))
}

func putUpload(ctx context.Context, fs FileStore, up *Upload) (string, error) {
	rc, err := up.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", up.Filename, err)
	}
	defer rc.Close()

	ref, err := fs.Put(ctx, up.Filename, rc)
	if err != nil {
		return "", fmt.Errorf("store upload %s: %w", up.Filename, err)
	}
	return ref, nil
}

// 新しい画像を置いてから行を書く。書けたら古い画像を消し、失敗したら新しい画像を消す。
// upがnilならrefは空で呼ぶ。
func swapUpload(ctx context.Context, fs FileStore, up *Upload, oldRef string, write func(ref string) error) error {
	if up == nil {
		return write("")
	}

	ref, err := putUpload(ctx, fs, up)
	if err != nil {
		return err
	}
	if err := write(ref); err != nil {
		discardUploads(ctx, fs, []string{ref})
		return err
	}
	if oldRef != "" && oldRef != ref {
		discardUploads(ctx, fs, []string{oldRef})
	}
	return nil
}

// 失敗したトランザクションの後始末
func discardUploads(ctx context.Context, fs FileStore, refs []string) {
	for _, ref := range refs {
		_ = fs.Delete(ctx, ref)
	}
}
