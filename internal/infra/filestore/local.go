package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// アップロード画像をローカルディスクに保存する。
// 参照文字列は "<URLPrefix>/<uuid><ext>"。
type Local struct {
	Dir       string
	URLPrefix string
}

// DI（ディレクトリは無ければ作る）
func NewLocal(dir string, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// 保存して参照を返す
func (s *Local) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	dst := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close file: %w", err)
	}

	return s.URLPrefix + "/" + name, nil
}

// 参照先のファイルを削除（無ければ何もしない）
func (s *Local) Delete(ctx context.Context, ref string) error {
	name, ok := s.nameOf(ref)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// このストアが発行した参照だけ扱う（外部URLやパス操作は無視）
func (s *Local) nameOf(ref string) (string, bool) {
	if ref == "" || !strings.HasPrefix(ref, s.URLPrefix+"/") {
		return "", false
	}
	name := path.Base(strings.TrimPrefix(ref, s.URLPrefix+"/"))
	if name == "." || name == "/" || name == ".." {
		return "", false
	}
	return name, true
}
