package stager

import (
	"os"

	"github.com/go-git/go-billy/v5/util"
)

// mirror makes dst an exact copy of the directory src: remove everything
// at dst, then copy src recursively. Extras previously present at dst are
// gone afterwards. The source is checked before anything is deleted, so a
// missing source never costs the existing destination.
func (s *Stager) mirror(src, dst string) error {
	info, err := s.FS.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &StagingError{Op: OpCopy, Path: src, Err: ErrSourceMissing}
		}
		return &StagingError{Op: OpCopy, Path: src, Err: err}
	}
	if !info.IsDir() {
		return &StagingError{Op: OpCopy, Path: src, Err: ErrSourceMissing}
	}

	if err := util.RemoveAll(s.FS, dst); err != nil {
		return &StagingError{Op: OpRemove, Path: dst, Err: err}
	}
	return s.copyDir(src, dst)
}

// copyDir recursively copies the directory src to dst.
func (s *Stager) copyDir(src, dst string) error {
	if err := s.FS.MkdirAll(dst, 0o755); err != nil {
		return &StagingError{Op: OpMkdir, Path: dst, Err: err}
	}

	entries, err := s.FS.ReadDir(src)
	if err != nil {
		return &StagingError{Op: OpCopy, Path: src, Err: err}
	}
	for _, entry := range entries {
		from := s.FS.Join(src, entry.Name())
		to := s.FS.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := s.copyDir(from, to); err != nil {
				return err
			}
			continue
		}
		if err := s.copyFile(from, to); err != nil {
			return err
		}
	}
	return nil
}
