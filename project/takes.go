package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bob-yamaguchi/tex-shooter/logger"
)

// ImportOptions describes where takes come from and which files count.
type ImportOptions struct {
	SrcDir            string
	RawExtensions     []string
	JPGExtensions     []string
	SidecarExtensions []string

	DryRun    bool
	Overwrite bool
	// ClearSource removes the imported takes from SrcDir afterwards. Only
	// files present in the process directory are removed.
	ClearSource bool

	Logger logger.Interface
}

// ImportResult counts what ImportTakes did.
type ImportResult struct {
	Copied  int
	Pruned  int
	Removed int
}

// ImportTakes copies the raw and jpg takes from opts.SrcDir into the process
// directory, then removes edit sidecars left without a raw file.
func (s *Settings) ImportTakes(process string, opts ImportOptions) (ImportResult, error) {
	var res ImportResult
	if !s.HasProcess(process) {
		return res, fmt.Errorf("%w: %s", ErrProcessNotFound, process)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	dir := s.ProcessDir(process)

	exts := append(append([]string{}, opts.RawExtensions...), opts.JPGExtensions...)
	for _, ext := range exts {
		n, err := copyTakes(opts.SrcDir, dir, ext, opts.DryRun, opts.Overwrite, opts.Logger)
		res.Copied += n
		if err != nil {
			return res, fmt.Errorf("copying .%s takes (copied %d): %w", ext, n, err)
		}
	}

	if opts.DryRun {
		return res, nil
	}

	for _, ext := range opts.SidecarExtensions {
		n, err := pruneSidecars(ext, dir, opts.RawExtensions, opts.Logger)
		res.Pruned += n
		if err != nil {
			return res, fmt.Errorf("pruning .%s sidecars: %w", ext, err)
		}
	}

	if opts.ClearSource {
		n, err := removeTakes(opts.SrcDir, dir, exts, opts.Logger)
		res.Removed = n
		if err != nil {
			return res, fmt.Errorf("clearing %s (removed %d): %w", opts.SrcDir, n, err)
		}
	}

	return res, nil
}

// copyTakes copies files with the given extension from srcDir to dstDir.
// If dryRun is true, it counts files without copying.
// If overwrite is false, files already in dstDir are skipped.
func copyTakes(srcDir, dstDir, ext string, dryRun, overwrite bool, log logger.Interface) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}

	var count atomic.Int32
	var wg sync.WaitGroup
	errsChan := make(chan error, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		wg.Go(func() {
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), "."+ext) {
				return
			}

			dstPath := filepath.Join(dstDir, name)
			if !overwrite {
				if _, statErr := os.Stat(dstPath); statErr == nil {
					log.Debugf("skipping existing take: %s", name)
					return
				}
			}

			if dryRun {
				log.Infof("[dry-run] would import %s", name)
				count.Add(1)
				return
			}

			if err := copyFile(filepath.Join(srcDir, name), dstPath); err != nil {
				errsChan <- takeCopyError{fileName: name, err: err}
				return
			}

			log.Infof("imported %s", name)
			count.Add(1)
		})
	}

	wg.Wait()
	close(errsChan)

	for e := range errsChan {
		err = errors.Join(err, e)
	}

	return int(count.Load()), err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// pruneSidecars deletes edit sidecars in dir that have no raw file with one
// of rawExtensions next to them.
func pruneSidecars(sidecarExtension, dir string, rawExtensions []string, log logger.Interface) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading directory: %w", err)
	}

	var count atomic.Int32
	var wg sync.WaitGroup
	errsChan := make(chan error, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		wg.Go(func() {
			name := entry.Name()
			if !strings.EqualFold(filepath.Ext(name), "."+sidecarExtension) {
				return
			}

			base := strings.TrimSuffix(name, filepath.Ext(name))
			for _, rawExt := range rawExtensions {
				_, err := os.Stat(filepath.Join(dir, base+"."+rawExt))
				if err == nil {
					return
				}
				if !errors.Is(err, os.ErrNotExist) {
					errsChan <- fmt.Errorf("checking raw for %s: %w", name, err)
					return
				}
			}

			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				errsChan <- fmt.Errorf("removing sidecar %s: %w", name, err)
				return
			}

			log.Infof("removed orphan sidecar %s", name)
			count.Add(1)
		})
	}

	wg.Wait()
	close(errsChan)

	for e := range errsChan {
		err = errors.Join(err, e)
	}

	return int(count.Load()), err
}

// removeTakes removes the files of srcDir with one of exts that also exist in
// dstDir.
func removeTakes(srcDir, dstDir string, exts []string, log logger.Interface) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}

	var count atomic.Int32
	var wg sync.WaitGroup
	errsChan := make(chan error, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !slices.ContainsFunc(exts, func(ext string) bool {
			return strings.EqualFold(filepath.Ext(entry.Name()), "."+ext)
		}) {
			continue
		}

		wg.Go(func() {
			name := entry.Name()
			if _, err := os.Stat(filepath.Join(dstDir, name)); err != nil {
				log.Warnf("keeping %s: not in the process directory", name)
				return
			}
			if err := os.Remove(filepath.Join(srcDir, name)); err != nil {
				errsChan <- fmt.Errorf("removing %s: %w", name, err)
				return
			}
			log.Debugf("removed %s from the card", name)
			count.Add(1)
		})
	}

	wg.Wait()
	close(errsChan)

	for e := range errsChan {
		err = errors.Join(err, e)
	}

	return int(count.Load()), err
}
