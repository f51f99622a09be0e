package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are normalized to forward slashes; relative paths resolve against root.
type MemoryFileSystem struct {
	mu    sync.Mutex
	root  string
	files map[string]*memoryFile

	// WriteErr, when set, makes every WriteFileAtomic call fail without
	// touching existing content.
	WriteErr error

	// Unreadable paths fail ReadFile with fs.ErrPermission.
	Unreadable map[string]bool
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		root:       root,
		files:      make(map[string]*memoryFile),
		Unreadable: make(map[string]bool),
	}
	mfs.addDir(root)
	return mfs
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) addDir(dir string) {
	for d := dir; ; d = path.Dir(d) {
		if _, ok := mfs.files[d]; ok {
			return
		}
		mfs.files[d] = &memoryFile{info: &memoryFileInfo{
			name:    path.Base(d),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}}
		if d == "/" || d == "." {
			return
		}
	}
}

// AddFile adds a file, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(p string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(mfs.abs(p), []byte(content), 0o644)
}

func (mfs *MemoryFileSystem) put(abs string, data []byte, perm fs.FileMode) {
	mfs.addDir(path.Dir(abs))
	mfs.files[abs] = &memoryFile{
		content: append([]byte(nil), data...),
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(data)),
			mode:    perm,
			modTime: time.Now(),
		},
	}
}

// Content returns a file's content and whether it exists.
func (mfs *MemoryFileSystem) Content(p string) (string, bool) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	f, ok := mfs.files[mfs.abs(p)]
	if !ok || f.info.isDir {
		return "", false
	}
	return string(f.content), true
}

func (mfs *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.abs(p)
	if mfs.Unreadable[abs] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
	}
	f, ok := mfs.files[abs]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	if f.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrInvalid}
	}
	return append([]byte(nil), f.content...), nil
}

func (mfs *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	f, ok := mfs.files[mfs.abs(p)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return f.info, nil
}

func (mfs *MemoryFileSystem) MkdirAll(p string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.abs(p)
	if f, ok := mfs.files[abs]; ok && !f.info.isDir {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	mfs.addDir(abs)
	return nil
}

func (mfs *MemoryFileSystem) WriteFileAtomic(p string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if mfs.WriteErr != nil {
		return mfs.WriteErr
	}
	abs := mfs.abs(p)
	if _, ok := mfs.files[path.Dir(abs)]; !ok {
		return &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	mfs.put(abs, data, perm)
	return nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
