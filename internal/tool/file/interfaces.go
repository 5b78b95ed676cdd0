package file

import "os"

// pathResolver turns tool arguments into absolute paths.
type pathResolver interface {
	Abs(path string) (string, error)
}

// dirLister lists directory entries.
type dirLister interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.DirEntry, error)
}

// fileReader reads whole files or their tail.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, maxSize int64) ([]byte, error)
	ReadTail(path string, maxBytes int64) ([]byte, error)
}

// fileWriter writes files atomically.
type fileWriter interface {
	Stat(path string) (os.FileInfo, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}
