package ports

type AccessMode int

const (
	ReadWrite = iota
	ReadWriteExecute
	ReadAllWriteOwner
)

// FileSystem is the storage the editor reads documents from and writes them
// to. Relative paths resolve against the configured working directory and a
// leading "~" expands to the user's home directory.
type FileSystem interface {
	ResolvePath(path string) (string, error)
	ReadFile(path string) ([]byte, error)
	// ReadFileIfExists reports false instead of an error for a missing file.
	ReadFileIfExists(path string) ([]byte, bool, error)
	// WriteFile creates missing parent directories.
	WriteFile(path string, content []byte, accessMode AccessMode) error
	FileExists(path string) (bool, error)
	// RemoveFile succeeds when the file does not exist.
	RemoveFile(path string) error
}
