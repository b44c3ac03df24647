package constants

import "os"

const (
	// DefaultFilePermissions sets the permissions for written response bodies and config files: (rw-r--r--).
	DefaultFilePermissions os.FileMode = 0o644

	// DefaultFolderPermissions sets the permissions for folders created on the way to an output file: (rwxr-xr-x).
	DefaultFolderPermissions os.FileMode = 0o755
)

// StdoutFilename is the output name that means standard output.
const StdoutFilename = "-"
