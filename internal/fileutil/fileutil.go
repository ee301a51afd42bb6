package fileutil

import "os"

// OwnerReadWrite is the file permission mode for output files that may
// contain extracted data from sensitive documents (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for output files intended to
// be read by other tools and users.
const ReadableByAll os.FileMode = 0o644
