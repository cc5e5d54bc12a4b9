package pathlist

import (
	"io/fs"
	"os"
)

// Identity is the user and group the permission rule is evaluated for.
type Identity struct {
	UID uint32
	GID uint32
}

// CurrentIdentity returns the real user and group of this process.
func CurrentIdentity() Identity {
	return Identity{UID: uint32(os.Getuid()), GID: uint32(os.Getgid())}
}

// Owner is the owning user and group of a filesystem entry.
type Owner struct {
	UID uint32
	GID uint32
}

// IsUsableDir reports whether a directory with the given mode and owner can
// be entered by id. Callers must have checked that the entry is a directory.
func IsUsableDir(mode fs.FileMode, owner Owner, id Identity) bool {
	// most common first
	if mode&0o001 != 0 {
		return true
	}
	if owner.GID == id.GID && mode&0o010 != 0 {
		return true
	}
	if owner.UID == id.UID && mode&0o100 != 0 {
		return true
	}
	return false
}

// ownerOf extracts ownership from info. Filesystems that do not expose it
// (for example in-memory ones) report the entry as owned by id.
func ownerOf(info fs.FileInfo, id Identity) Owner {
	if o, ok := sysOwner(info); ok {
		return o
	}
	return Owner{UID: id.UID, GID: id.GID}
}
