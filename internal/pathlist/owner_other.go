//go:build !unix

package pathlist

import "io/fs"

func sysOwner(fs.FileInfo) (Owner, bool) {
	return Owner{}, false
}
