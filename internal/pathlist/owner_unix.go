//go:build unix

package pathlist

import (
	"io/fs"
	"syscall"
)

func sysOwner(info fs.FileInfo) (Owner, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return Owner{}, false
	}
	return Owner{UID: st.Uid, GID: st.Gid}, true
}
