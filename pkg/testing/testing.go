package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests that touch the filesystem (logs/, fixtures) expect to run from the
	// module root, so importing this package moves there first
	//
	//   import (
	//     _ "liyu1981.xyz/machine-stock/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
}
