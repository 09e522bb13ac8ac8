package catch_test

import (
	"fmt"
	"os"
	"syscall"

	"github.com/msto63/elm/foundation/core/catch"
	elmlog "github.com/msto63/elm/foundation/core/log"
)

func openConfig(path string) {
	catch.RaiseIO(path, syscall.ENOENT, "open config")
}

func ExampleTry() {
	l := elmlog.New("LOG", os.Stdout)
	defer l.Release()

	err := catch.Try(func() {
		openConfig("elm.toml")
		fmt.Println("not reached")
	})
	if err != nil {
		l.LogError(err)
		err.Destroy()
	}
	fmt.Println("protected:", catch.Protected())

	// Output:
	// LOG: open config (elm.toml): no such file or directory
	// protected: false
}

func ExampleTryValue() {
	s := catch.NewStack()

	n, err := catch.TryValue(s, func() int {
		s.Raisef("no answer today")
		return 42
	})
	fmt.Println(n, err)
	err.Destroy()

	// Output:
	// 0 no answer today
}
