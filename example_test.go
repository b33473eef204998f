package routepattern_test

import (
	"fmt"

	"github.com/ChillFish8/routepattern"
)

func ExampleCompile() {
	route, err := routepattern.Compile("/users/{id:int}/profile/")
	if err != nil {
		panic(err)
	}

	fmt.Println(route.Pattern())
	fmt.Println(route.Exec("/users/42/profile/").Groups["id"])
	fmt.Println(route.Test("/users/abc/profile/"))
	// Output:
	// \A(?:/users/(?P<id>[0-9]+)/profile/)\z
	// 42
	// false
}

func ExampleValue_Decode() {
	route := routepattern.MustCompile("/orders/{id:int}/items/{rest:path}")

	result := route.Exec("/orders/1024/items/a/b")
	for _, v := range result.Values {
		decoded, err := v.Decode()
		if err != nil {
			panic(err)
		}

		fmt.Printf("%s: %v (%T)\n", v.Param.Name, decoded, decoded)
	}
	// Output:
	// id: 1024 (uint64)
	// rest: a/b (string)
}
