package nodelink_test

import (
	"fmt"

	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
	"github.com/adam-huganir/yutc-diagram/pkg/render/nodelink"
)

func ExampleInspect() {
	dot := nodelink.ToDOT(diagram.Architecture(), nodelink.Options{Theme: diagram.DefaultTheme()})

	sum, err := nodelink.Inspect(dot)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(sum.NodeIDs())
	for _, e := range sum.Edges {
		fmt.Println(e.From, "->", e.To, e.Styled())
	}
	// Output:
	// [yutc template forEach loadTemplates executeTemplate]
	// yutc -> template false
	// yutc -> forEach false
	// loadTemplates -> executeTemplate true
}
