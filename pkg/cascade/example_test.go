package cascade_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/eventkit/pkg/broadcast"
	"github.com/dmitrymomot/eventkit/pkg/cascade"
)

func ExampleRunWorker() {
	source := broadcast.New[int]()
	evens := make(chan int, 4)

	inlet := make(chan cascade.Cascade)
	go cascade.RunWorker(inlet)
	defer close(inlet)

	inlet <- cascade.FromQueue(source).
		Push(cascade.SendTo(evens), false, func(n int) bool { return n%2 == 0 })

	source.EmitBatch(1, 2, 3, 4)

	fmt.Println(<-evens)
	fmt.Println(<-evens)
	// Output:
	// 2
	// 4
}

func ExampleWorker() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := broadcast.New[string]()
	urgent := make(chan string, 4)

	c := cascade.FromQueue(source).
		Push(cascade.SendTo(urgent), false, func(s string) bool {
			return strings.HasPrefix(s, "alert:")
		})

	w, _ := cascade.NewWorker(cascade.WithCascades(c))
	_ = w.Start(ctx)
	defer w.Stop()

	source.Emit("alert: disk full")
	source.Emit("routine heartbeat")

	fmt.Println(<-urgent)
	// Output: alert: disk full
}
