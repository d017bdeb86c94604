package queue_test

import (
	"fmt"

	"github.com/randomizedcoder/tsqueue/internal/queue"
)

func ExampleTSQueue() {
	q := queue.New[string]()
	go func() {
		q.Push("a")
		q.Push("b")
	}()

	fmt.Println(q.WaitAndPop(), q.WaitAndPop())
	// Output:
	// a b
}

func ExampleTSQueue_TryPopInto() {
	q := queue.New[int]()
	out := -1
	fmt.Println(q.TryPopInto(&out), out)

	q.Push(5)
	fmt.Println(q.TryPopInto(&out), out)
	// Output:
	// false -1
	// true 5
}

func ExampleTSQueue_PushFrom() {
	q := queue.New[[]string]()
	batch := []string{"x", "y"}
	if err := q.PushFrom(&batch); err != nil {
		fmt.Println(err)
	}
	fmt.Println(batch == nil, q.Len())

	err := q.PushFrom(nil)
	fmt.Println(queue.IsInvalidOperation(err))
	// Output:
	// true 1
	// true
}

func ExampleTSQueue_Clone() {
	q := queue.New[int]()
	q.Push(1)
	q.Push(2)

	c := q.Clone()
	q.Push(3)
	fmt.Println(q.ToSlice(), c.ToSlice())
	// Output:
	// [1 2 3] [1 2]
}
