package queue_test

import (
	"testing"

	"github.com/randomizedcoder/tsqueue/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkBool bool

// Direct type benchmarks (true performance floor)

func BenchmarkQueue_TSQueue_PushPop_Direct(b *testing.B) {
	q := queue.New[int]()
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.TryPop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Channel_PushPop_Direct(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.TryPush(i)
		val, ok = q.TryPop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_RingBuffer_PushPop_Direct(b *testing.B) {
	q := queue.NewRingBuffer[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.TryPush(i)
		val, ok = q.TryPop()
	}
	sinkInt = val
	sinkBool = ok
}

// Interface benchmarks (with dynamic dispatch overhead)

func benchInterface(b *testing.B, q queue.Queue[int]) {
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.TryPush(i)
		val, ok = q.TryPop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_TSQueue_PushPop_Interface(b *testing.B) {
	benchInterface(b, queue.New[int]())
}

func BenchmarkQueue_Channel_PushPop_Interface(b *testing.B) {
	benchInterface(b, queue.NewChannel[int](1024))
}

func BenchmarkQueue_Sharded_PushPop_Interface(b *testing.B) {
	q, err := queue.NewSharded[int](1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	benchInterface(b, q)
}

// Blocking hand-off: one producer, one consumer parked in WaitAndPop.

func BenchmarkQueue_TSQueue_Handoff(b *testing.B) {
	q := queue.New[int]()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < b.N; i++ {
			sinkInt = q.WaitAndPop()
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(i)
	}
	<-done
}

// MPSC: N producers, 1 consumer

func benchMPSC(b *testing.B, q queue.Queue[int], producers int) {
	done := make(chan struct{})
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			default:
				q.TryPop()
			}
		}
	}()

	b.SetParallelism(producers)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			for !q.TryPush(i) {
			}
			i++
		}
	})
	b.StopTimer()
	close(done)
	<-consumerDone
}

func BenchmarkQueue_MPSC_TSQueue_4P(b *testing.B) {
	benchMPSC(b, queue.New[int](), 4)
}

func BenchmarkQueue_MPSC_Channel_4P(b *testing.B) {
	benchMPSC(b, queue.NewChannel[int](1024), 4)
}

func BenchmarkQueue_MPSC_Sharded_4P_4S(b *testing.B) {
	q, err := queue.NewSharded[int](1024, 4)
	if err != nil {
		b.Fatal(err)
	}
	benchMPSC(b, q, 4)
}

func BenchmarkQueue_TSQueue_Clone(b *testing.B) {
	q := queue.New[int]()
	for i := 0; i < 1024; i++ {
		q.Push(i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var n int
	for i := 0; i < b.N; i++ {
		n = q.Clone().Len()
	}
	sinkInt = n
}
