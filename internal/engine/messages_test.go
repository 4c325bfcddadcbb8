package engine

import (
	"encoding/json"
	"sync"
	"testing"

	"homeroom/internal/models"
)

func TestThreadByStudentSynthesizes(t *testing.T) {
	gw := newFakeGateway()
	e := newTestEngine(t, gw)

	e.AddClass(models.ClassInfo{ID: "c1", ClassName: "5A", HomeroomTeacher: "Ms. Lan"})
	e.AddStudent(models.Student{ID: "s1", ClassID: "c1", FullName: "An"})

	thread, err := e.ThreadByStudent("s1")
	if err != nil {
		t.Fatalf("ThreadByStudent failed: %v", err)
	}
	if thread.ThreadKey != "s1" {
		t.Errorf("ThreadKey = %q, want s1", thread.ThreadKey)
	}
	if thread.ID == "" || thread.LastMessageAt == "" {
		t.Errorf("thread missing defaults: %+v", thread)
	}

	var participants map[string]string
	if err := json.Unmarshal([]byte(thread.ParticipantsJSON), &participants); err != nil {
		t.Fatalf("participants not JSON: %v", err)
	}
	if participants["studentName"] != "An" || participants["className"] != "5A" {
		t.Errorf("participants = %v", participants)
	}

	e.Close()
	if n := gw.countCalls("messageThreads.create"); n != 1 {
		t.Errorf("messageThreads.create dispatched %d times, want 1", n)
	}
}

func TestThreadByStudentIdempotent(t *testing.T) {
	gw := newFakeGateway()
	e := newTestEngine(t, gw)

	first, err := e.ThreadByStudent("s1")
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}
	second, err := e.ThreadByStudent("s1")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("thread IDs differ: %s vs %s", first.ID, second.ID)
	}
	if got := len(e.Threads()); got != 1 {
		t.Errorf("threads = %d, want 1", got)
	}

	e.Close()
	if n := gw.countCalls("messageThreads.create"); n != 1 {
		t.Errorf("messageThreads.create dispatched %d times, want 1", n)
	}
}

func TestThreadByStudentConcurrent(t *testing.T) {
	e := newTestEngine(t, newFakeGateway())

	const n = 8
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			thread, err := e.ThreadByStudent("s1")
			if err != nil {
				t.Errorf("lookup %d failed: %v", i, err)
				return
			}
			ids[i] = thread.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("concurrent lookups produced different threads: %v", ids)
		}
	}
	if got := len(e.Threads()); got != 1 {
		t.Errorf("threads = %d, want 1", got)
	}
}

func TestSendMessageBumpsThread(t *testing.T) {
	gw := newFakeGateway()
	e := newTestEngine(t, gw)

	thread, err := e.ThreadByStudent("s1")
	if err != nil {
		t.Fatalf("ThreadByStudent failed: %v", err)
	}

	msg, err := e.SendMessage(thread.ID, models.RoleTeacher, "hello")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.Content != "hello" || msg.FromRole != models.RoleTeacher {
		t.Errorf("message = %+v", msg)
	}

	msgs := e.Messages(thread.ID)
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}

	threads := e.Threads()
	if threads[0].LastMessageAt != msg.CreatedAt {
		t.Errorf("thread LastMessageAt = %q, want %q", threads[0].LastMessageAt, msg.CreatedAt)
	}

	e.Close()
	if n := gw.countCalls("messages.create"); n != 1 {
		t.Errorf("messages.create dispatched %d times, want 1", n)
	}
	if n := gw.countCalls("messageThreads.update"); n != 1 {
		t.Errorf("messageThreads.update dispatched %d times, want 1", n)
	}
}
