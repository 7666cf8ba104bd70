package ipc

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/napgate/napgate/common"
)

// isolate points the IPC directory at a fresh temp dir so tests never touch
// real named objects or interfere with each other.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(common.IPCDirEnv, t.TempDir())
}

func TestDetectRunningWithoutPrimary(t *testing.T) {
	isolate(t)
	if DetectRunning() {
		t.Fatal("DetectRunning reported a primary in an empty namespace")
	}
}

func TestCreatePrimaryThenDetect(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	defer set.Destroy()

	if !DetectRunning() {
		t.Error("DetectRunning did not see the live primary")
	}

	set.Destroy()
	if DetectRunning() {
		t.Error("DetectRunning still sees a primary after Destroy")
	}
}

func TestCreatePrimaryCollision(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	defer set.Destroy()

	if _, err := CreatePrimary(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second CreatePrimary error = %v, want ErrAlreadyRunning", err)
	}
}

func TestCreatePrimaryRace(t *testing.T) {
	isolate(t)

	const contenders = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []*ServerSet
		losers  int
	)
	start := make(chan struct{})
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			set, err := CreatePrimary()
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, set)
				return
			}
			if errors.Is(err, ErrAlreadyRunning) {
				losers++
			}
		}()
	}
	close(start)
	wg.Wait()

	if len(winners) != 1 {
		t.Fatalf("winners = %d, want exactly 1", len(winners))
	}
	if losers != contenders-1 {
		t.Errorf("losers = %d, want %d", losers, contenders-1)
	}
	if !DetectRunning() {
		t.Error("losers should observe DetectRunning() == true")
	}
	winners[0].Destroy()
}

func TestDestroyIdempotent(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	set.Destroy()
	set.Destroy()
	set.Destroy()

	var nilSet *ServerSet
	nilSet.Destroy() // must not panic

	// Operations on a destroyed set are no-ops.
	if set.WaitForRequest(10 * time.Millisecond) {
		t.Error("WaitForRequest fired on a destroyed set")
	}
	set.Respond(OutcomeNack)
	set.ResetForRetry()
}

func TestMailboxRoundTrip(t *testing.T) {
	isolate(t)

	box := NewMailbox()
	if err := box.Write("hunter2"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := box.Consume(); got != "hunter2" {
		t.Errorf("Consume = %q, want %q", got, "hunter2")
	}
	if got := box.Consume(); got != "" {
		t.Errorf("second Consume = %q, want empty", got)
	}
}

func TestMailboxConsumeAbsent(t *testing.T) {
	isolate(t)

	if got := NewMailbox().Consume(); got != "" {
		t.Errorf("Consume on absent mailbox = %q, want empty", got)
	}
}

func TestMailboxOverwriteKeepsSingleValue(t *testing.T) {
	isolate(t)

	box := NewMailbox()
	if err := box.Write("first"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := box.Write("second"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := box.Consume(); got != "second" {
		t.Errorf("Consume = %q, want %q", got, "second")
	}
	if got := box.Consume(); got != "" {
		t.Errorf("mailbox held more than one value: %q", got)
	}
}

func TestRequestCancelWriteBeforeSignal(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	defer set.Destroy()

	if set.WaitForRequest(20 * time.Millisecond) {
		t.Fatal("cancel signal set before any request")
	}
	if err := RequestCancel("sesame"); err != nil {
		t.Fatalf("RequestCancel: %v", err)
	}
	if !set.WaitForRequest(time.Second) {
		t.Fatal("cancel signal not observed")
	}
	// The credential must already be readable once the signal is up.
	if got := set.ConsumeCredential(); got != "sesame" {
		t.Errorf("ConsumeCredential = %q, want %q", got, "sesame")
	}
	if got := set.ConsumeCredential(); got != "" {
		t.Errorf("second ConsumeCredential = %q, want empty", got)
	}
}

func TestHandshakeNackThenAck(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	defer set.Destroy()

	// Failed attempt: Nack, then reset-before-wait.
	if err := RequestCancel("wrong"); err != nil {
		t.Fatalf("RequestCancel: %v", err)
	}
	if !set.WaitForRequest(time.Second) {
		t.Fatal("request not observed")
	}
	_ = set.ConsumeCredential()
	set.Respond(OutcomeNack)
	if got := AwaitOutcome(time.Second); got != OutcomeNack {
		t.Fatalf("AwaitOutcome = %v, want nack", got)
	}
	set.ResetForRetry()

	// Reset-before-wait: the request signal must not linger.
	if set.WaitForRequest(20 * time.Millisecond) {
		t.Error("cancel signal survived ResetForRetry")
	}

	// Successful attempt: Ack is terminal and survives teardown. Raising
	// the fresh request also retires the previous rejection.
	if err := RequestCancel("right"); err != nil {
		t.Fatalf("RequestCancel: %v", err)
	}
	if got := AwaitOutcome(50 * time.Millisecond); got != OutcomeTimeout {
		t.Fatalf("stale rejection leaked into the new attempt: %v", got)
	}
	if !set.WaitForRequest(time.Second) {
		t.Fatal("second request not observed")
	}
	_ = set.ConsumeCredential()
	set.Respond(OutcomeAck)
	set.Destroy()
	if got := AwaitOutcome(time.Second); got != OutcomeAck {
		t.Errorf("AwaitOutcome after Destroy = %v, want ack", got)
	}
}

func TestAwaitOutcomeTimesOutWithoutPrimary(t *testing.T) {
	isolate(t)

	const bound = 200 * time.Millisecond
	begin := time.Now()
	got := AwaitOutcome(bound)
	elapsed := time.Since(begin)

	if got != OutcomeTimeout {
		t.Fatalf("AwaitOutcome = %v, want timeout", got)
	}
	if elapsed < bound {
		t.Errorf("returned after %v, before the %v bound", elapsed, bound)
	}
	if elapsed > bound+500*time.Millisecond {
		t.Errorf("returned after %v, far past the %v bound", elapsed, bound)
	}
}

func TestWaitForRequestBounded(t *testing.T) {
	isolate(t)

	set, err := CreatePrimary()
	if err != nil {
		t.Fatalf("CreatePrimary: %v", err)
	}
	defer set.Destroy()

	begin := time.Now()
	if set.WaitForRequest(100 * time.Millisecond) {
		t.Fatal("WaitForRequest fired with no request")
	}
	if elapsed := time.Since(begin); elapsed < 100*time.Millisecond {
		t.Errorf("WaitForRequest returned after %v, before the bound", elapsed)
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeAck:     "ack",
		OutcomeNack:    "nack",
		OutcomeTimeout: "timeout",
		Outcome(42):    "unknown",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
